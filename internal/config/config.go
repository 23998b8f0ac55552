package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/efebarandurmaz/svgsmith/internal/optimizer"
	"github.com/efebarandurmaz/svgsmith/internal/qualitygate"
)

// Config holds all application configuration.
type Config struct {
	Frameworks []string               `mapstructure:"frameworks" validate:"required,min=1,dive,oneof=react vue"`
	Component  ComponentConfig        `mapstructure:"component"`
	Optimizer  optimizer.Options      `mapstructure:"optimizer"`
	Format     FormatConfig           `mapstructure:"format"`
	Vue        VueConfig              `mapstructure:"vue"`
	Output     OutputConfig           `mapstructure:"output"`
	Gates      qualitygate.GateConfig `mapstructure:"gates"`
	Log        LogConfig              `mapstructure:"log"`
	Tracing    TracingConfig          `mapstructure:"tracing"`
	Temporal   TemporalConfig         `mapstructure:"temporal"`
}

type ComponentConfig struct {
	Props        bool   `mapstructure:"props"`
	TypeScript   bool   `mapstructure:"typescript"`
	DefaultSize  string `mapstructure:"default_size" validate:"required"`
	DefaultColor string `mapstructure:"default_color" validate:"required"`
	Prefix       string `mapstructure:"prefix" validate:"omitempty,alphanum"`
	Suffix       string `mapstructure:"suffix" validate:"omitempty,alphanum"`
}

type FormatConfig struct {
	Formatter  string `mapstructure:"formatter" validate:"omitempty,oneof=prettier none"`
	Binary     string `mapstructure:"binary"`
	PrintWidth int    `mapstructure:"print_width" validate:"gte=0"`
}

type VueConfig struct {
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=structural passthrough"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir" validate:"required"`
	Index    bool   `mapstructure:"index"`
	Manifest bool   `mapstructure:"manifest"`
	// Force rewrites components whose source fingerprint is unchanged.
	Force bool `mapstructure:"force"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

type TemporalConfig struct {
	Host      string `mapstructure:"host"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
	// HTTPAddr serves the worker's health and metrics endpoints.
	HTTPAddr string `mapstructure:"http_addr"`
}

var defaults = map[string]any{
	"frameworks":                  []string{"react"},
	"component.props":             true,
	"component.typescript":        true,
	"component.default_size":      "24",
	"component.default_color":     "currentColor",
	"component.prefix":            "",
	"component.suffix":            "",
	"optimizer.remove_comments":   true,
	"optimizer.remove_metadata":   true,
	"optimizer.remove_title":      false,
	"optimizer.remove_desc":       false,
	"optimizer.remove_dimensions": false,
	"optimizer.cleanup_ids":       true,
	"optimizer.minify":            true,
	"optimizer.precision":         0,
	"format.formatter":            "none",
	"format.binary":               "prettier",
	"format.print_width":          80,
	"vue.mode":                    "structural",
	"output.dir":                  "components",
	"output.index":                true,
	"output.manifest":             true,
	"output.force":                false,
	"gates.enabled":               false,
	"gates.max_errors":            0,
	"gates.error_severity":        "critical",
	"gates.viewbox_rate":          1.0,
	"gates.viewbox_severity":      "required",
	"gates.max_component_bytes":   16384,
	"gates.size_severity":         "advisory",
	"gates.theming":               true,
	"gates.theming_severity":      "advisory",
	"log.level":                   "info",
	"log.format":                  "text",
	"tracing.endpoint":            "",
	"tracing.service_name":        "svgsmith",
	"tracing.insecure":            true,
	"tracing.sample_ratio":        1.0,
	"temporal.host":               "localhost:7233",
	"temporal.namespace":          "default",
	"temporal.task_queue":         "svgsmith",
	"temporal.http_addr":          ":9090",
}

// Check enforces hard constraints on the configuration.
func (c *Config) Check() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Namespace()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %v", e.Namespace(), e.Param(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", e.Namespace(), e.Tag(), e.Param(), e.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Component.Props && c.Vue.Mode == "passthrough" && c.HasFramework("vue") {
		warnings = append(warnings, "vue.mode 'passthrough' declares size and color props but does not bind them")
	}

	if c.Optimizer.Precision > 0 && c.Optimizer.Precision < 3 {
		warnings = append(warnings, fmt.Sprintf("optimizer precision %d may visibly distort geometry", c.Optimizer.Precision))
	}

	if c.Tracing.Endpoint != "" && c.Tracing.SampleRatio == 0 {
		warnings = append(warnings, "tracing endpoint is set but sample_ratio is 0, no spans will be exported")
	}

	if c.Format.Formatter == "prettier" && c.Format.Binary == "" {
		warnings = append(warnings, "format.binary is empty, falling back to 'prettier' on PATH")
	}

	return warnings
}

// HasFramework reports whether fw is among the configured frameworks.
func (c *Config) HasFramework(fw string) bool {
	for _, f := range c.Frameworks {
		if f == fw {
			return true
		}
	}
	return false
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from file and environment. An empty path uses
// the defaults plus SVGSMITH_* environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	// Validate configuration and print warnings
	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("SVGSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}
