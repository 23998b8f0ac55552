package plugins

import (
	"context"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

// GeneratedFile is a single output file produced by a target plugin.
type GeneratedFile struct {
	Path      string `json:"path"`
	Content   []byte `json:"content"`
	Framework string `json:"framework"`
}

// Component is the input to a target plugin: a parsed document and the
// component identifier it should be emitted as.
type Component struct {
	Name     string
	Document *ir.Document
}

// TargetPlugin emits component source code for one UI framework.
type TargetPlugin interface {
	// Framework returns the framework identifier (e.g. "react").
	Framework() string
	// Extension returns the file extension including the dot (e.g. ".tsx").
	Extension() string
	// Generate emits the component source. The returned path is relative.
	Generate(ctx context.Context, c Component) (GeneratedFile, error)
}

// Optimized is implemented by targets whose input markup should pass
// through the optimizer before parsing.
type Optimized interface {
	OptimizeInput() bool
}

// Formatted is implemented by targets whose output is run through the code
// formatter. FormatSyntax names the formatter parser.
type Formatted interface {
	FormatSyntax() string
}
