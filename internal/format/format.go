// Package format runs generated source through an external code formatter.
package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Options describes the code being formatted.
type Options struct {
	// Syntax is the formatter parser name, e.g. "typescript" or "babel".
	Syntax     string
	PrintWidth int
}

// Formatter rewrites source code into its canonical layout.
type Formatter interface {
	Format(ctx context.Context, code string, opts Options) (string, error)
}

// Noop returns code unchanged.
type Noop struct{}

func (Noop) Format(_ context.Context, code string, _ Options) (string, error) { return code, nil }

// Prettier pipes code through a prettier executable on stdin.
type Prettier struct {
	// Binary is the executable to run, "prettier" when empty.
	Binary  string
	Timeout time.Duration
}

func (p Prettier) Format(ctx context.Context, code string, opts Options) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "prettier"
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"--stdin-filepath", stdinPath(opts.Syntax)}
	if opts.Syntax != "" {
		args = append(args, "--parser", opts.Syntax)
	}
	if opts.PrintWidth > 0 {
		args = append(args, "--print-width", strconv.Itoa(opts.PrintWidth))
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader([]byte(code))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %v failed: %w\n%s", bin, args, err, stderr.Bytes())
	}
	return stdout.String(), nil
}

func stdinPath(syntax string) string {
	if syntax == "typescript" {
		return "component.tsx"
	}
	return "component.jsx"
}

// New returns the formatter registered under name: "prettier", or "none"
// and "" for Noop.
func New(name, binary string) (Formatter, error) {
	switch name {
	case "prettier":
		return Prettier{Binary: binary}, nil
	case "", "none":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter %q", name)
	}
}
