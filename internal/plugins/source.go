package plugins

import (
	"context"

	"github.com/efebarandurmaz/svgsmith/internal/ir"
)

// SourceFile represents a single input document to be parsed.
type SourceFile struct {
	Path    string
	Content []byte
}

// SourcePlugin parses an input format into the document model.
type SourcePlugin interface {
	// Format returns the input format identifier (e.g. "svg").
	Format() string
	// Parse converts a source file into a Document.
	Parse(ctx context.Context, file SourceFile) (*ir.Document, error)
}
