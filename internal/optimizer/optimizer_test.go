package optimizer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func optimize(t *testing.T, markup string, opts Options) string {
	t.Helper()
	out, err := Optimize(context.Background(), markup, opts)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	return out
}

func TestBaselineAlwaysRuns(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><g xmlns:foo="urn:foo"><use xlink:href="#a"/></g></svg>`
	got := optimize(t, in, Options{})
	want := `<svg><g><use xlink:href="#a"/></g></svg>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPlugins(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{
			name: "comments kept when disabled",
			in:   `<svg><!-- hi --><path d="M0 0"/></svg>`,
			want: `<svg><!-- hi --><path d="M0 0"/></svg>`,
		},
		{
			name: "comments removed",
			in:   `<svg><!-- hi --><path d="M0 0"/></svg>`,
			opts: Options{RemoveComments: true},
			want: `<svg><path d="M0 0"/></svg>`,
		},
		{
			name: "metadata subtree removed",
			in:   `<svg><metadata><rdf:RDF><cc:Work/></rdf:RDF></metadata><path d="M0 0"/></svg>`,
			opts: Options{RemoveMetadata: true},
			want: `<svg><path d="M0 0"/></svg>`,
		},
		{
			name: "title kept by default",
			in:   `<svg><title>Home</title><desc>House</desc></svg>`,
			opts: Options{RemoveMetadata: true},
			want: `<svg><title>Home</title><desc>House</desc></svg>`,
		},
		{
			name: "title and desc removed",
			in:   `<svg><title>Home</title><desc>House</desc><path d="M0 0"/></svg>`,
			opts: Options{RemoveTitle: true, RemoveDesc: true},
			want: `<svg><path d="M0 0"/></svg>`,
		},
		{
			name: "dimensions removed with viewBox",
			in:   `<svg width="24" height="24" viewBox="0 0 24 24"><rect width="4" height="4"/></svg>`,
			opts: Options{RemoveDimensions: true},
			want: `<svg viewBox="0 0 24 24"><rect width="4" height="4"/></svg>`,
		},
		{
			name: "viewBox derived from dimensions",
			in:   `<svg width="48px" height="32"/>`,
			opts: Options{RemoveDimensions: true},
			want: `<svg viewBox="0 0 48 32"/>`,
		},
		{
			name: "relative dimensions kept without viewBox",
			in:   `<svg width="100%" height="32"/>`,
			opts: Options{RemoveDimensions: true},
			want: `<svg width="100%" height="32"/>`,
		},
		{
			name: "unreferenced ids removed",
			in: `<svg><defs><linearGradient id="g"/><clipPath id="c"/><path id="p"/></defs>` +
				`<rect id="unused" fill="url(#g)" clip-path="url('#c')"/><use xlink:href="#p"/></svg>`,
			opts: Options{CleanupIDs: true},
			want: `<svg><defs><linearGradient id="g"/><clipPath id="c"/><path id="p"/></defs>` +
				`<rect fill="url(#g)" clip-path="url(&apos;#c&apos;)"/><use xlink:href="#p"/></svg>`,
		},
		{
			name: "ids referenced from style kept",
			in:   `<svg><style>#dot { fill: red }</style><circle id="dot"/><circle id="other"/></svg>`,
			opts: Options{CleanupIDs: true},
			want: `<svg><style>#dot { fill: red }</style><circle id="dot"/><circle/></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := optimize(t, tt.in, tt.opts); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestPipelineOrder(t *testing.T) {
	got := New(DefaultOptions()).Plugins()
	want := []string{"removeXMLDecl", "removeXMLNS", "removeComments", "removeMetadata", "cleanupIDs"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Plugins() = %v, want %v", got, want)
	}
}

func TestMinify(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <!-- drawn by hand -->
  <metadata>editor data</metadata>
  <path d="M 12.000 2.000 L 22.000 22.000 L 2.000 22.000 Z" fill="#ff0000"/>
</svg>`
	got := optimize(t, in, DefaultOptions())
	if len(got) >= len(in) {
		t.Errorf("expected smaller output, got %d >= %d bytes", len(got), len(in))
	}
	for _, bad := range []string{"drawn by hand", "metadata", "xmlns"} {
		if strings.Contains(got, bad) {
			t.Errorf("output still contains %q: %s", bad, got)
		}
	}
	if !strings.Contains(got, "<path") || !strings.Contains(got, "viewBox") {
		t.Errorf("geometry lost: %s", got)
	}
}

func TestOptimize_Errors(t *testing.T) {
	if _, err := Optimize(context.Background(), `<svg><g></svg`, Options{}); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Optimize(ctx, `<svg/>`, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
