// Package output writes generated components to disk together with the
// barrel index files and the fingerprint manifest.
package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/efebarandurmaz/svgsmith/internal/convert"
)

// Writer places each framework's components in its own subdirectory of Dir.
type Writer struct {
	Dir string
	// Index writes a barrel index per framework directory.
	Index bool
	// Manifest maintains icons.yaml for unchanged-source skipping.
	Manifest bool
	// Force disables unchanged-source skipping.
	Force bool
	// Settings is folded into every fingerprint so a configuration change
	// regenerates all components.
	Settings string
	Logger   *slog.Logger
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Filter splits reqs into those that need converting and the source paths
// whose previous output is still current.
func (w *Writer) Filter(reqs []convert.Request) (todo []convert.Request, skipped []string, err error) {
	if !w.Manifest || w.Force {
		return reqs, nil, nil
	}
	m, err := LoadManifest(w.Dir)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range reqs {
		if m.Unchanged(w.Dir, r.Path, w.fingerprint(r)) {
			skipped = append(skipped, r.Path)
			continue
		}
		todo = append(todo, r)
	}
	w.logger().Info("incremental analysis complete",
		"total", len(reqs),
		"changed", len(todo),
		"unchanged", len(skipped),
	)
	return todo, skipped, nil
}

// Write stores the results of every successful outcome and returns the
// written paths relative to Dir. Failed outcomes are ignored.
func (w *Writer) Write(outcomes []convert.Outcome) ([]string, error) {
	var m *Manifest
	if w.Manifest {
		var err error
		if m, err = LoadManifest(w.Dir); err != nil {
			return nil, err
		}
	}

	var written []string
	touched := map[string]bool{}
	for _, o := range outcomes {
		if o.Err != nil || len(o.Results) == 0 {
			continue
		}
		entry := &Entry{Fingerprint: w.fingerprint(o.Request), GeneratedAt: time.Now().UTC()}
		for _, r := range o.Results {
			rel := filepath.Join(r.Framework, r.Path)
			if err := writeFile(filepath.Join(w.Dir, rel), []byte(r.Code)); err != nil {
				return written, err
			}
			written = append(written, rel)
			entry.Files = append(entry.Files, rel)
			entry.Component = strings.TrimSuffix(filepath.Base(r.Path), r.Extension)
			touched[r.Framework] = true
		}
		if m != nil {
			m.Components[o.Request.Path] = entry
		}
	}

	if w.Index {
		for fw := range touched {
			rel, err := w.writeIndex(fw)
			if err != nil {
				return written, err
			}
			written = append(written, rel)
		}
	}
	if m != nil {
		if err := m.Save(w.Dir); err != nil {
			return written, err
		}
	}
	sort.Strings(written)
	return written, nil
}

// writeIndex regenerates the barrel for one framework directory from the
// component files present on disk.
func (w *Writer) writeIndex(framework string) (string, error) {
	dir := filepath.Join(w.Dir, framework)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}

	indexName := "index.ts"
	var lines []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		switch ext {
		case ".tsx":
			lines = append(lines, fmt.Sprintf("export { default as %s } from \"./%s\";", base, base))
		case ".jsx":
			indexName = "index.js"
			lines = append(lines, fmt.Sprintf("export { default as %s } from \"./%s\";", base, base))
		case ".vue":
			lines = append(lines, fmt.Sprintf("export { default as %s } from \"./%s\";", base, name))
		}
	}
	sort.Strings(lines)

	rel := filepath.Join(framework, indexName)
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return rel, writeFile(filepath.Join(w.Dir, rel), []byte(content))
}

func (w *Writer) fingerprint(r convert.Request) string {
	return Fingerprint([]byte(r.Markup), w.Settings+"|"+strings.Join(r.Frameworks, ","))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
