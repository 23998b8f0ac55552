package plugins

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores available source and target plugins keyed by identifier.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]SourcePlugin
	targets map[string]TargetPlugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]SourcePlugin),
		targets: make(map[string]TargetPlugin),
	}
}

func (r *Registry) RegisterSource(p SourcePlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[p.Format()] = p
}

func (r *Registry) RegisterTarget(p TargetPlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[p.Framework()] = p
}

func (r *Registry) Source(format string) (SourcePlugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.sources[format]
	if !ok {
		return nil, fmt.Errorf("no source plugin for format %q", format)
	}
	return p, nil
}

func (r *Registry) Target(framework string) (TargetPlugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.targets[framework]
	if !ok {
		return nil, fmt.Errorf("no target plugin for framework %q", framework)
	}
	return p, nil
}

// Frameworks returns the registered framework identifiers, sorted.
func (r *Registry) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.targets))
	for k := range r.targets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
