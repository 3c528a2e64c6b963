package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Presets holds named filters compiled from configuration
type Presets struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// NewPresets creates an empty preset registry using compiler
func NewPresets(compiler *Compiler) *Presets {
	if compiler == nil {
		compiler = NewCompiler()
	}
	return &Presets{
		compiler: compiler,
		filters:  make(map[string]*Filter),
	}
}

// Register compiles expression and stores it under name
func (p *Presets) Register(name, expression string) error {
	f, err := p.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.filters[strings.ToLower(name)] = f
	p.mu.Unlock()
	return nil
}

// RegisterAll compiles every preset. Nothing is registered if any fails.
func (p *Presets) RegisterAll(presets map[string]string) error {
	compiled := make(map[string]*Filter, len(presets))
	for _, name := range slices.Sorted(maps.Keys(presets)) {
		f, err := p.compiler.Compile(presets[name])
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[strings.ToLower(name)] = f
	}

	p.mu.Lock()
	maps.Copy(p.filters, compiled)
	p.mu.Unlock()
	return nil
}

// Get returns the preset called name (case-insensitive)
func (p *Presets) Get(name string) (*Filter, error) {
	p.mu.RLock()
	f, ok := p.filters[strings.ToLower(name)]
	p.mu.RUnlock()
	if !ok {
		return nil, &UnknownPresetError{Name: name, Available: p.Names()}
	}
	return f, nil
}

// Names returns the registered preset names, sorted
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.filters))
}

// Resolve picks the filter for a command line: an explicit expression wins
// over a preset name. Both empty means no filter.
func (p *Presets) Resolve(expression, preset string) (*Filter, error) {
	switch {
	case strings.TrimSpace(expression) != "":
		return p.compiler.Compile(expression)
	case strings.TrimSpace(preset) != "":
		return p.Get(preset)
	default:
		return nil, nil
	}
}
