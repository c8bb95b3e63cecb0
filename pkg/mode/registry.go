// Package mode groups expanded pattern catalogues and renderer tables into
// named extraction modes, one per supported computational-chemistry program.
package mode

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/chemscan/chemscan/pkg/pattern"
	"github.com/chemscan/chemscan/pkg/render"
	"github.com/chemscan/chemscan/pkg/scan"
)

// Mode is one named extraction profile: an expanded pattern tree plus the
// renderer table for its subtypes. Modes are immutable after registration.
type Mode struct {
	// Name identifies the mode; lookups are case-insensitive.
	Name string

	// Root is the expanded, compiled pattern tree.
	Root *pattern.Group

	// Renderers maps subtype names to fragment renderers.
	Renderers *render.Table

	partitioner *scan.Partitioner
}

// New builds a mode from an expanded tree. A nil renderer table gets the
// defaults.
func New(name string, root *pattern.Group, renderers *render.Table) *Mode {
	if renderers == nil {
		renderers = render.NewTable()
	}
	return &Mode{
		Name:        name,
		Root:        root,
		Renderers:   renderers,
		partitioner: scan.NewPartitioner(name, root),
	}
}

// Subtypes returns the mode's subtype names in priority order.
func (m *Mode) Subtypes() []string {
	leaves := m.Root.Leaves()
	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, leaf.Subtype)
	}
	return out
}

// Partition scans doc with the mode's pattern catalogue.
func (m *Mode) Partition(doc *scan.Document) (*scan.BlockTable, error) {
	return m.partitioner.Partition(doc)
}

// UnknownModeError reports a lookup of an unregistered mode name.
type UnknownModeError struct {
	// Name is the requested mode.
	Name string

	// Known lists the registered mode names.
	Known []string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode %q (known modes: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Registry holds registered modes. Registration happens at startup; after
// that the registry is read-only and safe for concurrent lookups.
type Registry struct {
	mu    sync.RWMutex
	modes map[string]*Mode
}

// NewRegistry creates an empty mode registry.
func NewRegistry() *Registry {
	return &Registry{modes: make(map[string]*Mode)}
}

// Register adds a mode, replacing any previous mode with the same name.
func (r *Registry) Register(m *Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes[strings.ToLower(m.Name)] = m
}

// RegisterFile expands a decoded mode configuration and registers the
// resulting mode with the given renderer table (nil for defaults).
func (r *Registry) RegisterFile(f *pattern.File, renderers *render.Table) error {
	root, err := pattern.Expand(f.Mode, f.Root)
	if err != nil {
		return err
	}
	r.Register(New(f.Mode, root, renderers))
	return nil
}

// Load returns the mode registered under name. The lookup is
// case-insensitive and fails with *UnknownModeError for unknown names.
func (r *Registry) Load(name string) (*Mode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.modes[strings.ToLower(name)]; ok {
		return m, nil
	}
	return nil, &UnknownModeError{Name: name, Known: r.namesLocked()}
}

// Names returns the registered mode names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	out := make([]string, 0, len(r.modes))
	for name := range r.modes {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry holds the built-in modes, registered during init().
//
//nolint:gochecknoglobals // Global registry is intentional for mode registration
var DefaultRegistry = NewRegistry()
