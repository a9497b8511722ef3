package preset

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
	"github.com/cwbudde/algo-voicefx/dsp/primitive"
)

var (
	// ErrUnknownPreset is returned by Resolve for a name with no entry.
	ErrUnknownPreset = errors.New("preset: unknown preset")
	// ErrDuplicateName is returned by Register for a name already present.
	ErrDuplicateName = errors.New("preset: duplicate name")
	// ErrSealed is returned by Register after Seal.
	ErrSealed = errors.New("preset: registry is sealed")
)

// Registry maps normalised preset names to root pipeline nodes.
type Registry struct {
	mu      sync.RWMutex
	lib     *primitive.Library
	entries map[string]pipeline.Node
	sealed  bool
}

// NewRegistry creates an empty registry whose entries are validated against
// lib. A nil lib means primitive.DefaultLibrary.
func NewRegistry(lib *primitive.Library) *Registry {
	if lib == nil {
		lib = primitive.DefaultLibrary()
	}

	return &Registry{lib: lib, entries: make(map[string]pipeline.Node)}
}

// NormalizeName folds a preset name to its registry key: trimmed,
// lower-case, with '-' and ' ' mapped to '_'.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(n)
}

// Register adds root under name. Every stage in root must be supported by
// the registry's library.
func (r *Registry) Register(name string, root pipeline.Node) error {
	key := NormalizeName(name)
	if key == "" {
		return errors.New("preset: empty name")
	}

	if err := pipeline.Validate(root, r.lib); err != nil {
		return fmt.Errorf("preset %q: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot add %q", ErrSealed, key)
	}

	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, key)
	}

	r.entries[key] = root

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, root pipeline.Node) {
	if err := r.Register(name, root); err != nil {
		panic(err)
	}
}

// Resolve returns the root node registered under name.
func (r *Registry) Resolve(name string) (pipeline.Node, error) {
	key := NormalizeName(name)

	r.mu.RLock()
	root, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	return root, nil
}

// Has reports whether name resolves.
func (r *Registry) Has(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Len returns the number of registered presets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Library returns the primitive library entries are validated against.
func (r *Registry) Library() *primitive.Library { return r.lib }

// Seal forbids further registration. It is idempotent.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}
