package markup

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores escapers by canonical key together with the alias table.
// It is populated once at startup and read on every plot construction.
type Registry struct {
	mu       sync.RWMutex
	escapers map[EngineKey]Escaper
	aliases  map[string]EngineKey
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		escapers: make(map[EngineKey]Escaper),
		aliases:  make(map[string]EngineKey),
	}
}

// Register adds an escaper by its Key(). Duplicate keys return an error.
func (r *Registry) Register(escaper Escaper) error {
	if escaper == nil {
		return fmt.Errorf("markup: escaper is required")
	}
	key := escaper.Key()
	if key == "" {
		return fmt.Errorf("markup: escaper key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.escapers[key]; exists {
		return fmt.Errorf("markup: escaper %q already registered", key)
	}

	r.escapers[key] = escaper
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(escaper Escaper) {
	if err := r.Register(escaper); err != nil {
		panic(err)
	}
}

// Alias maps a short name to a registered canonical key. Names are stored
// lower-cased.
func (r *Registry) Alias(name string, key EngineKey) error {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return fmt.Errorf("markup: alias name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.escapers[key]; !ok {
		return fmt.Errorf("markup: alias %q targets unregistered engine %q", trimmed, key)
	}
	r.aliases[trimmed] = key
	return nil
}

// Resolve returns the canonical key for nameOrAlias. A registered canonical
// key is returned unchanged; otherwise the lower-cased input is looked up in
// the alias table. Anything else is an *EngineNotSupportedError.
func (r *Registry) Resolve(nameOrAlias string) (EngineKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.escapers[EngineKey(nameOrAlias)]; ok {
		return EngineKey(nameOrAlias), nil
	}
	if key, ok := r.aliases[strings.ToLower(nameOrAlias)]; ok {
		return key, nil
	}
	return "", &EngineNotSupportedError{Name: nameOrAlias}
}

// Get retrieves an escaper by canonical key or alias.
func (r *Registry) Get(nameOrAlias string) (Escaper, error) {
	key, err := r.Resolve(nameOrAlias)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.escapers[key], nil
}

// Has reports whether nameOrAlias resolves.
func (r *Registry) Has(nameOrAlias string) bool {
	_, err := r.Resolve(nameOrAlias)
	return err == nil
}

// List returns the sorted canonical keys.
func (r *Registry) List() []EngineKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]EngineKey, 0, len(r.escapers))
	for key := range r.escapers {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]EngineKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]EngineKey, len(r.aliases))
	for name, key := range r.aliases {
		out[name] = key
	}
	return out
}

// Identifiers lists every accepted identifier: canonical keys followed by the
// sorted aliases.
func (r *Registry) Identifiers() []string {
	keys := r.List()
	aliases := r.Aliases()

	out := make([]string, 0, len(keys)+len(aliases))
	for _, key := range keys {
		out = append(out, string(key))
	}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(out, names...)
}
