/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/suparena/ltistore/errors"
)

//go:embed collections.yaml
var collectionsYAML []byte

// Registry maps collection names to their schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

type manifest struct {
	Collections []Schema `yaml:"collections"`
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{schemas: make(map[string]Schema)}
}

// Load parses a YAML collection manifest into a registry.
func Load(data []byte) (*Registry, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("registry: parse manifest: %w", err)
	}
	r := New()
	for _, s := range m.Collections {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a schema. Registering the same name twice is an error.
func (r *Registry) Register(s Schema) error {
	if err := s.validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[s.Name]; exists {
		return fmt.Errorf("registry: collection %q already registered", s.Name)
	}
	r.schemas[s.Name] = s
	return nil
}

// Lookup returns the schema for name.
func (r *Registry) Lookup(name string) (Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	if !ok {
		return Schema{}, errors.NewUnknownCollectionError(name)
	}
	return s, nil
}

// Names returns the registered collection names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas returns every registered schema ordered by name.
func (r *Registry) Schemas() []Schema {
	names := r.Names()
	out := make([]Schema, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range names {
		out = append(out, r.schemas[n])
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded collection manifest.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(collectionsYAML)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Lookup returns the schema for name from the default registry.
func Lookup(name string) (Schema, error) {
	return Default().Lookup(name)
}
