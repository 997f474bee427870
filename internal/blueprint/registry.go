package blueprint

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownBlueprint is returned when an id matches neither a complex nor a definition.
var ErrUnknownBlueprint = errors.New("unknown blueprint")

// Registry holds loaded definitions and complexes and provides lookup utilities.
type Registry struct {
	definitions map[string]*Definition
	complexes   map[string]*Complex
}

// NewRegistry creates a registry from loaded definitions and complexes.
func NewRegistry(definitions []Definition, complexes []Complex) *Registry {
	registry := &Registry{
		definitions: make(map[string]*Definition, len(definitions)),
		complexes:   make(map[string]*Complex, len(complexes)),
	}
	for i := range definitions {
		registry.definitions[definitions[i].ID] = &definitions[i]
	}
	for i := range complexes {
		registry.complexes[complexes[i].ID] = &complexes[i]
	}
	return registry
}

// LoadRegistry loads and creates a registry from the embedded JSON files.
func LoadRegistry() (*Registry, error) {
	definitions, err := LoadDefinitions()
	if err != nil {
		return nil, err
	}
	if len(definitions) == 0 {
		return nil, errors.New("no definitions loaded from definitions.json")
	}
	complexes, err := LoadComplexes()
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(definitions, complexes)
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Validate checks that every definition produces a valid generator config
// and every complex level refers to a known definition.
func (r *Registry) Validate() error {
	for _, id := range r.DefinitionIDs() {
		if err := r.definitions[id].Generator.WorldConfig().Validate(); err != nil {
			return fmt.Errorf("definition %s: %w", id, err)
		}
	}
	for _, id := range r.ComplexIDs() {
		for _, level := range r.complexes[id].Levels {
			if r.definitions[level.BlueprintID] == nil {
				return fmt.Errorf("complex %s depth %d: %w: %s", id, level.Depth, ErrUnknownBlueprint, level.BlueprintID)
			}
		}
	}
	return nil
}

// Definition returns the definition with the given ID, or nil if not found.
func (r *Registry) Definition(id string) *Definition {
	return r.definitions[id]
}

// Complex returns the complex with the given ID, or nil if not found.
func (r *Registry) Complex(id string) *Complex {
	return r.complexes[id]
}

// Resolve returns the complex for id. A bare definition id is wrapped into a
// single-level complex named after the definition.
func (r *Registry) Resolve(id string) (*Complex, error) {
	if c := r.complexes[id]; c != nil {
		return c, nil
	}
	if def := r.definitions[id]; def != nil {
		return &Complex{
			ID:     def.ID,
			Name:   def.Name,
			Levels: []LevelRef{{Depth: 1, BlueprintID: def.ID}},
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBlueprint, id)
}

// DefinitionIDs returns all definition ids in sorted order.
func (r *Registry) DefinitionIDs() []string {
	ids := make([]string, 0, len(r.definitions))
	for id := range r.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ComplexIDs returns all complex ids in sorted order.
func (r *Registry) ComplexIDs() []string {
	ids := make([]string, 0, len(r.complexes))
	for id := range r.complexes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
