package ecs

import (
	"iter"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

// Storage holds all entities, grouped by archetype, plus the singleton
// components that are not attached to any entity.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
	singletonGen   uint64
}

type singletonEntry struct {
	typ   reflect.Type
	value reflect.Value // pointer to the stored value
}

// NewStorage creates an empty storage that resolves component columns through
// the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity carrying the given components and returns its ID.
// Components may be passed by value or by pointer; the stored copy is owned by
// the storage either way.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types, ordered := orderComponents(components)
	archetype := s.archetypeFor(types)
	slot := archetype.spawn(ordered)
	return archetype.entityId(slot)
}

// Delete removes the entity and all of its components. It reports whether the
// entity existed.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.remove(id)
}

// Alive reports whether the ID refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.live(id)
}

// GetComponent returns a pointer to the entity's component of the given type,
// or nil when the entity is gone or lacks that component.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.component(id, t)
}

// HasComponent reports whether the entity carries a component of type t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	n := 0
	for _, a := range s.order {
		n += a.count
	}
	return n
}

// Archetypes iterates the archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return slices.Values(s.order)
}

// GetArchetypeById returns the archetype with the given ID, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	h := hashTypes(types)
	id := (h>>16 ^ h) & 0xFFFF
	for {
		if id == 0 {
			id = 1
		}
		existing, ok := s.archetypes.Get(id)
		if !ok {
			break
		}
		if slices.Equal(existing.types, types) {
			return existing
		}
		if len(s.order) >= MaxArchetypes {
			panic("ecs: archetype limit reached")
		}
		// Hash collision with a different type set: probe the next ID.
		id = (id + 1) & 0xFFFF
	}

	archetype := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: components cannot be pointers, maps, channels, functions or interfaces")
	}
	return t
}

// orderComponents returns the sorted component types and the components in
// the matching order.
func orderComponents(components []any) ([]reflect.Type, []any) {
	type pair struct {
		t reflect.Type
		c any
	}
	pairs := make([]pair, len(components))
	for i, c := range components {
		pairs[i] = pair{t: componentType(c), c: c}
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		switch {
		case a.t.String() < b.t.String():
			return -1
		case a.t.String() > b.t.String():
			return 1
		}
		return 0
	})

	types := make([]reflect.Type, len(pairs))
	ordered := make([]any, len(pairs))
	for i, p := range pairs {
		if i > 0 && types[i-1] == p.t {
			panic("ecs: duplicate component type " + p.t.String())
		}
		types[i] = p.t
		ordered[i] = p.c
	}
	return types, ordered
}

// hashTypes computes an FNV-1a hash over the identities of a sorted type set.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uint64(reflect.ValueOf(t).Pointer())
		for shift := 0; shift < 64; shift += 8 {
			h ^= uint32(byte(ptr >> shift))
			h *= prime
		}
	}
	return h
}

// ComponentReader is implemented by anything that can look up an entity's
// component by type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
