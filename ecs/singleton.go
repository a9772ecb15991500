package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// AddSingleton stores value as the singleton of its type. If a singleton of
// that type already exists its contents are overwritten in place, so
// pointers previously returned by Singleton.Get keep observing it.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("ecs: nil singleton")
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{typ: v.Type(), value: ptr}
	s.singletonOrder = append(s.singletonOrder, v.Type())
	s.singletonGen++
}

// RemoveSingleton deletes the singleton of type t. It reports whether one
// existed.
func (s *Storage) RemoveSingleton(t reflect.Type) bool {
	if _, ok := s.singletons[t]; !ok {
		return false
	}
	delete(s.singletons, t)
	s.singletonGen++
	for i, o := range s.singletonOrder {
		if o == t {
			s.singletonOrder = append(s.singletonOrder[:i], s.singletonOrder[i+1:]...)
			break
		}
	}
	return true
}

// ReadSingleton fills out, which must be a **T, with a pointer to the stored
// singleton of type T. It reports whether the singleton exists.
//
//	var spawner *Spawner
//	if storage.ReadSingleton(&spawner) { ... }
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}

	entry, ok := s.singletons[target.Elem().Type().Elem()]
	if !ok {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

// Singletons iterates the stored singletons in insertion order, yielding
// their type and a pointer to their value.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		for _, t := range s.singletonOrder {
			if !yield(t, s.singletons[t].value.Interface()) {
				return
			}
		}
	}
}

func (s *Storage) singletonPtr(t reflect.Type) any {
	entry, ok := s.singletons[t]
	if !ok {
		return nil
	}
	return entry.value.Interface()
}

// Singleton gives a system typed access to a component that is not attached
// to any entity. Declare it as a field of a system struct and the Scheduler
// binds it on registration, or build one directly with NewSingleton.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
	gen     uint64
}

// NewSingleton returns an accessor bound to storage. When the singleton does
// not exist yet it is created from initializer, or from the zero value.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singletonPtr(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.ptr, _ = s.storage.singletonPtr(reflect.TypeFor[T]()).(*T)
	s.gen = s.storage.singletonGen
}

// Get returns a pointer to the singleton, or nil when it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.storage != nil && s.gen != s.storage.singletonGen {
		s.refresh()
	}
	return s.ptr
}

// MustGet is Get for singletons a system cannot run without. A missing
// singleton is an ordering bug, so it panics with ErrMissingSingleton.
func (s *Singleton[T]) MustGet() *T {
	if p := s.Get(); p != nil {
		return p
	}
	panic(s.require())
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) require() error {
	if s.Get() != nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingSingleton, reflect.TypeFor[T]())
}
