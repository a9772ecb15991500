package ecs

import "iter"

// Query is a View that remembers which archetypes matched, so systems that
// iterate every frame only re-scan the archetype list when a new archetype
// has been created. Declare it as a system field and the Scheduler binds it.
type Query[T any] struct {
	view       *View[T]
	matched    []*Archetype
	scannedLen int
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds (or rebinds) the query to storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.matched = q.matched[:0]
	q.scannedLen = 0
}

func (q *Query[T]) refresh() {
	if q.view == nil {
		panic("ecs: query used before Init")
	}
	order := q.view.storage.order
	for _, archetype := range order[q.scannedLen:] {
		if q.view.matches(archetype) {
			q.matched = append(q.matched, archetype)
		}
	}
	q.scannedLen = len(order)
}

// Iter yields every matching entity and its populated view struct.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.matched {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values yields only the populated view structs.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Get returns the view for one entity, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	if q.view == nil {
		panic("ecs: query used before Init")
	}
	return q.view.Get(id)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.refresh()
	n := 0
	for _, archetype := range q.matched {
		n += archetype.count
	}
	return n
}
