package ecs

import (
	"iter"
	"math/bits"
	"reflect"
	"strings"
	"unsafe"
)

// Archetype stores every entity that carries exactly the same set of
// component types. Slots are allocated here and shared by all columns.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	index   map[reflect.Type]int

	alive []uint64
	// generations holds, per slot, the generation of the entity currently
	// (or next) stored there. It is bumped on every remove.
	generations []uint16
	free        []uint32
	next        uint32
	count       int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		index:   make(map[reflect.Type]int, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
		a.index[t] = i
	}
	return a
}

// ID returns the archetype's identifier, which is also the upper 16 bits of
// the EntityId of every entity it stores.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	return a.count
}

// HasComponent reports whether the archetype stores the given type.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	_, ok := a.index[t]
	return ok
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func (a *Archetype) allocate() uint32 {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		return slot
	}
	slot := a.next
	a.next++
	a.generations = append(a.generations, 0)
	for int(slot/64) >= len(a.alive) {
		a.alive = append(a.alive, 0)
	}
	return slot
}

// spawn writes one value per column into a freshly allocated slot. The
// components must already be ordered like a.types.
func (a *Archetype) spawn(components []any) uint32 {
	slot := a.allocate()
	for i, c := range a.columns {
		c.set(int(slot), components[i])
	}
	a.alive[slot/64] |= 1 << (slot % 64)
	a.count++
	return slot
}

// entityId returns the ID of the entity currently stored in slot.
func (a *Archetype) entityId(slot uint32) EntityId {
	return NewEntityId(a.id, a.generations[slot], slot)
}

func (a *Archetype) occupied(slot uint32) bool {
	if slot >= a.next {
		return false
	}
	return a.alive[slot/64]&(1<<(slot%64)) != 0
}

// live reports whether id names the entity currently stored in its slot.
func (a *Archetype) live(id EntityId) bool {
	slot := id.Slot()
	return a.occupied(slot) && a.generations[slot] == id.Generation()
}

func (a *Archetype) remove(id EntityId) bool {
	if !a.live(id) {
		return false
	}
	slot := id.Slot()
	for _, c := range a.columns {
		c.zero(int(slot))
	}
	a.alive[slot/64] &^= 1 << (slot % 64)
	a.generations[slot]++
	a.free = append(a.free, slot)
	a.count--
	return true
}

func (a *Archetype) component(id EntityId, t reflect.Type) any {
	i, ok := a.index[t]
	if !ok || !a.live(id) {
		return nil
	}
	return a.columns[i].get(int(id.Slot()))
}

func (a *Archetype) componentAddr(slot uint32, column int) unsafe.Pointer {
	return a.columns[column].addr(int(slot))
}

// slots yields the live slots in ascending order.
func (a *Archetype) slots() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for w, word := range a.alive {
			for word != 0 {
				bit := bits.TrailingZeros64(word)
				word &^= 1 << bit
				if !yield(uint32(w*64 + bit)) {
					return
				}
			}
		}
	}
}

// Iter returns an iterator over the IDs of all live entities in the archetype.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot := range a.slots() {
			if !yield(a.entityId(slot)) {
				return
			}
		}
	}
}
