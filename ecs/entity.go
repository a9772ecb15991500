package ecs

import "fmt"

// EntityId encodes the archetype ID (upper 16 bits), the generation of the
// slot it was issued for (next 16 bits) and the slot itself (lower 32 bits).
// Deleting an entity bumps its slot's generation, so an ID kept past Delete
// stops resolving even after the slot is reused. The zero value never names
// a live entity.
type EntityId uint64

// MaxArchetypes is the number of distinct archetype IDs an EntityId can hold.
const MaxArchetypes = 1<<16 - 1

// NewEntityId packs an archetype ID, a slot generation and a slot into an
// EntityId. Only the low 16 bits of archetypeId are kept.
func NewEntityId(archetypeId uint32, generation uint16, slot uint32) EntityId {
	return EntityId(uint64(archetypeId&0xFFFF)<<48 | uint64(generation)<<32 | uint64(slot))
}

// ArchetypeId extracts the archetype ID from the entity ID.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 48)
}

// Generation extracts the slot generation the ID was issued for.
func (e EntityId) Generation() uint16 {
	return uint16(e >> 32)
}

// Slot extracts the archetype slot from the entity ID.
func (e EntityId) Slot() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%04x:%d@%d", e.ArchetypeId(), e.Slot(), e.Generation())
}
