package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	doomed := storage.Spawn(200.0, "test")
	storage.Delete(doomed)

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	if assert.Len(t, stats.ArchetypeBreakdown, 2) {
		assert.Equal(t, []string{"int", "string"}, stats.ArchetypeBreakdown[0].ComponentTypes)
		assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
		assert.Equal(t, []string{"float64", "string"}, stats.ArchetypeBreakdown[1].ComponentTypes)
		assert.Zero(t, stats.ArchetypeBreakdown[1].EntityCount)
	}
}

func TestArchetypeSlotBitmap(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	storage := NewStorage(registry)

	var ids []EntityId
	for i := range 130 {
		ids = append(ids, storage.Spawn(i))
	}
	archetype := storage.GetArchetypeById(ids[0].ArchetypeId())
	assert.Len(t, archetype.alive, 3)

	storage.Delete(ids[0])
	storage.Delete(ids[64])
	storage.Delete(ids[129])

	var slots []uint32
	for slot := range archetype.slots() {
		slots = append(slots, slot)
	}
	assert.Len(t, slots, 127)
	assert.Equal(t, uint32(1), slots[0])
	assert.NotContains(t, slots, uint32(64))
	assert.Equal(t, uint32(128), slots[len(slots)-1])
}

func TestHashTypesStable(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	storage := NewStorage(registry)

	a := storage.Spawn(1, "a")
	b := storage.Spawn("b", 2)
	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotZero(t, a.ArchetypeId())
}
