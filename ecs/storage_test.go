package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/cubespawn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		generation  uint16
		slot        uint32
	}{
		{0, 0, 0},
		{0xFFFF, 0xFFFF, 0xFFFFFFFF},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0x1234, 0x5678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,gen=%d,slot=%d", tt.archetypeId, tt.generation, tt.slot), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.generation, tt.slot)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.slot, id.Slot())
		})
	}
}

func TestDeletedIdStaysDeadAfterSlotReuse(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	victim := storage.Spawn(Position{X: 1})
	require.True(t, storage.Delete(victim))
	fresh := storage.Spawn(Position{X: 99})

	assert.Equal(t, victim.Slot(), fresh.Slot(), "slot is recycled")
	assert.NotEqual(t, victim, fresh)
	assert.False(t, storage.Alive(victim))
	assert.True(t, storage.Alive(fresh))
	assert.Nil(t, ecs.ReadComponent[Position](storage, victim))
	assert.False(t, storage.Delete(victim))
	assert.Equal(t, float32(99), ecs.ReadComponent[Position](storage, fresh).X)

	view := ecs.NewView[struct{ *Position }](storage)
	assert.Nil(t, view.Get(victim))
	assert.NotNil(t, view.Get(fresh))

	for id := range storage.GetArchetypeById(fresh.ArchetypeId()).Iter() {
		assert.Equal(t, fresh, id)
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name("crate"))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.NotZero(t, id.ArchetypeId())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := storage.GetComponent(id, reflect.TypeFor[Name]())
	require.NotNil(t, name)
	assert.Equal(t, Name("crate"), *name.(*Name))

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnOrderDoesNotChangeArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Slot(), b.Slot())
	assert.Equal(t, 2, storage.Len())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	other := storage.Spawn(Position{X: 2}, Velocity{DX: 2})

	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Delete(id))
	assert.False(t, storage.Alive(id))
	assert.True(t, storage.Alive(other))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, 1, storage.Len())

	// Freed slots are reused.
	reused := storage.Spawn(Position{X: 3}, Velocity{DX: 3})
	assert.Equal(t, id, reused)
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, reused).X)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := range 1000 {
		storage.Spawn(Position{X: float32(i)})
	}

	ptr.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestPrimitiveComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Score(7), Name("seven"))
	score := ecs.ReadComponent[Score](storage, id)
	require.NotNil(t, score)
	*score += 3

	assert.Equal(t, Score(10), *ecs.ReadComponent[Score](storage, id))
}

func TestArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})

	var lens []int
	for a := range storage.Archetypes() {
		lens = append(lens, a.Len())
	}
	assert.Equal(t, []int{1, 2}, lens)

	id := storage.Spawn(Velocity{}, Position{})
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	require.NotNil(t, archetype)
	assert.Equal(t, "[ecs_test.Position, ecs_test.Velocity]", archetype.String())

	count := 0
	for range archetype.Iter() {
		count++
	}
	assert.Equal(t, 3, count)
}
