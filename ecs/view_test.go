package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/cubespawn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewMatchesAcrossArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{Current: 5})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	var xs []float32
	for item := range view.Values() {
		xs = append(xs, item.Position.X)
	}
	slices.Sort(xs)

	assert.Equal(t, []float32{1, 2}, xs)
	assert.Equal(t, 2, view.Count())
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2}, Name("b"))

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)

	seen := map[ecs.EntityId]float32{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		seen[item.EntityId] = item.Position.X
	}
	assert.Equal(t, map[ecs.EntityId]float32{a: 1, b: 2}, seen)
}

func TestViewOptionalComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	plain := storage.Spawn(Position{X: 1})
	named := storage.Spawn(Position{X: 2}, Name("named"))

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	item := view.Get(plain)
	require.NotNil(t, item)
	assert.Nil(t, item.Name)

	item = view.Get(named)
	require.NotNil(t, item)
	require.NotNil(t, item.Name)
	assert.Equal(t, Name("named"), *item.Name)

	assert.Equal(t, 2, view.Count())
}

func TestViewGetMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	view := ecs.NewView[struct{ *Velocity }](storage)
	assert.Nil(t, view.Get(id))

	storage.Delete(id)
	assert.Nil(t, ecs.NewView[struct{ *Position }](storage).Get(id))
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 9}})

	assert.Equal(t, float32(9), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Name](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Name *Name `ecs:"optional"`
		}{})
	})
}

func TestViewRejectsBadShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Position](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ P Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQueryPicksUpNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	query := ecs.NewQuery[struct{ *Position }](storage)
	storage.Spawn(Position{X: 1})
	assert.Equal(t, 1, query.Count())

	storage.Spawn(Position{X: 2}, Velocity{})
	storage.Spawn(Velocity{})
	assert.Equal(t, 2, query.Count())

	total := float32(0)
	for _, item := range query.Iter() {
		total += item.Position.X
	}
	assert.Equal(t, float32(3), total)
}

func TestQueryEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for range 10 {
		storage.Spawn(Position{})
	}

	query := ecs.NewQuery[struct{ *Position }](storage)
	n := 0
	for range query.Values() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestQueryBeforeInitPanics(t *testing.T) {
	var query ecs.Query[struct{ *Position }]
	assert.Panics(t, func() { query.Count() })
}
