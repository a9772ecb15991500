package ecs_test

import (
	"testing"

	"github.com/plus3/cubespawn/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{X: 1})

	var cmds ecs.Commands
	var seenDuringDefer int
	cmds.Spawn(Position{X: 2})
	cmds.Spawn(Position{X: 3}, Velocity{})
	cmds.Delete(victim)
	cmds.Defer(func() { seenDuringDefer = storage.Len() })

	assert.Equal(t, 4, cmds.Pending())
	assert.Equal(t, 1, storage.Len(), "nothing applied before Flush")

	cmds.Flush(storage)

	assert.Equal(t, 2, storage.Len())
	assert.Equal(t, 2, seenDuringDefer, "defers run after spawns and deletes")
	assert.False(t, storage.Alive(victim))
	assert.Zero(t, cmds.Pending())
}

func TestCommandsReusableAfterFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var cmds ecs.Commands
	cmds.Spawn(Position{})
	cmds.Flush(storage)
	cmds.Flush(storage)
	assert.Equal(t, 1, storage.Len())

	cmds.Spawn(Health{Current: 1})
	cmds.Flush(storage)
	assert.Equal(t, 2, storage.Len())
}

func TestCommandsQueuedFromDeferAreApplied(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var cmds ecs.Commands
	var order []string
	cmds.Defer(func() {
		order = append(order, "first")
		cmds.Spawn(Position{X: 7})
		cmds.Defer(func() { order = append(order, "second") })
	})
	cmds.Spawn(Position{X: 1})

	cmds.Flush(storage)

	assert.Equal(t, 2, storage.Len())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Zero(t, cmds.Pending())

	cmds.Flush(storage)
	assert.Equal(t, 2, storage.Len())
}
