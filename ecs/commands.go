package ecs

// Commands buffers structural changes made while systems run. The Scheduler
// applies them after the last system of the frame, so queries never observe
// an entity set that changes under them mid-frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of an entity.
func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer queues fn to run after the structural changes have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred functions, in the order
// they were queued, and resets the buffer. Commands queued by a deferred
// function are applied in a further round of the same Flush.
func (c *Commands) Flush(storage *Storage) {
	for c.Pending() > 0 {
		deletes, spawns, defers := c.deletes, c.spawns, c.defers
		c.deletes, c.spawns, c.defers = nil, nil, nil

		for _, id := range deletes {
			storage.Delete(id)
		}
		for _, components := range spawns {
			storage.Spawn(components...)
		}
		for _, fn := range defers {
			fn()
		}

		c.recycle(deletes, spawns, defers)
	}
}

// recycle hands the drained slices back for reuse when nothing was queued
// in the meantime.
func (c *Commands) recycle(deletes []EntityId, spawns [][]any, defers []func()) {
	if c.deletes == nil {
		c.deletes = deletes[:0]
	}
	if c.spawns == nil {
		clear(spawns)
		c.spawns = spawns[:0]
	}
	if c.defers == nil {
		clear(defers)
		c.defers = defers[:0]
	}
}
