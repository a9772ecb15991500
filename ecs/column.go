package ecs

import (
	"reflect"
	"unsafe"
)

// ComponentRegistry maps component types to the column constructor used to
// store them. Each Storage owns one registry, so independent worlds do not
// share type registrations.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T so that entities carrying it can be spawned.
// Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether the given type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// column stores the values of one component type for every slot of an
// archetype. Slot allocation is owned by the archetype, so a column only
// needs to grow, write, zero and address slots.
type column interface {
	reserve(slots int)
	set(slot int, value any)
	zero(slot int)
	addr(slot int) unsafe.Pointer
	get(slot int) any
}

// blockColumn keeps components in heap-allocated fixed-size blocks. Blocks are
// never moved once allocated, so pointers handed out to systems stay valid
// while new entities are appended.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
}

func (c *blockColumn[T]) reserve(slots int) {
	for len(c.blocks)*blockSize < slots {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
}

func (c *blockColumn[T]) set(slot int, value any) {
	c.reserve(slot + 1)
	dst := &c.blocks[slot/blockSize][slot%blockSize]
	switch v := value.(type) {
	case T:
		*dst = v
	case *T:
		*dst = *v
	default:
		panic("ecs: value of type " + reflect.TypeOf(value).String() + " written to " + reflect.TypeFor[T]().String() + " column")
	}
}

func (c *blockColumn[T]) zero(slot int) {
	var zero T
	c.blocks[slot/blockSize][slot%blockSize] = zero
}

func (c *blockColumn[T]) addr(slot int) unsafe.Pointer {
	return unsafe.Pointer(&c.blocks[slot/blockSize][slot%blockSize])
}

func (c *blockColumn[T]) get(slot int) any {
	return &c.blocks[slot/blockSize][slot%blockSize]
}
