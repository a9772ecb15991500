package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
	entityId bool
}

// View describes a combination of components as a struct. Every field of T is
// either a pointer to a component type or a plain EntityId, which receives
// the ID of the matched entity. Pointer fields are required unless tagged
// `ecs:"optional"`, in which case they are nil for entities lacking them.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Transform
//		*MovingCube
//	}](storage)
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a view over storage. It panics if T is not a struct of
// component pointers.
func NewView[T any](storage *Storage) *View[T] {
	return &View[T]{
		storage: storage,
		fields:  viewFields(reflect.TypeFor[T]()),
	}
}

func viewFields(structType reflect.Type) []viewField {
	if structType.Kind() != reflect.Struct {
		panic("ecs: view type must be a struct, got " + structType.String())
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{typ: entityIdType, offset: field.Offset, entityId: true})
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: view field " + field.Name + " must be a component pointer or EntityId")
		}

		optional := false
		switch tag := field.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			if field.Anonymous {
				panic("ecs: embedded view field " + field.Name + " cannot be optional")
			}
			optional = true
		default:
			panic("ecs: invalid ecs tag \"" + tag + "\" on view field " + field.Name)
		}

		fields = append(fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return fields
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.entityId || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor resolves, per view field, the archetype column index, or -1
// when the field is an EntityId or an absent optional component.
func (v *View[T]) columnsFor(archetype *Archetype) []int {
	columns := make([]int, len(v.fields))
	for i, f := range v.fields {
		columns[i] = -1
		if f.entityId {
			continue
		}
		if idx, ok := archetype.index[f.typ]; ok {
			columns[i] = idx
		}
	}
	return columns
}

func (v *View[T]) fill(out *T, archetype *Archetype, slot uint32, columns []int) {
	base := unsafe.Pointer(out)
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(base, f.offset)
		switch {
		case f.entityId:
			*(*EntityId)(fieldPtr) = archetype.entityId(slot)
		case columns[i] < 0:
			*(*unsafe.Pointer)(fieldPtr) = nil
		default:
			*(*unsafe.Pointer)(fieldPtr) = archetype.componentAddr(slot, columns[i])
		}
	}
}

// Get returns the view for a single entity, or nil if it is gone or lacks a
// required component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.live(id) || !v.matches(archetype) {
		return nil
	}
	var result T
	v.fill(&result, archetype, id.Slot(), v.columnsFor(archetype))
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if archetype.count == 0 {
		return true
	}
	columns := v.columnsFor(archetype)
	var result T
	for slot := range archetype.slots() {
		v.fill(&result, archetype, slot, columns)
		if !yield(archetype.entityId(slot), result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity together with its populated view struct.
// Component pointers stay valid after the iteration step that produced them.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values yields only the populated view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for _, archetype := range v.storage.order {
		if v.matches(archetype) {
			n += archetype.count
		}
	}
	return n
}

// Spawn creates an entity from the non-nil component pointers in data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		if f.entityId {
			continue
		}
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("ecs: required component " + f.typ.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Interface())
	}
	return v.storage.Spawn(components...)
}
