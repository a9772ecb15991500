package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field the inspector can show.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// ReflectionCache memoises the exported fields of struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

// NewReflectionCache creates an empty cache.
func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of t, or nil for non-struct types.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Pointer
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

// The setters below apply an edited widget value to a field. They refuse
// values the field cannot hold rather than truncating them.

func setInt(field reflect.Value, value int64) bool {
	if !field.CanSet() || field.OverflowInt(value) {
		return false
	}
	field.SetInt(value)
	return true
}

func setUint(field reflect.Value, value int64) bool {
	if !field.CanSet() || value < 0 || field.OverflowUint(uint64(value)) {
		return false
	}
	field.SetUint(uint64(value))
	return true
}

func setFloat(field reflect.Value, value float64) bool {
	if !field.CanSet() || field.OverflowFloat(value) {
		return false
	}
	field.SetFloat(value)
	return true
}

// clampInt32 narrows v to the range of the int32 input widget.
func clampInt32[T int64 | uint64](v T) int32 {
	const maxInt32 = 1<<31 - 1
	if v > maxInt32 {
		return maxInt32
	}
	if int64(v) < -maxInt32-1 {
		return -maxInt32 - 1
	}
	return int32(v)
}
