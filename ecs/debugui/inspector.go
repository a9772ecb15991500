package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cubespawn/ecs"
)

var durationType = reflect.TypeFor[time.Duration]()

// ResourceInspector lists every singleton in the storage and edits their
// exported fields in place.
type ResourceInspector struct {
	filterText string
}

// NewResourceInspector creates an inspector with an empty filter.
func NewResourceInspector() *ResourceInspector {
	return &ResourceInspector{}
}

// Render draws the inspector window for the singletons in storage.
func (ri *ResourceInspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 360), imgui.CondOnce)

	if !imgui.BeginV("Resource Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.SetNextItemWidth(200)
	imgui.InputTextWithHint("##filter", "Filter by type", &ri.filterText, imgui.InputTextFlagsNone, nil)
	imgui.Separator()

	for t, value := range storage.Singletons() {
		name := t.String()
		if !matchesFilter(name, ri.filterText) {
			continue
		}
		if imgui.TreeNodeStr(name) {
			ri.renderStruct(name, reflect.ValueOf(value).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func matchesFilter(name, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func (ri *ResourceInspector) renderStruct(path string, val reflect.Value) {
	fields := globalReflectionCache.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.Text(fmt.Sprintf("%+v", val.Interface()))
		return
	}

	for _, field := range fields {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ri.renderField(field.Name, path+"."+field.Name, fieldVal)
	}
}

// renderField draws one editable widget. id is unique per field so that
// widgets with equal labels in different singletons do not collide.
func (ri *ResourceInspector) renderField(name, id string, val reflect.Value) {
	if val.Type() == durationType {
		imgui.Text(fmt.Sprintf("%s: %s", name, time.Duration(val.Int())))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := clampInt32(val.Int())
		ri.label(name)
		if imgui.InputInt("##"+id, &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := clampInt32(val.Uint())
		ri.label(name)
		if imgui.InputInt("##"+id, &v) {
			setUint(val, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ri.label(name)
		if imgui.InputFloat("##"+id, &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		ri.label(name)
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + "##" + id) {
			ri.renderStruct(id, val)
			imgui.TreePop()
		}

	case reflect.Array:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]##%s", name, val.Len(), id)) {
			for i := 0; i < val.Len(); i++ {
				elem := fmt.Sprintf("[%d]", i)
				ri.renderField(elem, id+elem, val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Interface, reflect.Func, reflect.Chan:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: %T", name, val.Interface()))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func (ri *ResourceInspector) label(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
