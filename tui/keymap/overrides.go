package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

var bindingType = reflect.TypeOf(key.Binding{})

// ApplyOverrides rebinds the key.Binding fields of km named in overrides.
// Names are the snake_case field names, embedded structs included, so
// "enable" targets KeyMap.Enable and "quit" targets Base.Quit. The help text
// is kept. An empty key list disables the binding. km must be a pointer to
// a struct; anything else is ignored.
func ApplyOverrides(km interface{}, overrides Overrides) {
	if len(overrides) == 0 {
		return
	}
	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return
	}

	for name, field := range bindingFields(v.Elem()) {
		keys, ok := overrides[name]
		if !ok {
			continue
		}
		field.Set(reflect.ValueOf(rebind(field.Interface().(key.Binding), keys)))
	}
}

func rebind(b key.Binding, keys []string) key.Binding {
	if len(keys) == 0 {
		b.SetEnabled(false)
		return b
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], b.Help().Desc),
	)
}

// bindingFields maps config names to the settable key.Binding fields of v.
func bindingFields(v reflect.Value) map[string]reflect.Value {
	fields := make(map[string]reflect.Value)
	var walk func(reflect.Value)
	walk = func(v reflect.Value) {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field, sf := v.Field(i), t.Field(i)
			switch {
			case !field.CanSet():
			case sf.Anonymous && field.Kind() == reflect.Struct:
				walk(field)
			case sf.Type == bindingType:
				fields[camelToSnake(sf.Name)] = field
			}
		}
	}
	walk(v)
	return fields
}

// camelToSnake turns MaybeLater into maybe_later.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
