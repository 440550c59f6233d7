package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// BindModel returns the change handler of a v-model binding. target must be
// a non-nil pointer to the bound variable; incoming values are converted to
// its type. Supported modifiers: "trim", "number" ("lazy" only affects which
// event the compiler binds).
func BindModel(target any, modifiers ...string) func(any) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return func(any) {}
	}
	var trim, number bool
	for _, m := range modifiers {
		switch m {
		case "trim":
			trim = true
		case "number":
			number = true
		}
	}
	elem := rv.Elem()
	return func(v any) {
		if s, ok := v.(string); ok {
			if trim {
				s = strings.TrimSpace(s)
			}
			v = s
			if number {
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					v = f
				}
			}
		}
		assign(elem, v)
	}
}

func assign(dst reflect.Value, v any) {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	src := reflect.ValueOf(v)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return
	}
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(ToDisplayString(v))
	case reflect.Bool:
		if s, ok := v.(string); ok {
			if b, err := strconv.ParseBool(s); err == nil {
				dst.SetBool(b)
			}
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if s, ok := v.(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return
			}
			src = reflect.ValueOf(f)
		}
		if isNumeric(src.Kind()) {
			dst.Set(src.Convert(dst.Type()))
		}
	default:
		if src.Type().ConvertibleTo(dst.Type()) {
			dst.Set(src.Convert(dst.Type()))
			return
		}
		panic(fmt.Sprintf("vdom: cannot assign %T to model of type %s", v, dst.Type()))
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
