package ui

import (
	"fmt"
	"reflect"
	"strconv"
)

// scalarText reports whether v renders as text and returns that text.
// Strings, booleans, numbers and fmt.Stringers are scalars.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case Node:
		return "", false
	case fmt.Stringer:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	}
	return "", false
}

// computation reports whether v is a zero-argument function returning one
// value and adapts it to func() any.
func computation(v any) (func() any, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, false
	case func() any:
		return fn, fn != nil
	case func() string:
		return func() any { return fn() }, fn != nil
	case func() bool:
		return func() any { return fn() }, fn != nil
	case func() int:
		return func() any { return fn() }, fn != nil
	case func() []Node:
		return func() any { return fn() }, fn != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	t := rv.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 {
		return nil, false
	}
	return func() any { return rv.Call(nil)[0].Interface() }, true
}

// isSequence reports whether v is a slice or array.
func isSequence(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// evalValue calls v when it is a computation and returns v otherwise.
func evalValue(v any) any {
	if fn, ok := computation(v); ok {
		return fn()
	}
	return v
}

// truthy interprets an attribute value as a boolean.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	}
	return true
}

// listKey returns the identity of a list item: its explicit key when it has
// one, otherwise its position.
func listKey(n Node, index int) any {
	k, ok := n.(Keyed)
	if !ok {
		return index
	}
	key, ok := k.Key()
	if !ok || key == nil {
		return index
	}
	if !reflect.TypeOf(key).Comparable() {
		return fmt.Sprint(key)
	}
	return key
}
