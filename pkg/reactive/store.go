package reactive

import (
	"fmt"
	"reflect"
	"strconv"
)

// Store is a reactive value container.
// Reading a Store inside a Building capture frame records it as a
// dependency of the computation being captured. Writing it synchronously
// re-runs every effect bound to it.
type Store[T any] struct {
	rt    *Runtime
	src   *Source
	value T
}

// NewStore creates a store with the given initial value and registers its
// entry in rt's dependency graph.
func NewStore[T any](rt *Runtime, initial T) *Store[T] {
	return NewNamedStore(rt, "", initial)
}

// NewNamedStore is NewStore with a debug name, reported to observers.
func NewNamedStore[T any](rt *Runtime, name string, initial T) *Store[T] {
	src := &Source{id: nextID(), name: name}
	rt.graph.register(src)
	return &Store[T]{rt: rt, src: src, value: initial}
}

// Get returns the current value and records the store in the innermost
// Building frame.
func (s *Store[T]) Get() T {
	s.rt.ctx.record(s.src)
	return s.value
}

// Peek returns the current value without recording a dependency.
func (s *Store[T]) Peek() T {
	return s.value
}

// Set replaces the value and re-runs every bound effect in binding order.
// No equality check is made.
func (s *Store[T]) Set(value T) {
	s.value = value
	s.rt.notify(s.src)
}

// Update replaces the value with fn applied to the current one and returns
// the new value.
func (s *Store[T]) Update(fn func(T) T) T {
	s.Set(fn(s.value))
	return s.value
}

// Source returns the store's identity in the dependency graph.
func (s *Store[T]) Source() *Source {
	return s.src
}

// ID returns the unique identifier for this store.
func (s *Store[T]) ID() uint64 {
	return s.src.id
}

// Bindable is a store viewed without its type parameter.
// Two-way element bindings use it to mirror a host property.
type Bindable interface {
	// Value reads the current value, recording a dependency like Get.
	Value() any

	// Assign converts v to the store's type and writes it.
	Assign(v any) error
}

// Value implements Bindable.
func (s *Store[T]) Value() any {
	return s.Get()
}

// Assign implements Bindable. Strings coming from host properties are parsed
// into numeric and boolean stores.
func (s *Store[T]) Assign(v any) error {
	if tv, ok := v.(T); ok {
		s.Set(tv)
		return nil
	}

	target := reflect.TypeOf((*T)(nil)).Elem()
	if str, ok := v.(string); ok {
		parsed, err := parseInto(str, target)
		if err != nil {
			return err
		}
		s.Set(parsed.Interface().(T))
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Type().ConvertibleTo(target) && rv.Kind() != reflect.String {
		s.Set(rv.Convert(target).Interface().(T))
		return nil
	}
	return fmt.Errorf("reactive: cannot assign %T to store of %s", v, target)
}

// parseInto parses a host property string into the kind of target.
func parseInto(str string, target reflect.Type) (reflect.Value, error) {
	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		out.SetString(str)
	case reflect.Bool:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return out, fmt.Errorf("reactive: parse %q as bool: %w", str, err)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(str, 10, target.Bits())
		if err != nil {
			return out, fmt.Errorf("reactive: parse %q as %s: %w", str, target, err)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(str, 10, target.Bits())
		if err != nil {
			return out, fmt.Errorf("reactive: parse %q as %s: %w", str, target, err)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(str, target.Bits())
		if err != nil {
			return out, fmt.Errorf("reactive: parse %q as %s: %w", str, target, err)
		}
		out.SetFloat(f)
	default:
		return out, fmt.Errorf("reactive: cannot assign string to store of %s", target)
	}
	return out, nil
}
