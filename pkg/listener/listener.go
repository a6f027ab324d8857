package listener

import (
	"fmt"
	"reflect"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// registry is an unordered set of listeners keyed by identity
type registry[L any] struct {
	members map[any]L
}

// valueKey identifies a listener whose dynamic type is not comparable
type valueKey struct {
	t reflect.Type
	v string
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *registry[L]) add(l L) {
	key, ok := identity(l)
	if !ok {
		return
	}
	if r.members == nil {
		r.members = make(map[any]L)
	}
	r.members[key] = l
}

func (r *registry[L]) remove(l L) {
	if key, ok := identity(l); ok {
		delete(r.members, key)
	}
}

func (r *registry[L]) has(l L) bool {
	key, ok := identity(l)
	if !ok {
		return false
	}
	_, exists := r.members[key]
	return exists
}

func (r *registry[L]) len() int {
	return len(r.members)
}

// snapshot returns the current members, so that listeners may add or
// remove listeners while an event is being delivered
func (r *registry[L]) snapshot() []L {
	result := make([]L, 0, len(r.members))
	for _, l := range r.members {
		result = append(result, l)
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// identity returns a map key for a listener. Comparable values are their
// own key. Other values are keyed by type and a fingerprint in which funcs,
// maps, slices, channels and pointers stand for their address, so distinct
// listeners with equal contents have distinct keys. Nil listeners have no
// identity.
func identity(l any) (any, bool) {
	if l == nil {
		return nil, false
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil, false
		}
	}
	if v.Comparable() {
		return l, true
	}
	var b strings.Builder
	fingerprint(&b, v)
	return valueKey{v.Type(), b.String()}, true
}

func fingerprint(b *strings.Builder, v reflect.Value) {
	switch v.Kind() {
	case reflect.Slice:
		fmt.Fprintf(b, "[%x:%d:%d]", v.Pointer(), v.Len(), v.Cap())
	case reflect.Func, reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		fmt.Fprintf(b, "<%x>", v.Pointer())
	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
		} else {
			b.WriteString(v.Elem().Type().String())
			fingerprint(b, v.Elem())
		}
	case reflect.Struct:
		b.WriteByte('{')
		for i := range v.NumField() {
			fingerprint(b, v.Field(i))
			b.WriteByte(',')
		}
		b.WriteByte('}')
	case reflect.Array:
		b.WriteByte('(')
		for i := range v.Len() {
			fingerprint(b, v.Index(i))
			b.WriteByte(',')
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "%#v", v)
	}
}
