// SPDX-License-Identifier: Apache-2.0

// Package localize implements the outbound response-shaping pass that
// projects multi-locale documents down to a single display locale.
//
// A value is considered localizable when it is a string-keyed object carrying
// at least one of the declared locale codes (en, fr, zh). Such an object is
// replaced by a single string: the value at the requested locale, falling
// back through the remaining locales in a fixed priority order, or null when
// no locale holds a value. Everything else — primitives, timestamps, ids,
// binary payloads — passes through untouched.
//
// The pass never fails: any shape it does not recognize is returned as a
// best-effort copy of itself. The input is never mutated.
package localize

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/models"
)

// systemKeys are field names that are copied through verbatim even when
// nested under an object that also carries locale keys. They protect
// identifiers and timestamps from accidental locale projection.
var systemKeys = map[string]struct{}{
	"id":        {},
	"_id":       {},
	"createdAt": {},
	"updatedAt": {},
	"__v":       {},
}

// cacheKey identifies a container by object identity within one traversal.
// Slices additionally carry their length because two slices may share a
// backing array.
type cacheKey struct {
	ptr uintptr
	len int
}

// Localize returns a deep, locale-projected copy of v.
//
// The identity cache lives for exactly one call, so circular references and
// repeated shared sub-objects are resolved once and reused, and nothing ever
// leaks across requests. Localize never panics; if traversal fails on a
// pathological shape the original value is returned unchanged.
func Localize(v any, locale models.Locale) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = v
		}
	}()

	if !models.IsDeclaredLocale(locale) {
		locale = models.DefaultLocale
	}

	seen := make(map[cacheKey]reflect.Value)
	rv, ok := visit(reflect.ValueOf(v), locale, seen)
	if !ok || !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// visit transforms one value. The boolean result is false when the value
// resolved to null (an exhausted localizable object or a nil input).
func visit(rv reflect.Value, locale models.Locale, seen map[cacheKey]reflect.Value) (reflect.Value, bool) {
	if !rv.IsValid() {
		return reflect.Value{}, false
	}

	// Unwrap interface cells so the type switches below see concrete values.
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		return visit(rv.Elem(), locale, seen)
	}

	switch concrete := rv.Interface().(type) {
	case time.Time, *time.Time, uuid.UUID, *uuid.UUID, []byte:
		return rv, true
	case models.LocalizedText:
		s, ok := concrete.Resolve(locale)
		if !ok {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(s), true
	case models.Plainer:
		// Materialize a lazy document handle exactly once, then walk the
		// plain representation.
		return visit(reflect.ValueOf(concrete.Plain()), locale, seen)
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return rv, true
		}
		key := cacheKey{ptr: rv.Pointer(), len: -1}
		if cached, ok := seen[key]; ok {
			return cached, true
		}
		elem, ok := visit(rv.Elem(), locale, seen)
		if !ok {
			return reflect.Value{}, false
		}
		if elem.Type() == rv.Type().Elem() && elem.CanAddr() {
			seen[key] = elem.Addr()
			return elem.Addr(), true
		}
		seen[key] = elem
		return elem, true

	case reflect.Map:
		return visitMap(rv, locale, seen)

	case reflect.Slice:
		return visitSlice(rv, locale, seen)

	case reflect.Array:
		return visitArray(rv, locale, seen)

	case reflect.Struct:
		return visitStruct(rv, locale, seen)

	default:
		// Primitive scalar: string, bool, numeric, etc.
		return rv, true
	}
}

// visitMap handles string-keyed objects: locale projection when the object
// is localizable, otherwise an element-wise copy with system-key passthrough.
func visitMap(rv reflect.Value, locale models.Locale, seen map[cacheKey]reflect.Value) (reflect.Value, bool) {
	if rv.IsNil() {
		return rv, true
	}
	if rv.Type().Key().Kind() != reflect.String {
		// Non-string keys cannot carry locale codes; pass through as-is.
		return rv, true
	}

	key := cacheKey{ptr: rv.Pointer(), len: -1}
	if cached, ok := seen[key]; ok {
		return cached, true
	}

	if s, matched, ok := resolveLocalized(rv, locale); matched {
		if !ok {
			return reflect.Value{}, false
		}
		out := reflect.ValueOf(s)
		seen[key] = out
		return out, true
	}

	// Generic object copy. The result map is registered in the cache before
	// children are visited so self-references resolve to the copy itself.
	out := reflect.MakeMapWithSize(anyMapType, rv.Len())
	seen[key] = out

	iter := rv.MapRange()
	for iter.Next() {
		name := iter.Key().String()
		if _, system := systemKeys[name]; system {
			out.SetMapIndex(reflect.ValueOf(name), iter.Value())
			continue
		}
		child, ok := visit(iter.Value(), locale, seen)
		if !ok {
			out.SetMapIndex(reflect.ValueOf(name), reflect.Zero(anyType))
			continue
		}
		out.SetMapIndex(reflect.ValueOf(name), boxAny(child))
	}
	return out, true
}

var (
	anyType    = reflect.TypeOf((*any)(nil)).Elem()
	anyMapType = reflect.TypeOf(map[string]any{})
)

// boxAny wraps a concrete value so it can be stored in a map[string]any.
func boxAny(v reflect.Value) reflect.Value {
	boxed := reflect.New(anyType).Elem()
	boxed.Set(v.Convert(anyType))
	return boxed
}

// resolveLocalized checks whether the string-keyed map carries at least one
// declared locale key; if so it resolves the display string.
//
// matched reports whether the map was recognized as localizable at all;
// ok reports whether a string value was found (false means render null).
func resolveLocalized(rv reflect.Value, locale models.Locale) (s string, matched, ok bool) {
	lookup := func(code models.Locale) (string, bool, bool) {
		v := rv.MapIndex(reflect.ValueOf(string(code)))
		if !v.IsValid() {
			return "", false, false
		}
		for v.Kind() == reflect.Interface {
			if v.IsNil() {
				return "", true, false
			}
			v = v.Elem()
		}
		if v.Kind() == reflect.String {
			return v.String(), true, true
		}
		// The key exists but holds a non-string; the object still counts as
		// localizable, the value just cannot satisfy this locale.
		return "", true, false
	}

	if v, present, isString := lookup(locale); present {
		matched = true
		if isString {
			return v, true, true
		}
	}
	for _, l := range models.LocaleFallbackOrder {
		if l == locale {
			continue
		}
		if v, present, isString := lookup(l); present {
			matched = true
			if isString {
				return v, true, true
			}
		}
	}
	return "", matched, false
}

func visitSlice(rv reflect.Value, locale models.Locale, seen map[cacheKey]reflect.Value) (reflect.Value, bool) {
	if rv.IsNil() {
		return rv, true
	}
	key := cacheKey{ptr: rv.Pointer(), len: rv.Len()}
	if cached, ok := seen[key]; ok {
		return cached, true
	}

	// Try to keep the element type; fall back to []any when a child changed
	// shape (e.g. a localizable map became a string).
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	seen[key] = out
	for i := 0; i < rv.Len(); i++ {
		child, ok := visit(rv.Index(i), locale, seen)
		if !ok || !child.Type().AssignableTo(rv.Type().Elem()) {
			return visitSliceGeneric(rv, key, locale, seen)
		}
		out.Index(i).Set(child)
	}
	return out, true
}

// visitSliceGeneric re-walks the slice into []any, used when element types
// change during localization.
func visitSliceGeneric(rv reflect.Value, key cacheKey, locale models.Locale, seen map[cacheKey]reflect.Value) (reflect.Value, bool) {
	out := reflect.MakeSlice(reflect.SliceOf(anyType), rv.Len(), rv.Len())
	seen[key] = out
	for i := 0; i < rv.Len(); i++ {
		child, ok := visit(rv.Index(i), locale, seen)
		if !ok {
			continue
		}
		out.Index(i).Set(boxAny(child))
	}
	return out, true
}

func visitArray(rv reflect.Value, locale models.Locale, seen map[cacheKey]reflect.Value) (reflect.Value, bool) {
	out := reflect.New(rv.Type()).Elem()
	for i := 0; i < rv.Len(); i++ {
		child, ok := visit(rv.Index(i), locale, seen)
		if ok && child.Type().AssignableTo(rv.Type().Elem()) {
			out.Index(i).Set(child)
		}
	}
	return out, true
}

// visitStruct rebuilds a struct of the same type with localized exported
// fields. Fields whose localized value no longer fits the declared field
// type, and structs with unexported fields, are left untouched — typed
// models carry their localizable content inside map-typed payload fields.
func visitStruct(rv reflect.Value, locale models.Locale, seen map[cacheKey]reflect.Value) (reflect.Value, bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			return rv, true
		}
	}

	out := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		field := rv.Field(i)
		child, ok := visit(field, locale, seen)
		if ok && child.IsValid() && child.Type().AssignableTo(t.Field(i).Type) {
			out.Field(i).Set(child)
		} else {
			out.Field(i).Set(field)
		}
	}
	return out, true
}
