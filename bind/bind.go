// Package bind derives ClassBinding values from struct types. It is
// the ergonomic layer over the description core: a struct is reflected
// once, its exported fields become described members (names and
// nullability taken from `json` and `format` tags) and the projection
// pair is compiled to address-based field access.
package bind

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"

	"github.com/viant/jsonlink"
	"github.com/viant/jsonlink/internal/lru"
	"github.com/viant/jsonlink/internal/tagutil"
	"github.com/viant/xunsafe"
)

var timeType = reflect.TypeOf(time.Time{})

var bindingCache = lru.New[reflect.Type, *jsonlink.ClassBinding](1024)

// For returns the binding for the prototype's struct type, deriving
// and caching it on first use. Bindings are plain values: once built
// they are used without any further lookup in the cache.
func For(prototype interface{}) (*jsonlink.ClassBinding, error) {
	rt := reflect.TypeOf(prototype)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: expected struct prototype, got %T", prototype)
	}
	return forType(rt)
}

func forType(rt reflect.Type) (*jsonlink.ClassBinding, error) {
	if cached, ok := bindingCache.Get(rt); ok {
		return cached, nil
	}
	binding, err := buildBinding(rt)
	if err != nil {
		return nil, err
	}
	bindingCache.Set(rt, binding)
	return binding, nil
}

func buildBinding(rt reflect.Type) (*jsonlink.ClassBinding, error) {
	var members []jsonlink.Member
	var fields []*boundField
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		resolved := tagutil.ResolveFieldTag(sf)
		if resolved.Ignore {
			continue
		}
		member, field, err := memberFor(sf, resolved)
		if err != nil {
			return nil, fmt.Errorf("bind: %v.%v: %w", rt.Name(), sf.Name, err)
		}
		members = append(members, member)
		fields = append(fields, field)
	}
	binding := &jsonlink.ClassBinding{
		Type:       rt.Name(),
		Members:    members,
		FromFields: fromFieldsFunc(rt, fields),
		ToFields:   toFieldsFunc(rt, fields),
	}
	if err := binding.Validate(); err != nil {
		return nil, err
	}
	return binding, nil
}

func memberFor(sf reflect.StructField, resolved tagutil.ResolvedFieldTag) (jsonlink.Member, *boundField, error) {
	ft := sf.Type
	nullable := resolved.Nullable
	if ft.Kind() == reflect.Ptr {
		nullable = true
		ft = ft.Elem()
	}
	kind, options, err := kindFor(ft, resolved.Raw)
	if err != nil {
		return jsonlink.Member{}, nil, err
	}
	member := jsonlink.Member{
		Name:     resolved.Name,
		Kind:     kind,
		Nullable: nullable,
		Bits:     options.bits,
		Elem:     options.elem,
		Key:      options.key,
		Class:    options.class,
	}
	field := &boundField{
		xField: xunsafe.NewField(sf),
		rType:  sf.Type,
	}
	return member, field, nil
}

type kindOptions struct {
	bits     int
	nullable bool
	elem     *jsonlink.Member
	key      *jsonlink.Member
	class    *jsonlink.ClassBinding
}

func kindFor(ft reflect.Type, raw bool) (jsonlink.Kind, kindOptions, error) {
	switch ft.Kind() {
	case reflect.Ptr:
		kind, options, err := kindFor(ft.Elem(), raw)
		options.nullable = true
		return kind, options, err
	case reflect.Bool:
		return jsonlink.KindBool, kindOptions{}, nil
	case reflect.Int, reflect.Int64:
		return jsonlink.KindSigned, kindOptions{bits: 64}, nil
	case reflect.Int32:
		return jsonlink.KindSigned, kindOptions{bits: 32}, nil
	case reflect.Int16:
		return jsonlink.KindSigned, kindOptions{bits: 16}, nil
	case reflect.Int8:
		return jsonlink.KindSigned, kindOptions{bits: 8}, nil
	case reflect.Uint, reflect.Uint64:
		return jsonlink.KindUnsigned, kindOptions{bits: 64}, nil
	case reflect.Uint32:
		return jsonlink.KindUnsigned, kindOptions{bits: 32}, nil
	case reflect.Uint16:
		return jsonlink.KindUnsigned, kindOptions{bits: 16}, nil
	case reflect.Uint8:
		return jsonlink.KindUnsigned, kindOptions{bits: 8}, nil
	case reflect.Float32, reflect.Float64:
		return jsonlink.KindReal, kindOptions{}, nil
	case reflect.String:
		if raw {
			return jsonlink.KindStringRaw, kindOptions{}, nil
		}
		return jsonlink.KindStringEscaped, kindOptions{}, nil
	case reflect.Struct:
		if ft == timeType {
			return jsonlink.KindDate, kindOptions{}, nil
		}
		nested, err := forType(ft)
		if err != nil {
			return 0, kindOptions{}, err
		}
		return jsonlink.KindClass, kindOptions{class: nested}, nil
	case reflect.Slice:
		if ft.Elem().Kind() == reflect.Uint8 {
			return jsonlink.KindStringRaw, kindOptions{}, nil
		}
		elemKind, elemOptions, err := kindFor(ft.Elem(), raw)
		if err != nil {
			return 0, kindOptions{}, err
		}
		elem := &jsonlink.Member{
			Kind:     elemKind,
			Nullable: elemOptions.nullable,
			Bits:     elemOptions.bits,
			Elem:     elemOptions.elem,
			Key:      elemOptions.key,
			Class:    elemOptions.class,
		}
		return jsonlink.KindArray, kindOptions{elem: elem}, nil
	case reflect.Map:
		if ft.Key().Kind() != reflect.String {
			return 0, kindOptions{}, fmt.Errorf("unsupported map key type %v", ft.Key())
		}
		valueKind, valueOptions, err := kindFor(ft.Elem(), raw)
		if err != nil {
			return 0, kindOptions{}, err
		}
		key := &jsonlink.Member{Kind: jsonlink.KindStringEscaped}
		value := &jsonlink.Member{
			Kind:     valueKind,
			Nullable: valueOptions.nullable,
			Bits:     valueOptions.bits,
			Elem:     valueOptions.elem,
			Key:      valueOptions.key,
			Class:    valueOptions.class,
		}
		return jsonlink.KindKeyValue, kindOptions{key: key, elem: value}, nil
	}
	return 0, kindOptions{}, fmt.Errorf("unsupported field type %v", ft)
}

func fromFieldsFunc(rt reflect.Type, fields []*boundField) func([]interface{}) (interface{}, error) {
	return func(values []interface{}) (interface{}, error) {
		holder := reflect.New(rt)
		ptr := unsafe.Pointer(holder.Pointer())
		for i, field := range fields {
			if values[i] == nil {
				continue
			}
			if err := field.set(ptr, values[i]); err != nil {
				return nil, fmt.Errorf("bind: %v.%v: %w", rt.Name(), field.xField.Name, err)
			}
		}
		return holder.Elem().Interface(), nil
	}
}

func toFieldsFunc(rt reflect.Type, fields []*boundField) func(interface{}) []interface{} {
	return func(value interface{}) []interface{} {
		holder := reflect.New(rt)
		holder.Elem().Set(reflect.ValueOf(value))
		ptr := unsafe.Pointer(holder.Pointer())
		out := make([]interface{}, len(fields))
		for i, field := range fields {
			out[i] = field.get(ptr)
		}
		return out
	}
}
