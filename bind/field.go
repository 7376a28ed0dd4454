package bind

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"

	"github.com/viant/xunsafe"
)

// boundField glues one described member to its struct field through
// address-based access.
type boundField struct {
	xField *xunsafe.Field
	rType  reflect.Type
}

func (f *boundField) set(structPtr unsafe.Pointer, value interface{}) error {
	fieldPtr := f.xField.Pointer(structPtr)
	ft := f.rType
	if ft.Kind() == reflect.Ptr {
		target := (*unsafe.Pointer)(fieldPtr)
		if *target == nil {
			alloc := reflect.New(ft.Elem())
			*target = unsafe.Pointer(alloc.Pointer())
		}
		fieldPtr = *target
		ft = ft.Elem()
	}
	return assign(ft, fieldPtr, value)
}

func assign(ft reflect.Type, fieldPtr unsafe.Pointer, value interface{}) error {
	switch ft.Kind() {
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		*(*bool)(fieldPtr) = b
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := coerceInt64(value)
		if err != nil {
			return err
		}
		switch ft.Kind() {
		case reflect.Int:
			*(*int)(fieldPtr) = int(n)
		case reflect.Int8:
			*(*int8)(fieldPtr) = int8(n)
		case reflect.Int16:
			*(*int16)(fieldPtr) = int16(n)
		case reflect.Int32:
			*(*int32)(fieldPtr) = int32(n)
		default:
			*(*int64)(fieldPtr) = n
		}
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := coerceUint64(value)
		if err != nil {
			return err
		}
		switch ft.Kind() {
		case reflect.Uint:
			*(*uint)(fieldPtr) = uint(n)
		case reflect.Uint8:
			*(*uint8)(fieldPtr) = uint8(n)
		case reflect.Uint16:
			*(*uint16)(fieldPtr) = uint16(n)
		case reflect.Uint32:
			*(*uint32)(fieldPtr) = uint32(n)
		default:
			*(*uint64)(fieldPtr) = n
		}
		return nil
	case reflect.Float32:
		fv, err := coerceFloat64(value)
		if err != nil {
			return err
		}
		*(*float32)(fieldPtr) = float32(fv)
		return nil
	case reflect.Float64:
		fv, err := coerceFloat64(value)
		if err != nil {
			return err
		}
		*(*float64)(fieldPtr) = fv
		return nil
	case reflect.String:
		switch actual := value.(type) {
		case string:
			*xunsafe.AsStringPtr(fieldPtr) = actual
		case []byte:
			// Raw slices alias the parse input; copy on the way in.
			*xunsafe.AsStringPtr(fieldPtr) = string(actual)
		default:
			return fmt.Errorf("expected string, got %T", value)
		}
		return nil
	case reflect.Struct:
		if ft == timeType {
			tm, ok := value.(time.Time)
			if !ok {
				return fmt.Errorf("expected time.Time, got %T", value)
			}
			*xunsafe.AsTimePtr(fieldPtr) = tm
			return nil
		}
		rv, err := convertComposite(ft, value)
		if err != nil {
			return err
		}
		reflect.NewAt(ft, fieldPtr).Elem().Set(rv)
		return nil
	case reflect.Slice, reflect.Map:
		rv, err := convertComposite(ft, value)
		if err != nil {
			return err
		}
		reflect.NewAt(ft, fieldPtr).Elem().Set(rv)
		return nil
	}
	return fmt.Errorf("unsupported field type %v", ft)
}

// convertComposite turns the dispatcher's interface{} tree into a
// typed value.
func convertComposite(ft reflect.Type, value interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	if rv.IsValid() && rv.Type() == ft {
		return rv, nil
	}
	switch ft.Kind() {
	case reflect.Slice:
		if ft.Elem().Kind() == reflect.Uint8 {
			raw, ok := value.([]byte)
			if !ok {
				return reflect.Value{}, fmt.Errorf("expected bytes, got %T", value)
			}
			return reflect.ValueOf(append([]byte(nil), raw...)), nil
		}
		items, ok := value.([]interface{})
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected sequence, got %T", value)
		}
		out := reflect.MakeSlice(ft, len(items), len(items))
		for i, item := range items {
			ev, err := convertElement(ft.Elem(), item)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		entries, ok := value.(map[string]interface{})
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected mapping, got %T", value)
		}
		out := reflect.MakeMapWithSize(ft, len(entries))
		for k, item := range entries {
			ev, err := convertElement(ft.Elem(), item)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(ft.Key()), ev)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %T to %v", value, ft)
}

func convertElement(ft reflect.Type, value interface{}) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(ft), nil
	}
	if ft.Kind() == reflect.Ptr {
		inner, err := convertElement(ft.Elem(), value)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(ft.Elem())
		out.Elem().Set(inner)
		return out, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type() == ft {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(ft) {
		switch ft.Kind() {
		case reflect.Slice, reflect.Map, reflect.Struct:
		default:
			return rv.Convert(ft), nil
		}
	}
	return convertComposite(ft, value)
}

func (f *boundField) get(structPtr unsafe.Pointer) interface{} {
	fieldPtr := f.xField.Pointer(structPtr)
	ft := f.rType
	if ft.Kind() == reflect.Ptr {
		target := *(*unsafe.Pointer)(fieldPtr)
		if target == nil {
			return nil
		}
		fieldPtr = target
		ft = ft.Elem()
	}
	switch ft.Kind() {
	case reflect.Bool:
		return *(*bool)(fieldPtr)
	case reflect.Int:
		return int64(*(*int)(fieldPtr))
	case reflect.Int8:
		return int64(*(*int8)(fieldPtr))
	case reflect.Int16:
		return int64(*(*int16)(fieldPtr))
	case reflect.Int32:
		return int64(*(*int32)(fieldPtr))
	case reflect.Int64:
		return *(*int64)(fieldPtr)
	case reflect.Uint:
		return uint64(*(*uint)(fieldPtr))
	case reflect.Uint8:
		return uint64(*(*uint8)(fieldPtr))
	case reflect.Uint16:
		return uint64(*(*uint16)(fieldPtr))
	case reflect.Uint32:
		return uint64(*(*uint32)(fieldPtr))
	case reflect.Uint64:
		return *(*uint64)(fieldPtr)
	case reflect.Float32:
		return float64(*(*float32)(fieldPtr))
	case reflect.Float64:
		return *(*float64)(fieldPtr)
	case reflect.String:
		return *xunsafe.AsStringPtr(fieldPtr)
	case reflect.Struct:
		if ft == timeType {
			return *xunsafe.AsTimePtr(fieldPtr)
		}
	}
	return reflect.NewAt(ft, fieldPtr).Elem().Interface()
}

func coerceInt64(value interface{}) (int64, error) {
	switch actual := value.(type) {
	case int64:
		return actual, nil
	case uint64:
		return int64(actual), nil
	case float64:
		return int64(actual), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", value)
}

func coerceUint64(value interface{}) (uint64, error) {
	switch actual := value.(type) {
	case uint64:
		return actual, nil
	case int64:
		if actual < 0 {
			return 0, fmt.Errorf("negative value for unsigned field")
		}
		return uint64(actual), nil
	}
	return 0, fmt.Errorf("expected unsigned integer, got %T", value)
}

func coerceFloat64(value interface{}) (float64, error) {
	switch actual := value.(type) {
	case float64:
		return actual, nil
	case int64:
		return float64(actual), nil
	case uint64:
		return float64(actual), nil
	}
	return 0, fmt.Errorf("expected real, got %T", value)
}
