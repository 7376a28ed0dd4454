package jsonlink

import (
	"fmt"
	"time"
)

// Fixtures shared by the parser and serializer tests: hand-authored
// bindings exercising every member kind except StringRaw and Null.

type account struct {
	ID     int32
	Active bool
}

func accountBinding() *ClassBinding {
	return &ClassBinding{
		Type: "account",
		Members: []Member{
			{Name: "a", Kind: KindSigned, Bits: 32},
			{Name: "b", Kind: KindBool},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			return account{ID: int32(fields[0].(int64)), Active: fields[1].(bool)}, nil
		},
		ToFields: func(value interface{}) []interface{} {
			actual := value.(account)
			return []interface{}{int64(actual.ID), actual.Active}
		},
	}
}

type counter struct {
	X *uint32
}

func counterBinding() *ClassBinding {
	return &ClassBinding{
		Type: "counter",
		Members: []Member{
			{Name: "x", Kind: KindUnsigned, Bits: 32, Nullable: true},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			var result counter
			if fields[0] != nil {
				x := uint32(fields[0].(uint64))
				result.X = &x
			}
			return result, nil
		},
		ToFields: func(value interface{}) []interface{} {
			actual := value.(counter)
			if actual.X == nil {
				return []interface{}{nil}
			}
			return []interface{}{uint64(*actual.X)}
		},
	}
}

type event struct {
	Name string
	At   time.Time
	Tags []interface{}
	Meta map[string]interface{}
}

func eventBinding() *ClassBinding {
	return &ClassBinding{
		Type: "event",
		Members: []Member{
			{Name: "name", Kind: KindStringEscaped},
			{Name: "at", Kind: KindDate},
			{Name: "tags", Kind: KindArray, Elem: &Member{Kind: KindStringEscaped}},
			{Name: "meta", Kind: KindKeyValue, Key: &Member{Kind: KindStringEscaped}, Elem: &Member{Kind: KindReal}, Nullable: true},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			result := event{
				Name: fields[0].(string),
				At:   fields[1].(time.Time),
				Tags: fields[2].([]interface{}),
			}
			if fields[3] != nil {
				result.Meta = fields[3].(map[string]interface{})
			}
			return result, nil
		},
		ToFields: func(value interface{}) []interface{} {
			actual := value.(event)
			var meta interface{}
			if actual.Meta != nil {
				meta = actual.Meta
			}
			return []interface{}{actual.Name, actual.At, actual.Tags, meta}
		},
	}
}

type envelope struct {
	Kind    string
	Payload Variant
}

// envelopeBinding tags the payload branch by the sibling "kind"
// member.
func envelopeBinding() *ClassBinding {
	return &ClassBinding{
		Type: "envelope",
		Members: []Member{
			{Name: "kind", Kind: KindStringEscaped},
			{
				Name: "payload",
				Kind: KindVariantTagged,
				Tag:  "kind",
				Branches: []Branch{
					{Tag: "text", Member: &Member{Kind: KindStringEscaped}},
					{Tag: "count", Member: &Member{Kind: KindSigned}},
					{Tag: "account", Member: &Member{Kind: KindClass, Class: accountBinding()}},
				},
			},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			result := envelope{Kind: fields[0].(string)}
			if v, ok := fields[1].(Variant); ok {
				result.Payload = v
			}
			return result, nil
		},
		ToFields: func(value interface{}) []interface{} {
			actual := value.(envelope)
			return []interface{}{actual.Kind, actual.Payload}
		},
	}
}

type setting struct {
	Value Variant
}

func settingBinding() *ClassBinding {
	return &ClassBinding{
		Type: "setting",
		Members: []Member{
			{
				Name: "value",
				Kind: KindVariant,
				Branches: []Branch{
					{Member: &Member{Kind: KindStringEscaped}},
					{Member: &Member{Kind: KindSigned}},
					{Member: &Member{Kind: KindBool}},
					{Member: &Member{Kind: KindArray, Elem: &Member{Kind: KindSigned}}},
				},
				Nullable: true,
			},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			var result setting
			if v, ok := fields[0].(Variant); ok {
				result.Value = v
			} else {
				result.Value = Variant{Branch: -1}
			}
			return result, nil
		},
		ToFields: func(value interface{}) []interface{} {
			actual := value.(setting)
			if actual.Value.Branch < 0 {
				return []interface{}{nil}
			}
			return []interface{}{actual.Value}
		},
	}
}

type headers struct {
	Items map[string]interface{}
}

func headersBinding() *ClassBinding {
	return &ClassBinding{
		Type: "headers",
		Members: []Member{
			{
				Name: "items",
				Kind: KindKeyValueArray,
				Key:  &Member{Name: "key", Kind: KindStringEscaped},
				Elem: &Member{Name: "value", Kind: KindStringEscaped},
			},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			return headers{Items: fields[0].(map[string]interface{})}, nil
		},
		ToFields: func(value interface{}) []interface{} {
			return []interface{}{value.(headers).Items}
		},
	}
}

type sample struct {
	Level int64
}

// levelBinding describes a Custom member whose converter maps
// "low"/"high" wire literals onto an integer.
func levelBinding() *ClassBinding {
	converter := &Converter{
		Quoted: true,
		FromBytes: func(raw []byte) (interface{}, error) {
			switch string(raw) {
			case "low":
				return int64(0), nil
			case "high":
				return int64(1), nil
			}
			return nil, fmt.Errorf("unknown level %q", raw)
		},
		ToBytes: func(value interface{}) ([]byte, error) {
			if value.(int64) > 0 {
				return []byte("high"), nil
			}
			return []byte("low"), nil
		},
	}
	return &ClassBinding{
		Type: "sample",
		Members: []Member{
			{Name: "level", Kind: KindCustom, Custom: converter},
		},
		FromFields: func(fields []interface{}) (interface{}, error) {
			return sample{Level: fields[0].(int64)}, nil
		},
		ToFields: func(value interface{}) []interface{} {
			return []interface{}{value.(sample).Level}
		},
	}
}

func mustParse[T any](data string, binding *ClassBinding, opts ...Option) (T, error) {
	return Parse[T]([]byte(data), binding, opts...)
}
