package jsonlink

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/viant/jsonlink/serialize"
)

// serializer renders values under their member descriptions into an
// append buffer; the buffer is handed to the caller's sink once per
// call.
type serializer struct {
	buf  []byte
	opts Options
}

func (s *serializer) appendMember(m *Member, v interface{}) error {
	inner := m
	if m.Kind == KindNull {
		inner = m.Elem
	}
	if v == nil {
		s.buf = append(s.buf, "null"...)
		return nil
	}
	switch inner.Kind {
	case KindBool:
		b, err := asBool(v)
		if err != nil {
			return err
		}
		if b {
			s.buf = append(s.buf, "true"...)
		} else {
			s.buf = append(s.buf, "false"...)
		}
		return nil
	case KindSigned:
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		s.buf = serialize.AppendInt(s.buf, n)
		return nil
	case KindUnsigned:
		n, err := asUint64(v)
		if err != nil {
			return err
		}
		s.buf = serialize.AppendUint(s.buf, n)
		return nil
	case KindReal:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		s.buf = serialize.AppendFloat(s.buf, f)
		return nil
	case KindStringRaw:
		raw, err := asBytes(v)
		if err != nil {
			return err
		}
		s.buf, err = serialize.AppendRaw(s.buf, raw, s.mode(inner))
		return err
	case KindStringEscaped:
		str, err := asString(v)
		if err != nil {
			return err
		}
		s.buf = serialize.AppendEscaped(s.buf, str, s.mode(inner))
		return nil
	case KindDate:
		tm, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time for %q, got %T", inner.Name, v)
		}
		s.buf = serialize.AppendCivil(s.buf, serialize.CivilFromTime(tm))
		return nil
	case KindClass:
		return s.appendClass(inner.Class, v)
	case KindArray:
		return s.appendArray(inner, v)
	case KindKeyValue:
		return s.appendKeyValue(inner, v)
	case KindKeyValueArray:
		return s.appendKeyValueArray(inner, v)
	case KindVariant, KindVariantTagged:
		return s.appendVariant(inner, v)
	case KindCustom:
		return s.appendCustom(inner, v)
	}
	return fmt.Errorf("unsupported member kind %d", inner.Kind)
}

// appendClass emits the described members in description order. Absent
// nullable members are skipped entirely; a tag member referenced by a
// variant sibling is emitted from the variant's active-branch
// discriminator, at most once per object.
func (s *serializer) appendClass(b *ClassBinding, v interface{}) error {
	fields := b.ToFields(v)
	if len(fields) != len(b.Members) {
		return fmt.Errorf("%v: ToFields produced %d fields for %d members", b.Type, len(fields), len(b.Members))
	}
	plan := planFor(b)
	s.buf = append(s.buf, '{')
	first := true
	for i := range b.Members {
		m := &b.Members[i]
		value := fields[i]
		if refIdx := plan.taggedBy[i]; refIdx >= 0 {
			if derived, ok := s.deriveTag(m, &b.Members[refIdx], fields[refIdx]); ok {
				value = derived
			}
		}
		if value == nil && (m.Nullable || m.Kind == KindNull) {
			continue
		}
		if !first {
			s.buf = append(s.buf, ',')
		}
		first = false
		s.appendName(m.Name)
		if err := s.appendMember(m, value); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, '}')
	return nil
}

// deriveTag converts the active branch's tag literal into the tag
// member's value space.
func (s *serializer) deriveTag(tag, variant *Member, field interface{}) (interface{}, bool) {
	active, ok := field.(Variant)
	if !ok || active.Branch < 0 || active.Branch >= len(variant.Branches) {
		return nil, false
	}
	literal := variant.Branches[active.Branch].Tag
	switch tag.Kind {
	case KindSigned:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case KindUnsigned:
		n, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case KindBool:
		return literal == "true", true
	}
	return literal, true
}

func (s *serializer) appendName(name string) {
	s.buf = append(s.buf, '"')
	s.buf = append(s.buf, name...)
	s.buf = append(s.buf, '"', ':')
}

func (s *serializer) appendArray(m *Member, v interface{}) error {
	items, err := asSlice(v)
	if err != nil {
		return err
	}
	s.buf = append(s.buf, '[')
	for i, item := range items {
		if i > 0 {
			s.buf = append(s.buf, ',')
		}
		if err = s.appendMember(m.Elem, item); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, ']')
	return nil
}

// appendKeyValue emits a mapping in ascending key order so repeated
// serializations are byte-stable.
func (s *serializer) appendKeyValue(m *Member, v interface{}) error {
	entries, err := asSortedPairs(v)
	if err != nil {
		return err
	}
	s.buf = append(s.buf, '{')
	for i, entry := range entries {
		if i > 0 {
			s.buf = append(s.buf, ',')
		}
		if err = s.appendObjectKey(m.Key, entry.Key); err != nil {
			return err
		}
		s.buf = append(s.buf, ':')
		if err = s.appendMember(m.Elem, entry.Value); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, '}')
	return nil
}

func (s *serializer) appendKeyValueArray(m *Member, v interface{}) error {
	entries, err := asSortedPairs(v)
	if err != nil {
		return err
	}
	s.buf = append(s.buf, '[')
	for i, entry := range entries {
		if i > 0 {
			s.buf = append(s.buf, ',')
		}
		s.buf = append(s.buf, '{')
		s.appendName(m.Key.Name)
		if err = s.appendKey(m.Key, entry.Key); err != nil {
			return err
		}
		s.buf = append(s.buf, ',')
		s.appendName(m.Elem.Name)
		if err = s.appendMember(m.Elem, entry.Value); err != nil {
			return err
		}
		s.buf = append(s.buf, '}')
	}
	s.buf = append(s.buf, ']')
	return nil
}

// appendObjectKey renders a KeyValue mapping key; object keys are
// strings on the wire, so numeric key kinds pick up quotes here.
func (s *serializer) appendObjectKey(key *Member, k string) error {
	switch key.Kind {
	case KindSigned, KindUnsigned:
		s.buf = append(s.buf, '"')
		if err := s.appendKey(key, k); err != nil {
			return err
		}
		s.buf = append(s.buf, '"')
		return nil
	}
	return s.appendKey(key, k)
}

// appendKey renders a mapping key: Signed and Unsigned key kinds as
// integers, every other key kind as an escaped string. KeyValue keys
// always go out quoted (see appendObjectKey); KeyValueArray integer
// keys go out unquoted.
func (s *serializer) appendKey(key *Member, k string) error {
	switch key.Kind {
	case KindSigned:
		n, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return fmt.Errorf("key %q is not an integer", k)
		}
		s.buf = serialize.AppendInt(s.buf, n)
		return nil
	case KindUnsigned:
		n, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return fmt.Errorf("key %q is not an unsigned integer", k)
		}
		s.buf = serialize.AppendUint(s.buf, n)
		return nil
	}
	s.buf = serialize.AppendEscaped(s.buf, k, s.mode(key))
	return nil
}

func (s *serializer) appendVariant(m *Member, v interface{}) error {
	active, ok := v.(Variant)
	if !ok {
		return fmt.Errorf("expected Variant value for %q, got %T", m.Name, v)
	}
	if active.Branch < 0 || active.Branch >= len(m.Branches) {
		return fmt.Errorf("variant %q has no branch %d", m.Name, active.Branch)
	}
	return s.appendMember(m.Branches[active.Branch].Member, active.Value)
}

func (s *serializer) appendCustom(m *Member, v interface{}) error {
	raw, err := m.Custom.ToBytes(v)
	if err != nil {
		return err
	}
	if m.Custom.Quoted {
		s.buf = append(s.buf, '"')
		s.buf = append(s.buf, raw...)
		s.buf = append(s.buf, '"')
		return nil
	}
	s.buf = append(s.buf, raw...)
	return nil
}

func (s *serializer) mode(m *Member) EightBitMode {
	if m.EightBit == DisallowHigh || s.opts.EightBit == DisallowHigh {
		return DisallowHigh
	}
	return AllowFull
}

// Value coercions tolerate the natural Go representations a ToFields
// projector produces.

func asBool(v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("expected bool, got %T", v)
}

func asInt64(v interface{}) (int64, error) {
	switch actual := v.(type) {
	case int64:
		return actual, nil
	case int:
		return int64(actual), nil
	case int32:
		return int64(actual), nil
	case int16:
		return int64(actual), nil
	case int8:
		return int64(actual), nil
	}
	return 0, fmt.Errorf("expected signed integer, got %T", v)
}

func asUint64(v interface{}) (uint64, error) {
	switch actual := v.(type) {
	case uint64:
		return actual, nil
	case uint:
		return uint64(actual), nil
	case uint32:
		return uint64(actual), nil
	case uint16:
		return uint64(actual), nil
	case uint8:
		return uint64(actual), nil
	}
	return 0, fmt.Errorf("expected unsigned integer, got %T", v)
}

func asFloat64(v interface{}) (float64, error) {
	switch actual := v.(type) {
	case float64:
		return actual, nil
	case float32:
		return float64(actual), nil
	case int64:
		return float64(actual), nil
	case int:
		return float64(actual), nil
	}
	return 0, fmt.Errorf("expected real, got %T", v)
}

func asString(v interface{}) (string, error) {
	switch actual := v.(type) {
	case string:
		return actual, nil
	case []byte:
		return string(actual), nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func asBytes(v interface{}) ([]byte, error) {
	switch actual := v.(type) {
	case []byte:
		return actual, nil
	case string:
		return []byte(actual), nil
	}
	return nil, fmt.Errorf("expected bytes, got %T", v)
}

func asSlice(v interface{}) ([]interface{}, error) {
	if items, ok := v.([]interface{}); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected sequence, got %T", v)
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func asSortedPairs(v interface{}) ([]Pair, error) {
	var out []Pair
	switch actual := v.(type) {
	case map[string]interface{}:
		out = make([]Pair, 0, len(actual))
		for k, item := range actual {
			out = append(out, Pair{Key: k, Value: item})
		}
	case []Pair:
		out = append(out, actual...)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("expected string-keyed mapping, got %T", v)
		}
		out = make([]Pair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, Pair{Key: iter.Key().String(), Value: iter.Value().Interface()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
