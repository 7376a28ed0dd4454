package jsonlink

import (
	"fmt"
	"strconv"

	"github.com/viant/jsonlink/parse"
)

// parser walks one input range, dispatching per member description.
type parser struct {
	rng  *parse.Range
	opts Options
}

// parseValue parses exactly one value for the member description at
// the current cursor position.
func (p *parser) parseValue(m *Member) (interface{}, error) {
	inner := m
	if m.Kind == KindNull {
		inner = m.Elem
	}
	if m.Kind == KindNull || m.Nullable {
		if p.rng.FrontIs('n') {
			if !p.rng.Match("null") {
				return nil, p.rng.Errorf("Expected 'null'")
			}
			return nil, nil
		}
		if p.rng.Empty() {
			return nil, nil
		}
	}
	switch inner.Kind {
	case KindBool:
		return p.parseBool()
	case KindSigned:
		return parse.ParseSigned(p.rng, inner.Bits)
	case KindUnsigned:
		return parse.ParseUnsigned(p.rng, inner.Bits)
	case KindReal:
		return parse.ParseReal(p.rng)
	case KindStringRaw:
		return parse.ParseStringRaw(p.rng)
	case KindStringEscaped:
		return parse.ParseStringEscaped(p.rng)
	case KindDate:
		return parse.ParseDate(p.rng)
	case KindClass:
		return p.parseClass(inner.Class)
	case KindArray:
		return p.parseArray(inner.Elem)
	case KindKeyValue:
		return p.parseKeyValue(inner)
	case KindKeyValueArray:
		return p.parseKeyValueArray(inner)
	case KindVariant:
		return p.parseVariant(inner)
	case KindVariantTagged:
		return nil, p.rng.Errorf("VariantTagged member parsed outside of a class")
	case KindCustom:
		return p.parseCustom(inner)
	}
	return nil, p.rng.Errorf(fmt.Sprintf("Unsupported member kind %d", inner.Kind))
}

func (p *parser) parseBool() (interface{}, error) {
	if p.rng.Match("true") {
		return true, nil
	}
	if p.rng.Match("false") {
		return false, nil
	}
	return nil, p.rng.Errorf("Expected boolean")
}

// parseClass makes a single pass over the input object, binding each
// encountered member by name. Unknown names are skipped structurally,
// missing non-nullable members are an error after the closing brace.
func (p *parser) parseClass(b *ClassBinding) (interface{}, error) {
	if err := p.rng.Expect('{'); err != nil {
		return nil, err
	}
	if err := p.rng.TrimLeftChecked(); err != nil {
		return nil, err
	}
	plan := planFor(b)
	fields := make([]interface{}, len(b.Members))
	seen := make([]bool, len(b.Members))
	// VariantTagged values whose tag had not been parsed yet: raw
	// sub-ranges buffered for a second pass once the tag is known.
	var pending map[int][]byte

	for {
		if p.rng.Empty() {
			return nil, p.rng.Errorf(ReasonUnexpectedEnd)
		}
		if p.rng.FrontIs('}') {
			p.rng.RemovePrefix()
			break
		}
		rawName, err := parse.ParseName(p.rng)
		if err != nil {
			return nil, err
		}
		name, err := parse.Unescape(rawName)
		if err != nil {
			return nil, err
		}
		idx, known := plan.byName[name]
		if !known {
			if p.opts.Members == ErrorOnUnknown {
				return nil, p.rng.Errorf(ReasonUnknownMember + " '" + name + "'")
			}
			if _, err = parse.SkipValue(p.rng); err != nil {
				return nil, err
			}
		} else {
			m := &b.Members[idx]
			if m.Kind == KindVariantTagged && plan.tagOf[idx] < 0 {
				return nil, p.rng.Errorf(fmt.Sprintf("Variant %q references unknown tag member %q", m.Name, m.Tag))
			}
			if m.Kind == KindVariantTagged && !seen[plan.tagOf[idx]] {
				raw, skipErr := parse.SkipValue(p.rng)
				if skipErr != nil {
					return nil, skipErr
				}
				if pending == nil {
					pending = map[int][]byte{}
				}
				pending[idx] = raw
			} else if m.Kind == KindVariantTagged {
				fields[idx], err = p.parseVariantTagged(m, tagString(fields[plan.tagOf[idx]]))
				if err != nil {
					return nil, err
				}
			} else {
				fields[idx], err = p.parseValue(m)
				if err != nil {
					return nil, err
				}
			}
			seen[idx] = true
		}
		if err = p.rng.CleanTail(); err != nil {
			return nil, err
		}
	}

	for idx, raw := range pending {
		m := &b.Members[idx]
		tagIdx := plan.tagOf[idx]
		if !seen[tagIdx] {
			return nil, p.rng.Errorf(ReasonMissingMember + " '" + b.Members[tagIdx].Name + "'")
		}
		sub := &parser{rng: parse.NewRange(raw, p.rng.Policy()), opts: p.opts}
		v, err := sub.parseVariantTagged(m, tagString(fields[tagIdx]))
		if err != nil {
			return nil, err
		}
		fields[idx] = v
	}

	for i := range b.Members {
		if seen[i] {
			continue
		}
		if !b.Members[i].Nullable && b.Members[i].Kind != KindNull {
			return nil, p.rng.Errorf(ReasonMissingMember + " '" + b.Members[i].Name + "'")
		}
	}
	return b.FromFields(fields)
}

func (p *parser) parseArray(elem *Member) ([]interface{}, error) {
	if err := p.rng.Expect('['); err != nil {
		return nil, err
	}
	if err := p.rng.TrimLeftChecked(); err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, 4)
	for {
		if p.rng.Empty() {
			return nil, p.rng.Errorf(ReasonUnexpectedEnd)
		}
		if p.rng.FrontIs(']') {
			p.rng.RemovePrefix()
			return out, nil
		}
		v, err := p.parseValue(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if err = p.rng.CleanTail(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseKeyValue(m *Member) (map[string]interface{}, error) {
	if err := p.rng.Expect('{'); err != nil {
		return nil, err
	}
	if err := p.rng.TrimLeftChecked(); err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	for {
		if p.rng.Empty() {
			return nil, p.rng.Errorf(ReasonUnexpectedEnd)
		}
		if p.rng.FrontIs('}') {
			p.rng.RemovePrefix()
			return out, nil
		}
		rawKey, err := parse.ParseName(p.rng)
		if err != nil {
			return nil, err
		}
		key, err := parse.Unescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := p.parseValue(m.Elem)
		if err != nil {
			return nil, err
		}
		out[key] = value
		if err = p.rng.CleanTail(); err != nil {
			return nil, err
		}
	}
}

// parseKeyValueArray reads [{k:…,v:…},…] input where the key and
// value member names are fixed per description entry.
func (p *parser) parseKeyValueArray(m *Member) (map[string]interface{}, error) {
	if err := p.rng.Expect('['); err != nil {
		return nil, err
	}
	if err := p.rng.TrimLeftChecked(); err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	for {
		if p.rng.Empty() {
			return nil, p.rng.Errorf(ReasonUnexpectedEnd)
		}
		if p.rng.FrontIs(']') {
			p.rng.RemovePrefix()
			return out, nil
		}
		key, value, err := p.parseKeyValueElement(m)
		if err != nil {
			return nil, err
		}
		out[key] = value
		if err = p.rng.CleanTail(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseKeyValueElement(m *Member) (string, interface{}, error) {
	if err := p.rng.Expect('{'); err != nil {
		return "", nil, err
	}
	if err := p.rng.TrimLeftChecked(); err != nil {
		return "", nil, err
	}
	var key string
	var value interface{}
	haveKey, haveValue := false, false
	for {
		if p.rng.Empty() {
			return "", nil, p.rng.Errorf(ReasonUnexpectedEnd)
		}
		if p.rng.FrontIs('}') {
			p.rng.RemovePrefix()
			break
		}
		rawName, err := parse.ParseName(p.rng)
		if err != nil {
			return "", nil, err
		}
		name, err := parse.Unescape(rawName)
		if err != nil {
			return "", nil, err
		}
		switch name {
		case m.Key.Name:
			keyValue, keyErr := p.parseValue(m.Key)
			if keyErr != nil {
				return "", nil, keyErr
			}
			key = tagString(keyValue)
			haveKey = true
		case m.Elem.Name:
			if value, err = p.parseValue(m.Elem); err != nil {
				return "", nil, err
			}
			haveValue = true
		default:
			if p.opts.Members == ErrorOnUnknown {
				return "", nil, p.rng.Errorf(ReasonUnknownMember + " '" + name + "'")
			}
			if _, err = parse.SkipValue(p.rng); err != nil {
				return "", nil, err
			}
		}
		if err = p.rng.CleanTail(); err != nil {
			return "", nil, err
		}
	}
	if !haveKey {
		return "", nil, p.rng.Errorf(ReasonMissingMember + " '" + m.Key.Name + "'")
	}
	if !haveValue && !m.Elem.Nullable {
		return "", nil, p.rng.Errorf(ReasonMissingMember + " '" + m.Elem.Name + "'")
	}
	return key, value, nil
}

// parseVariant picks the branch from the first significant byte of the
// value: string, array, object, boolean, null or number.
func (p *parser) parseVariant(m *Member) (interface{}, error) {
	if p.rng.Empty() {
		return nil, p.rng.Errorf(ReasonUnexpectedEnd)
	}
	if p.rng.FrontIs('n') {
		if !p.rng.Match("null") {
			return nil, p.rng.Errorf("Expected 'null'")
		}
		return nil, nil
	}
	class := syntacticClass(p.rng.Front())
	for i := range m.Branches {
		if branchClass(m.Branches[i].Member) != class {
			continue
		}
		v, err := p.parseValue(m.Branches[i].Member)
		if err != nil {
			return nil, err
		}
		return Variant{Branch: i, Value: v}, nil
	}
	return nil, p.rng.Errorf(fmt.Sprintf("No variant branch accepts input starting with '%c'", p.rng.Front()))
}

func (p *parser) parseVariantTagged(m *Member, tag string) (interface{}, error) {
	if m.Nullable && p.rng.FrontIs('n') {
		if !p.rng.Match("null") {
			return nil, p.rng.Errorf("Expected 'null'")
		}
		return nil, nil
	}
	for i := range m.Branches {
		if m.Branches[i].Tag != tag {
			continue
		}
		v, err := p.parseValue(m.Branches[i].Member)
		if err != nil {
			return nil, err
		}
		return Variant{Branch: i, Value: v}, nil
	}
	return nil, p.rng.Errorf(fmt.Sprintf("No variant branch for tag %q", tag))
}

func (p *parser) parseCustom(m *Member) (interface{}, error) {
	var raw []byte
	var err error
	if m.Custom.Quoted {
		raw, err = parse.ParseStringRaw(p.rng)
	} else {
		raw, err = parse.SkipValue(p.rng)
	}
	if err != nil {
		return nil, err
	}
	return m.Custom.FromBytes(raw)
}

type valueClass uint8

const (
	classString valueClass = iota
	classArray
	classObject
	classBool
	classNumber
)

func syntacticClass(c byte) valueClass {
	switch c {
	case '"':
		return classString
	case '[':
		return classArray
	case '{':
		return classObject
	case 't', 'f':
		return classBool
	}
	return classNumber
}

func branchClass(m *Member) valueClass {
	switch m.Kind {
	case KindStringRaw, KindStringEscaped, KindDate:
		return classString
	case KindArray, KindKeyValueArray:
		return classArray
	case KindClass, KindKeyValue:
		return classObject
	case KindBool:
		return classBool
	case KindCustom:
		if m.Custom != nil && m.Custom.Quoted {
			return classString
		}
		return classNumber
	}
	return classNumber
}

// tagString canonicalizes a parsed discriminator value for branch
// lookup and key collapsing.
func tagString(v interface{}) string {
	switch actual := v.(type) {
	case string:
		return actual
	case []byte:
		return string(actual)
	case int64:
		return strconv.FormatInt(actual, 10)
	case uint64:
		return strconv.FormatUint(actual, 10)
	case bool:
		return strconv.FormatBool(actual)
	case float64:
		return strconv.FormatFloat(actual, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
