package jsonlink

import (
	"fmt"

	"github.com/viant/jsonlink/parse"
	"github.com/viant/jsonlink/serialize"
)

// Kind is the JSON-side interpretation of a described member.
type Kind uint8

const (
	KindBool Kind = iota
	KindSigned
	KindUnsigned
	KindReal
	KindStringRaw
	KindStringEscaped
	KindDate
	KindClass
	KindArray
	KindKeyValue
	KindKeyValueArray
	KindVariant
	KindVariantTagged
	KindCustom
	KindNull
)

// EightBitMode aliases the serializer policy so descriptions and
// options share one vocabulary.
type EightBitMode = serialize.EightBitMode

const (
	AllowFull    = serialize.AllowFull
	DisallowHigh = serialize.DisallowHigh
)

// Member describes one JSON member: its wire name, kind and
// kind-specific options. Names must be unique within their parent
// description.
type Member struct {
	Name     string
	Kind     Kind
	Nullable bool

	// Bits bounds Signed/Unsigned targets (8, 16, 32 or 64; zero
	// means 64). Overflow reports NumericOverflow under Checked.
	Bits int

	// EightBit selects the string emission policy for this member.
	EightBit EightBitMode

	// Elem describes the Array element, the KeyValue/KeyValueArray
	// value, or the single kind a Null member wraps.
	Elem *Member

	// Key describes the KeyValue key; for KeyValueArray its Name and
	// the Elem Name are the fixed member names inside each element
	// object.
	Key *Member

	// Class binds a nested aggregate.
	Class *ClassBinding

	// Branches lists the Variant/VariantTagged alternatives.
	Branches []Branch

	// Tag names the earlier sibling member whose value selects a
	// VariantTagged branch.
	Tag string

	// Custom supplies the converter pair for Custom members.
	Custom *Converter
}

// Branch is one Variant alternative. Tag selects it for VariantTagged;
// untagged variants pick by the value's syntactic class instead.
type Branch struct {
	Tag    string
	Member *Member
}

// Converter adapts a member to and from its wire bytes. Quoted wraps
// the emitted bytes in quotes and hands the parser the in-quotes slice.
type Converter struct {
	Quoted    bool
	FromBytes func(raw []byte) (interface{}, error)
	ToBytes   func(value interface{}) ([]byte, error)
}

// Variant carries the parsed value of a Variant/VariantTagged member
// together with the index of the branch that produced it. The
// serializer uses Branch as the discriminator.
type Variant struct {
	Branch int
	Value  interface{}
}

// ClassBinding is the per-type description value: the static member
// shape plus the projection pair gluing parsed field tuples to the
// host type. It replaces any registry: bindings are plain values
// passed on the stack.
type ClassBinding struct {
	// Type names the bound type for diagnostics.
	Type string

	// Members lists the described members in serialization order.
	Members []Member

	// FromFields constructs the host value from the parsed fields, in
	// description order. Absent nullable members arrive as nil.
	FromFields func(fields []interface{}) (interface{}, error)

	// ToFields projects the host value into description order for
	// serialization.
	ToFields func(value interface{}) []interface{}
}

// Validate checks the structural invariants of the description:
// unique names, tag members preceding the variants that reference
// them, Null members wrapping exactly one inner kind.
func (b *ClassBinding) Validate() error {
	seen := map[string]int{}
	for i := range b.Members {
		m := &b.Members[i]
		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("%v: duplicate member %q", b.Type, m.Name)
		}
		seen[m.Name] = i
		if err := m.validate(b, seen); err != nil {
			return err
		}
	}
	return nil
}

func (m *Member) validate(b *ClassBinding, seen map[string]int) error {
	switch m.Kind {
	case KindNull:
		if m.Elem == nil {
			return fmt.Errorf("%v.%v: Null member needs an inner kind", b.Type, m.Name)
		}
		if m.Elem.Kind == KindNull {
			return fmt.Errorf("%v.%v: Null member cannot wrap Null", b.Type, m.Name)
		}
	case KindArray:
		if m.Elem == nil {
			return fmt.Errorf("%v.%v: Array member needs an element description", b.Type, m.Name)
		}
	case KindKeyValue, KindKeyValueArray:
		if m.Key == nil || m.Elem == nil {
			return fmt.Errorf("%v.%v: KeyValue member needs key and value descriptions", b.Type, m.Name)
		}
	case KindClass:
		if m.Class == nil {
			return fmt.Errorf("%v.%v: Class member needs a binding", b.Type, m.Name)
		}
	case KindVariant:
		if len(m.Branches) == 0 {
			return fmt.Errorf("%v.%v: Variant member needs branches", b.Type, m.Name)
		}
	case KindVariantTagged:
		if len(m.Branches) == 0 {
			return fmt.Errorf("%v.%v: Variant member needs branches", b.Type, m.Name)
		}
		if _, ok := seen[m.Tag]; !ok {
			return fmt.Errorf("%v.%v: tag %q must reference an earlier sibling", b.Type, m.Name, m.Tag)
		}
	case KindCustom:
		if m.Custom == nil {
			return fmt.Errorf("%v.%v: Custom member needs a converter", b.Type, m.Name)
		}
	}
	return nil
}

// Pair is one key/value entry of a mapping. The serializer sorts
// KeyValue/KeyValueArray values into Pairs by key, and also accepts a
// []Pair as such a value; the parser produces maps, not Pairs.
type Pair struct {
	Key   string
	Value interface{}
}

// Policy aliases keep the parse package's range policies addressable
// from the public option surface.
type (
	Trust      = parse.Trust
	Whitespace = parse.Whitespace
	Comments   = parse.Comments
)

const (
	Checked   = parse.Checked
	Unchecked = parse.Unchecked

	WhitespaceAllowed    = parse.WhitespaceAllowed
	WhitespaceDisallowed = parse.WhitespaceDisallowed

	CommentsNone = parse.CommentsNone
	CommentsC    = parse.CommentsC
	CommentsHash = parse.CommentsHash
)
