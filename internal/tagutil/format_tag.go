package tagutil

import (
	"reflect"
	"sync"

	"github.com/viant/tagly/format"
)

// ResolvedFieldTag is the effective per-field description input after
// json and format tag precedence is applied.
type ResolvedFieldTag struct {
	Name     string
	Explicit bool
	Ignore   bool
	Nullable bool
	Raw      bool
}

type cachedFormatTag struct {
	name        string
	caseFormat  string
	hasName     bool
	ignore      bool
	nullable    bool
	hasNullable bool
}

var formatTagCache sync.Map // map[string]cachedFormatTag

// ResolveFieldTag resolves precedence among json and format tags:
// an explicit json name or json:"-" wins over format name/case;
// nullability is enabled by either tag.
func ResolveFieldTag(sf reflect.StructField) ResolvedFieldTag {
	jTag := ParseJSONTag(sf.Name, sf.Tag.Get("json"))
	cached, hasFormat := loadCachedFormatTag(string(sf.Tag))

	name := jTag.Name
	explicit := jTag.Explicit
	if !jTag.Explicit && hasFormat && (cached.hasName || cached.caseFormat != "") {
		tag := &format.Tag{Name: cached.name, CaseFormat: cached.caseFormat}
		if tag.Name == "" {
			tag.Name = jTag.Name
		}
		if formatted := tag.CaseFormatName(""); formatted != "" {
			name = formatted
			explicit = true
		}
	}
	nullable := jTag.Nullable
	if hasFormat && cached.hasNullable {
		nullable = nullable || cached.nullable
	}
	return ResolvedFieldTag{
		Name:     name,
		Explicit: explicit,
		Ignore:   jTag.Transient || (hasFormat && cached.ignore),
		Nullable: nullable,
		Raw:      jTag.Raw,
	}
}

func loadCachedFormatTag(rawTag string) (cachedFormatTag, bool) {
	if v, ok := formatTagCache.Load(rawTag); ok {
		cached := v.(cachedFormatTag)
		return cached, cached != cachedFormatTag{}
	}
	tag, err := format.Parse(reflect.StructTag(rawTag))
	if err != nil || tag == nil {
		formatTagCache.Store(rawTag, cachedFormatTag{})
		return cachedFormatTag{}, false
	}
	cached := cachedFormatTag{
		name:       tag.Name,
		caseFormat: tag.CaseFormat,
		hasName:    tag.Name != "",
		ignore:     tag.Ignore,
	}
	if tag.Nullable != nil {
		cached.hasNullable = true
		cached.nullable = *tag.Nullable
	}
	formatTagCache.Store(rawTag, cached)
	return cached, true
}
