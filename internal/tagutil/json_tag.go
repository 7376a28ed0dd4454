package tagutil

import "strings"

// JSONTag is the parsed `json` struct tag.
type JSONTag struct {
	Name      string
	Explicit  bool
	Transient bool
	Raw       bool
	Nullable  bool
}

func ParseJSONTag(defaultName string, raw string) JSONTag {
	if raw == "" {
		return JSONTag{Name: defaultName}
	}
	parts := strings.Split(raw, ",")
	name := parts[0]
	explicit := name != ""
	if name == "" {
		name = defaultName
	}
	tag := JSONTag{
		Name:      name,
		Explicit:  explicit,
		Transient: name == "-",
	}
	for _, p := range parts[1:] {
		switch p {
		case "raw":
			tag.Raw = true
		case "omitempty", "nullable":
			tag.Nullable = true
		}
	}
	return tag
}
