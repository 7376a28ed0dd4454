package parse

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ParseStringRaw consumes a JSON string and returns the bytes between
// the quotes with escapes preserved verbatim. Cheapest string path.
func ParseStringRaw(r *Range) ([]byte, error) {
	if err := r.Expect('"'); err != nil {
		return nil, err
	}
	start := r.pos
	for r.pos < len(r.data) {
		switch r.data[r.pos] {
		case '"':
			raw := r.data[start:r.pos]
			r.pos++
			return raw, nil
		case '\\':
			r.pos += 2
		default:
			r.pos++
		}
	}
	return nil, r.unexpectedEnd()
}

// ParseStringEscaped consumes a JSON string and returns the decoded
// value: escapes processed, \uXXXX surrogate pairs assembled into
// single code points, UTF-8 output.
func ParseStringEscaped(r *Range) (string, error) {
	at := r.pos
	raw, err := ParseStringRaw(r)
	if err != nil {
		return "", err
	}
	s, err := Unescape(raw)
	if err != nil {
		if perr, ok := err.(*Error); ok {
			perr.Offset += at + 1
		}
		return "", err
	}
	return s, nil
}

// Unescape decodes the escape sequences of a raw in-quotes slice.
// Offsets in returned errors are relative to the slice.
func Unescape(raw []byte) (string, error) {
	needsUnescape := false
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' {
			needsUnescape = true
			break
		}
	}
	if !needsUnescape {
		return string(raw), nil
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
		}
		switch raw[i] {
		case '"', '\\', '/':
			out = append(out, raw[i])
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if i+4 >= len(raw) {
				return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
			}
			cp, ok := parseHex4(raw[i+1 : i+5])
			if !ok {
				return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
			}
			i += 4
			if utf16.IsSurrogate(cp) {
				if i+6 >= len(raw) || raw[i+1] != '\\' || raw[i+2] != 'u' {
					return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
				}
				low, ok := parseHex4(raw[i+3 : i+7])
				if !ok {
					return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
				}
				decoded := utf16.DecodeRune(cp, low)
				if decoded == utf8.RuneError {
					return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
				}
				out = utf8.AppendRune(out, decoded)
				i += 6
				continue
			}
			out = utf8.AppendRune(out, cp)
		default:
			return "", &Error{Reason: ReasonInvalidEscape, Offset: i}
		}
	}
	return string(out), nil
}

func parseHex4(b []byte) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		c := b[i]
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, false
		}
		v = (v << 4) | d
	}
	return v, true
}
