package parse

// ParseName consumes a member name and its name/value separator. The
// cursor must be at the opening quote; on return it is at the first
// byte of the member's value. The returned slice covers the bytes
// between the quotes with escapes left verbatim.
func ParseName(r *Range) ([]byte, error) {
	if err := r.Expect('"'); err != nil {
		return nil, err
	}
	start := r.pos
	for r.pos < len(r.data) {
		switch r.data[r.pos] {
		case '"':
			name := r.data[start:r.pos]
			r.pos++
			if err := trimEndOfName(r); err != nil {
				return nil, err
			}
			return name, nil
		case '\\':
			r.pos += 2
		default:
			r.pos++
		}
	}
	return nil, r.unexpectedEnd()
}

// trimEndOfName moves from just past the closing quote to the first
// byte of the value: whitespace, ':', whitespace.
func trimEndOfName(r *Range) error {
	if err := r.TrimLeftChecked(); err != nil {
		return err
	}
	if err := r.Expect(':'); err != nil {
		return err
	}
	return r.TrimLeftChecked()
}
