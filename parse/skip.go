package parse

// SkipValue advances past exactly one JSON value and returns the
// sub-slice of the input covering it. The returned bytes alias the
// input buffer. In unchecked mode the input is assumed structurally
// well formed and most validation is elided.
func SkipValue(r *Range) ([]byte, error) {
	if r.Empty() {
		if r.policy.Trust == Checked {
			return nil, r.unexpectedEnd()
		}
		return nil, nil
	}
	start := r.pos
	var err error
	switch r.Front() {
	case '"':
		err = skipString(r)
	case '{':
		err = skipBracketed(r, '{', '}')
	case '[':
		err = skipBracketed(r, '[', ']')
	case 't':
		err = skipLiteral(r, "true")
	case 'f':
		err = skipLiteral(r, "false")
	case 'n':
		err = skipLiteral(r, "null")
	default:
		err = skipNumber(r)
	}
	if err != nil {
		return nil, err
	}
	return r.data[start:r.pos], nil
}

func skipLiteral(r *Range, token string) error {
	if r.policy.Trust == Unchecked {
		r.pos += len(token)
		return nil
	}
	if !r.Match(token) {
		return r.Errorf("Expected '" + token + "'")
	}
	return nil
}

// skipString assumes the cursor is at the opening quote and advances
// past the closing one, honouring backslash escapes.
func skipString(r *Range) error {
	r.pos++
	for r.pos < len(r.data) {
		switch r.data[r.pos] {
		case '"':
			r.pos++
			return nil
		case '\\':
			r.pos += 2
		default:
			r.pos++
		}
	}
	if r.policy.Trust == Checked {
		return r.unexpectedEnd()
	}
	return nil
}

func skipBracketed(r *Range, open, close byte) error {
	depth := 0
	for r.pos < len(r.data) {
		switch r.data[r.pos] {
		case open:
			depth++
			r.pos++
		case close:
			depth--
			r.pos++
			if depth == 0 {
				return nil
			}
		case '"':
			if err := skipString(r); err != nil {
				return err
			}
		default:
			r.pos++
		}
	}
	if r.policy.Trust == Checked {
		return r.unexpectedEnd()
	}
	return nil
}

func isNumberByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E':
		return true
	}
	return false
}

func skipNumber(r *Range) error {
	start := r.pos
	if r.policy.Trust == Checked {
		c := r.data[r.pos]
		if c != '-' && (c < '0' || c > '9') {
			return r.Errorf(ReasonInvalidNumber)
		}
	}
	for r.pos < len(r.data) && isNumberByte(r.data[r.pos]) {
		r.pos++
	}
	if r.policy.Trust == Checked && r.pos == start {
		return r.Errorf(ReasonInvalidNumber)
	}
	return nil
}
