package parse

// Paths use '.' separators and '[idx]' array steps. A '.' inside a
// member name is escaped with '\':
// memberA.memberB.member\.C has parts [memberA memberB member.C].

// PopPathSegment splits the next segment off path. It returns the
// segment bytes (escapes preserved), the delimiter that ended it
// ('.', '[', ']' or 0 at end of path) and the remaining path.
func PopPathSegment(path []byte) (segment []byte, delim byte, rest []byte) {
	if len(path) == 0 {
		return nil, 0, nil
	}
	if path[0] == '.' {
		path = path[1:]
	}
	inEscape := false
	for i := 0; i < len(path); i++ {
		if inEscape {
			inEscape = false
			continue
		}
		switch path[i] {
		case '\\':
			inEscape = true
		case '.', '[', ']':
			return path[:i], path[i], path[i+1:]
		}
	}
	return path, 0, nil
}

// PathCompare reports byte-wise equality of a path segment, with its
// escape bytes stripped, against a member name.
func PathCompare(segment, name []byte) bool {
	if len(segment) > 0 && segment[0] == '\\' {
		segment = segment[1:]
	}
	for len(segment) > 0 && len(name) > 0 {
		if segment[0] != name[0] {
			return false
		}
		segment = segment[1:]
		if len(segment) > 0 && segment[0] == '\\' {
			segment = segment[1:]
		}
		name = name[1:]
	}
	return len(segment) == len(name)
}

// FindRange builds a range over data, walks path and leaves the cursor
// at the first byte of the addressed value. It returns ok=false when
// the path names a member or index the document does not contain.
func FindRange(data []byte, path string, policy Policy) (*Range, bool, error) {
	rng := NewRange(data, policy)
	if err := rng.TrimLeftChecked(); err != nil {
		return rng, false, err
	}
	if rng.HasMore() && path != "" {
		ok, err := findRange2(rng, []byte(path))
		if err != nil || !ok {
			return rng, false, err
		}
	}
	return rng, true, nil
}

func findRange2(rng *Range, path []byte) (bool, error) {
	segment, delim, rest := PopPathSegment(path)
	for len(segment) > 0 {
		var ok bool
		var err error
		if delim == ']' {
			ok, err = stepIndex(rng, segment)
		} else {
			ok, err = stepMember(rng, segment)
		}
		if err != nil || !ok {
			return false, err
		}
		segment, delim, rest = PopPathSegment(rest)
	}
	return true, nil
}

// stepIndex steps into the idx-th element of the enclosing array.
func stepIndex(rng *Range, segment []byte) (bool, error) {
	if err := rng.Expect('['); err != nil {
		return false, err
	}
	rng.TrimLeftUnchecked()
	idx, ok := parseIndex(segment)
	if !ok {
		return false, rng.Errorf(ReasonPathNotFound)
	}
	for idx > 0 {
		idx--
		if rng.FrontIs(']') {
			return false, nil
		}
		if _, err := SkipValue(rng); err != nil {
			return false, err
		}
		if err := rng.TrimLeftChecked(); err != nil {
			return false, err
		}
		if idx > 0 && !rng.FrontIs(',') {
			return false, nil
		}
		if err := rng.CleanTail(); err != nil {
			return false, err
		}
	}
	// Index == length lands on the closing bracket: no such slot.
	if rng.Empty() || rng.FrontIs(']') {
		return false, nil
	}
	return true, nil
}

// stepMember scans the enclosing object for the named member.
func stepMember(rng *Range, segment []byte) (bool, error) {
	if err := rng.Expect('{'); err != nil {
		return false, err
	}
	rng.TrimLeftUnchecked()
	name, err := ParseName(rng)
	if err != nil {
		return false, err
	}
	for !PathCompare(segment, name) {
		if _, err = SkipValue(rng); err != nil {
			return false, err
		}
		if err = rng.CleanTail(); err != nil {
			return false, err
		}
		if rng.Empty() || rng.Front() != '"' {
			return false, nil
		}
		if name, err = ParseName(rng); err != nil {
			return false, err
		}
	}
	return true, nil
}

func parseIndex(segment []byte) (int, bool) {
	if len(segment) == 0 {
		return 0, false
	}
	idx := 0
	for _, c := range segment {
		if c < '0' || c > '9' {
			return 0, false
		}
		idx = idx*10 + int(c-'0')
	}
	return idx, true
}
