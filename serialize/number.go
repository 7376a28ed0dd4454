package serialize

import "strconv"

// AppendInt renders v in base-10 ASCII. Digits are produced modulo 10
// into a small buffer and reversed; the first round runs before
// negation so the minimum value of the width survives.
func AppendInt(dst []byte, v int64) []byte {
	var buff [20]byte
	n := 0
	if v < 0 {
		dst = append(dst, '-')
		buff[n] = byte('0' - v%10)
		n++
		v /= -10
		if v == 0 {
			return append(dst, buff[0])
		}
	}
	for {
		buff[n] = byte('0' + v%10)
		n++
		v /= 10
		if v == 0 {
			break
		}
	}
	for n > 0 {
		n--
		dst = append(dst, buff[n])
	}
	return dst
}

// AppendUint renders v in base-10 ASCII with no leading zeros.
func AppendUint(dst []byte, v uint64) []byte {
	var buff [20]byte
	n := 0
	for {
		buff[n] = byte('0' + v%10)
		n++
		v /= 10
		if v == 0 {
			break
		}
	}
	for n > 0 {
		n--
		dst = append(dst, buff[n])
	}
	return dst
}

// AppendFloat renders v as the shortest decimal that re-parses to the
// same IEEE-754 bit pattern.
func AppendFloat(dst []byte, v float64) []byte {
	return strconv.AppendFloat(dst, v, 'g', -1, 64)
}
