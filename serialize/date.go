package serialize

import "time"

// Civil is a date/time broken into calendar fields without a timezone
// offset; the trailing Z on the wire denotes UTC.
type Civil struct {
	Year        int32
	Month       uint8
	Day         uint8
	Hour        uint8
	Minute      uint8
	Second      uint8
	Millisecond uint16
}

// CivilFromTime breaks a time point into UTC civil fields, truncating
// sub-millisecond precision.
func CivilFromTime(t time.Time) Civil {
	t = t.UTC()
	year, month, day := t.Date()
	return Civil{
		Year:        int32(year),
		Month:       uint8(month),
		Day:         uint8(day),
		Hour:        uint8(t.Hour()),
		Minute:      uint8(t.Minute()),
		Second:      uint8(t.Second()),
		Millisecond: uint16(t.Nanosecond() / int(time.Millisecond)),
	}
}

// AppendCivil renders "YYYY-MM-DDTHH:MM:SS(.sss)?Z" with zero-padded
// fixed widths, between quotes. Milliseconds are omitted when zero.
func AppendCivil(dst []byte, c Civil) []byte {
	dst = append(dst, '"')
	dst = appendPadded(dst, int64(c.Year), 4)
	dst = append(dst, '-')
	dst = appendPadded(dst, int64(c.Month), 2)
	dst = append(dst, '-')
	dst = appendPadded(dst, int64(c.Day), 2)
	dst = append(dst, 'T')
	dst = appendPadded(dst, int64(c.Hour), 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, int64(c.Minute), 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, int64(c.Second), 2)
	if c.Millisecond > 0 {
		dst = append(dst, '.')
		dst = appendPadded(dst, int64(c.Millisecond), 3)
	}
	return append(dst, 'Z', '"')
}

func appendPadded(dst []byte, v int64, width int) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
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
	for n < width {
		buff[n] = '0'
		n++
	}
	for n > 0 {
		n--
		dst = append(dst, buff[n])
	}
	return dst
}
