package serialize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendCivil(t *testing.T) {
	var testCases = []struct {
		description string
		value       time.Time
		expect      string
	}{
		{
			description: "milliseconds emitted zero padded",
			value:       time.Date(1970, 1, 2, 3, 4, 5, 6000000, time.UTC),
			expect:      `"1970-01-02T03:04:05.006Z"`,
		},
		{
			description: "milliseconds omitted when zero",
			value:       time.Date(1970, 1, 2, 3, 4, 5, 0, time.UTC),
			expect:      `"1970-01-02T03:04:05Z"`,
		},
		{
			description: "fields zero padded",
			value:       time.Date(9, 9, 9, 9, 9, 9, 0, time.UTC),
			expect:      `"0009-09-09T09:09:09Z"`,
		},
		{
			description: "non-utc time rendered in utc",
			value:       time.Date(2020, 6, 1, 2, 0, 0, 0, time.FixedZone("X", 3600)),
			expect:      `"2020-06-01T01:00:00Z"`,
		},
		{
			description: "sub-millisecond precision truncated",
			value:       time.Date(2020, 1, 1, 0, 0, 0, 1999999, time.UTC),
			expect:      `"2020-01-01T00:00:00.001Z"`,
		},
	}
	for _, testCase := range testCases {
		out := AppendCivil(nil, CivilFromTime(testCase.value))
		assert.EqualValues(t, testCase.expect, string(out), testCase.description)
	}
}

func TestCivilFromTime(t *testing.T) {
	c := CivilFromTime(time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC))
	assert.EqualValues(t, 2024, c.Year)
	assert.EqualValues(t, 2, c.Month)
	assert.EqualValues(t, 29, c.Day)
	assert.EqualValues(t, 999, c.Millisecond)
}
