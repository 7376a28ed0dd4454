package parse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      time.Time
	}{
		{
			description: "whole seconds",
			input:       `"1970-01-02T03:04:05Z"`,
			expect:      time.Date(1970, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			description: "milliseconds",
			input:       `"1970-01-02T03:04:05.006Z"`,
			expect:      time.Date(1970, 1, 2, 3, 4, 5, 6000000, time.UTC),
		},
		{
			description: "epoch",
			input:       `"1970-01-01T00:00:00Z"`,
			expect:      time.Unix(0, 0).UTC(),
		},
		{
			description: "leap second field accepted",
			input:       `"2016-12-31T23:59:60Z"`,
			expect:      time.Date(2016, 12, 31, 23, 59, 60, 0, time.UTC),
		},
	}
	for _, testCase := range testCases {
		rng := NewRange([]byte(testCase.input), Policy{})
		v, err := ParseDate(rng)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.True(t, testCase.expect.Equal(v), testCase.description)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	var testCases = []string{
		`"1970-01-02"`,
		`"1970-01-02 03:04:05Z"`,
		`"1970-13-02T03:04:05Z"`,
		`"1970-01-32T03:04:05Z"`,
		`"1970-01-02T24:04:05Z"`,
		`"1970-01-02T03:60:05Z"`,
		`"1970-01-02T03:04:05"`,
		`"1970-01-02T03:04:05+00:00"`,
		`"1970-01-02T03:04:05.6Z"`,
		`"not a date"`,
	}
	for _, input := range testCases {
		rng := NewRange([]byte(input), Policy{})
		_, err := ParseDate(rng)
		if err == nil || !strings.Contains(err.Error(), ReasonInvalidDate) {
			t.Fatalf("%v: unexpected error: %v", input, err)
		}
	}
}
