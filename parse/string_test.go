package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStringRaw(t *testing.T) {
	rng := NewRange([]byte(`"a\nb",`), Policy{})
	raw, err := ParseStringRaw(rng)
	assert.Nil(t, err)
	// Escapes stay verbatim on the raw path.
	assert.EqualValues(t, `a\nb`, string(raw))
	assert.EqualValues(t, ',', rng.Front())
}

func TestParseStringEscaped(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{
			description: "plain",
			input:       `"hello"`,
			expect:      "hello",
		},
		{
			description: "short escapes",
			input:       `"a\"b\\c\/d\b\f\n\r\t"`,
			expect:      "a\"b\\c/d\b\f\n\r\t",
		},
		{
			description: "unicode escape",
			input:       `"\u00FF"`,
			expect:      "ÿ",
		},
		{
			description: "lowercase hex digits",
			input:       `"\u00e9"`,
			expect:      "é",
		},
		{
			description: "surrogate pair assembles one code point",
			input:       `"\uD83D\uDE00"`,
			expect:      "\U0001F600",
		},
		{
			description: "boundary BMP code point",
			input:       `"\uFFFF"`,
			expect:      "￿",
		},
		{
			description: "raw utf8 passes through",
			input:       "\"é世\"",
			expect:      "é世",
		},
	}
	for _, testCase := range testCases {
		rng := NewRange([]byte(testCase.input), Policy{})
		v, err := ParseStringEscaped(rng)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, v, testCase.description)
	}
}

func TestParseStringEscaped_Errors(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "lone backslash escape", input: `"\x"`, expect: ReasonInvalidEscape},
		{description: "short unicode escape", input: `"\u00"`, expect: ReasonInvalidEscape},
		{description: "bad hex digit", input: `"\u00GG"`, expect: ReasonInvalidEscape},
		{description: "orphan high surrogate", input: `"\uD83D"`, expect: ReasonInvalidEscape},
		{description: "unterminated", input: `"abc`, expect: ReasonUnexpectedEnd},
	}
	for _, testCase := range testCases {
		rng := NewRange([]byte(testCase.input), Policy{})
		_, err := ParseStringEscaped(rng)
		if err == nil || !strings.Contains(err.Error(), testCase.expect) {
			t.Fatalf("%v: unexpected error: %v", testCase.description, err)
		}
	}
}

func TestParseName(t *testing.T) {
	rng := NewRange([]byte(`"name" : 42`), Policy{})
	name, err := ParseName(rng)
	assert.Nil(t, err)
	assert.EqualValues(t, "name", string(name))
	assert.EqualValues(t, '4', rng.Front())

	rng = NewRange([]byte(`"he\"llo":1`), Policy{})
	name, err = ParseName(rng)
	assert.Nil(t, err)
	assert.EqualValues(t, `he\"llo`, string(name))
	assert.EqualValues(t, '1', rng.Front())

	rng = NewRange([]byte(`"name" 42`), Policy{})
	_, err = ParseName(rng)
	if err == nil || !strings.Contains(err.Error(), "Expected ':'") {
		t.Fatalf("unexpected error: %v", err)
	}
}
