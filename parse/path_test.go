package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopPathSegment(t *testing.T) {
	var testCases = []struct {
		description string
		path        string
		expect      []string
		expectDelim []byte
	}{
		{
			description: "dotted members",
			path:        "memberA.memberB.memberC",
			expect:      []string{"memberA", "memberB", "memberC"},
			expectDelim: []byte{'.', '.', 0},
		},
		{
			description: "escaped dot stays in the segment",
			path:        `memberA.memberB.member\.C`,
			expect:      []string{"memberA", "memberB", `member\.C`},
			expectDelim: []byte{'.', '.', 0},
		},
		{
			description: "array step",
			path:        "a[2].b",
			expect:      []string{"a", "2", "b"},
			expectDelim: []byte{'[', ']', 0},
		},
		{
			description: "leading dot dropped",
			path:        ".a.b",
			expect:      []string{"a", "b"},
			expectDelim: []byte{'.', 0},
		},
	}

	for _, testCase := range testCases {
		rest := []byte(testCase.path)
		var segments []string
		var delims []byte
		for {
			var segment []byte
			var delim byte
			segment, delim, rest = PopPathSegment(rest)
			if len(segment) == 0 {
				break
			}
			segments = append(segments, string(segment))
			delims = append(delims, delim)
		}
		assert.EqualValues(t, testCase.expect, segments, testCase.description)
		assert.EqualValues(t, testCase.expectDelim, delims, testCase.description)
	}
}

func TestPathCompare(t *testing.T) {
	assert.True(t, PathCompare([]byte("abc"), []byte("abc")))
	assert.True(t, PathCompare([]byte(`member\.C`), []byte("member.C")))
	assert.False(t, PathCompare([]byte("abc"), []byte("abcd")))
	assert.False(t, PathCompare([]byte("abd"), []byte("abc")))
}

func TestFindRange(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		path        string
		expectOk    bool
		expectValue string
	}{
		{
			description: "member of nested array element",
			input:       `{"a":[10,20,{"b":"hi"}]}`,
			path:        "a[2].b",
			expectOk:    true,
			expectValue: `"hi"`,
		},
		{
			description: "first array element",
			input:       `{"a":[10,20]}`,
			path:        "a[0]",
			expectOk:    true,
			expectValue: "10",
		},
		{
			description: "later member after skipping others",
			input:       `{"x":{"deep":[1]},"y":2}`,
			path:        "y",
			expectOk:    true,
			expectValue: "2",
		},
		{
			description: "escaped member name",
			input:       `{"a.b":5}`,
			path:        `a\.b`,
			expectOk:    true,
			expectValue: "5",
		},
		{
			description: "empty path addresses root",
			input:       ` [1,2]`,
			path:        "",
			expectOk:    true,
			expectValue: "[1,2]",
		},
		{
			description: "missing member",
			input:       `{"a":1}`,
			path:        "b",
			expectOk:    false,
		},
		{
			description: "index equal to length",
			input:       `{"a":[1]}`,
			path:        "a[1]",
			expectOk:    false,
		},
		{
			description: "index past the end",
			input:       `{"a":[1]}`,
			path:        "a[3]",
			expectOk:    false,
		},
		{
			description: "index into empty array",
			input:       `{"a":[]}`,
			path:        "a[0]",
			expectOk:    false,
		},
	}

	for _, testCase := range testCases {
		rng, ok, err := FindRange([]byte(testCase.input), testCase.path, Policy{})
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expectOk, ok, testCase.description)
		if !testCase.expectOk {
			continue
		}
		raw, err := SkipValue(rng)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expectValue, string(raw), testCase.description)
	}
}
