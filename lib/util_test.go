package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinLenPrefix(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		input    [][]byte
		expected []byte
	}{
		{
			name:     "single segment",
			detail:   "a single segment is prefixed by its length",
			input:    [][]byte{[]byte("ab")},
			expected: []byte{2, 'a', 'b'},
		},
		{
			name:     "nil segments skipped",
			detail:   "nil segments do not contribute to the key",
			input:    [][]byte{{1}, nil, []byte("x")},
			expected: []byte{1, 1, 1, 'x'},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := JoinLenPrefix(test.input...)
			require.Equal(t, test.expected, got)
			// decode the key back into its segments
			segments, err := DecodeLengthPrefixed(got)
			require.NoError(t, err)
			var nonNil [][]byte
			for _, in := range test.input {
				if in != nil {
					nonNil = append(nonNil, in)
				}
			}
			require.Equal(t, nonNil, segments)
		})
	}
}

func TestDecodeLengthPrefixedCorrupt(t *testing.T) {
	_, err := DecodeLengthPrefixed([]byte{5, 'a'})
	require.ErrorContains(t, err, "the argument is invalid")
}

func TestPrefixEnd(t *testing.T) {
	tests := []struct {
		name     string
		prefix   []byte
		expected []byte
	}{
		{name: "simple", prefix: []byte{1, 2}, expected: []byte{1, 3}},
		{name: "carry", prefix: []byte{1, 0xFF}, expected: []byte{2}},
		{name: "unbounded", prefix: []byte{0xFF, 0xFF}, expected: nil},
		{name: "empty", prefix: nil, expected: nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, PrefixEnd(test.prefix))
		})
	}
}

func TestJSONFile(t *testing.T) {
	type sample struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	dir := t.TempDir()
	expected := sample{Name: "con_amm", Value: 7}
	require.NoError(t, SaveJSONToFile(expected, dir, "sample.json"))
	bz, err := os.ReadFile(filepath.Join(dir, "sample.json"))
	require.NoError(t, err)
	got := sample{}
	require.NoError(t, UnmarshalJSON(bz, &got))
	require.Equal(t, expected, got)
	// a missing directory is a write error
	e := SaveJSONToFile(expected, filepath.Join(dir, "missing"), "sample.json")
	require.Error(t, e)
	require.Equal(t, CodeWriteFile, e.Code())
}
