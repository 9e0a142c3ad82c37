package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestSimilar(t *testing.T) {
	outputs := []string{"tex", "word"}
	require.Equal(t, []Suggestion{{Value: "tex", Distance: 1}}, SuggestSimilar("TEK", outputs))
	require.Equal(t, []Suggestion{{Value: "word", Distance: 1}}, SuggestSimilar("wrd", outputs))
	require.Empty(t, SuggestSimilar("latexml", outputs))
	require.Empty(t, SuggestSimilar("tex", outputs))
	require.Nil(t, SuggestSimilar("", outputs))
}

func TestSuggestOrdering(t *testing.T) {
	got := SuggestSimilar("arctan", []string{"arctanh", "arccos", "arctan2", "arcsin", "tan"})
	require.Equal(t, []Suggestion{
		{Value: "arctan2", Distance: 1},
		{Value: "arctanh", Distance: 1},
		{Value: "arcsin", Distance: 2},
	}, got)
}

func TestFormatSuggestions(t *testing.T) {
	require.Equal(t, "", FormatSuggestions(nil))
	require.Equal(t, "did you mean 'tex'?", FormatSuggestions([]Suggestion{{Value: "tex"}}))
	require.Equal(t, "did you mean one of: 'a', 'b'?",
		FormatSuggestions([]Suggestion{{Value: "a"}, {Value: "b"}}))
}

func TestEditDistance(t *testing.T) {
	require.Equal(t, 0, editDistance("", ""))
	require.Equal(t, 3, editDistance("", "abc"))
	require.Equal(t, 3, editDistance("kitten", "sitting"))
	require.Equal(t, 1, editDistance("αβ", "αγ"))
}
