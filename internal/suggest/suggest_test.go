package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommandTypo(t *testing.T) {
	s := New(Commands)
	got := s.Suggest("KGT", 3)
	assert.Contains(t, got, "KGET")
}

func TestSuggestExactMatchHasNoSuggestions(t *testing.T) {
	s := New(Commands)
	assert.Empty(t, s.Suggest("PING", 3))
}

func TestSuggestLimitsResultCount(t *testing.T) {
	s := New(QueryBases)
	got := s.Suggest("x", 2)
	assert.LessOrEqual(t, len(got), 2)
}
