package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCapitalizeWords(t *testing.T) {
	u := New()

	assert.Equal(t, "Ada", u.CapitalizeWords("ada"))
	assert.Equal(t, "Ada Obi", u.CapitalizeWords("  aDa   oBi "))
	assert.Equal(t, "", u.CapitalizeWords("   "))
}

func TestTruncateWithEllipsis(t *testing.T) {
	u := New()

	assert.Equal(t, "short", u.TruncateWithEllipsis("short", 10))
	assert.Equal(t, "abcdefg...", u.TruncateWithEllipsis("abcdefghijk", 10))
	// max too small to fit the marker leaves the string alone
	assert.Equal(t, "abcdef", u.TruncateWithEllipsis("abcdef", 3))
}

func TestTruncateWithEllipsisKeepsRuneBoundaries(t *testing.T) {
	u := New()

	// the cut point lands inside the second emoji
	s := strings.Repeat("a", 10) + "💰💰💰"
	got := u.TruncateWithEllipsis(s, 15)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 15)
	assert.True(t, strings.HasSuffix(got, "..."))
}
