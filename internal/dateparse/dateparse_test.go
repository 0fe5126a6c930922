package dateparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEquivalentForms(t *testing.T) {
	// All of these spell the first of December.
	inputs := []string{
		"01.12",
		"1 December",
		"2006-12-01",
		"1 грудня",
		"1 декабря",
		"01.12.2006",
	}

	for _, input := range inputs {
		md, err := Normalize(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "12-01", md.String(), "input %q", input)
	}
}

func TestNormalizeDiscardsYear(t *testing.T) {
	md, err := Normalize("7 March 1990")
	require.NoError(t, err)
	assert.Equal(t, "03-07", md.String())
}

func TestNormalizeNumericIsDayFirst(t *testing.T) {
	md, err := Normalize("03-07-1990")
	require.NoError(t, err)
	assert.Equal(t, "07-03", md.String())
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	md, err := Normalize("  24.08  ")
	require.NoError(t, err)
	assert.Equal(t, "08-24", md.String())
}

func TestNormalizeFailures(t *testing.T) {
	for _, input := range []string{"", "   ", "garbage", "hello world"} {
		_, err := Normalize(input)
		assert.ErrorIs(t, err, ErrUnrecognizedDate, "input %q", input)
	}
}
