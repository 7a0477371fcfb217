package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSheetDateShapes(t *testing.T) {
	cases := map[string]string{
		"2024-01-05":               "2024-01-05",
		"2024-01-05T14:30:00Z":     "2024-01-05",
		"2024-01-05T14:30:00.123Z": "2024-01-05",
		"2024-01-05 14:30:00":      "2024-01-05",
		"05.01.2024":               "2024-01-05",
		"05/01/2024":               "2024-01-05",
		"05-01-2024":               "2024-01-05",
		"2024.01.05":               "2024-01-05",
		"45292":                    "2024-01-01", // Excel serial
	}
	for input, want := range cases {
		got, ok := ParseSheetDate(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseSheetDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "notadate", "99.99.2024", "123"} {
		_, ok := ParseSheetDate(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseSheetTimeKeepsTimeOfDay(t *testing.T) {
	at, ok := ParseSheetTime("2024-01-05T14:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 14, at.Hour())

	midnight, ok := ParseSheetTime("05.01.2024")
	require.True(t, ok)
	assert.Equal(t, 0, midnight.Hour())
}
