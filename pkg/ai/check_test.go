package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdictDirectJSON(t *testing.T) {
	verdict, err := parseVerdict(`{"isValid": true, "reason": "Looks real."}`)
	require.NoError(t, err)
	assert.True(t, verdict.IsValid)
	assert.Equal(t, "Looks real.", verdict.Reason)
}

func TestParseVerdictFencedJSON(t *testing.T) {
	text := "Sure, here is my assessment:\n```json\n{\"isValid\": false, \"reason\": \"Gibberish name.\"}\n```\n"
	verdict, err := parseVerdict(text)
	require.NoError(t, err)
	assert.False(t, verdict.IsValid)
	assert.Equal(t, "Gibberish name.", verdict.Reason)
}

func TestParseVerdictGarbage(t *testing.T) {
	_, err := parseVerdict("I cannot help with that.")
	assert.Error(t, err)

	_, err = parseVerdict("{not json at all}")
	assert.Error(t, err)
}
