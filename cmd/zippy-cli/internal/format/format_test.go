package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []string{"PATH", "DECISION"}, [][]string{
		{"/", "render landing"},
		{"/main", "redirect /auth"},
	})
	require.NoError(t, err)

	want := "PATH   DECISION\n" +
		"----   --------\n" +
		"/      render landing\n" +
		"/main  redirect /auth\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []string{"ID"}, nil))
	assert.Contains(t, buf.String(), "No entries found")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Kathma...", Truncate("Kathmandu Valley", 9))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("table"))
	assert.True(t, Valid("json"))
	assert.False(t, Valid("yaml"))
}
