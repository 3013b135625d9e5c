package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONL_AtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "things.jsonl")

	records := []json.RawMessage{
		json.RawMessage(`{"id":"1"}`),
		json.RawMessage(`{"id":"2"}`),
	}
	require.NoError(t, writeJSONL(path, records))

	got, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be renamed away")
}

func TestReadJSONL_SkipsBlankAndMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\n\n{broken\n{\"b\":2}\n"), 0o644))

	got, err := readJSONL(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadJSONL_LongLineWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.jsonl")
	long := `{"note":"` + strings.Repeat("x", 100_000) + `"}`
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\n"+long), 0o644))

	got, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[1], len(long))
}

func TestInitJSONLFiles_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, ordersFile)
	require.NoError(t, os.WriteFile(existing, []byte("{\"order_id\":\"x\"}\n"), 0o644))

	require.NoError(t, initJSONLFiles(dir))

	for _, name := range jsonlFiles {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), "order_id")
}
