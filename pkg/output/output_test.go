package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.json")
	items := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Player 1"}`),
		json.RawMessage(`{"id":2,"name":"Player 2"}`),
	}

	require.NoError(t, Save(items, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Player 1", decoded[0]["name"])

	// Indented output, not a single compact line.
	assert.Contains(t, string(data), "\n  ")
}

func TestSave_NilItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	require.NoError(t, Save(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.json")

	require.NoError(t, Save([]json.RawMessage{json.RawMessage(`{"id":1}`)}, path))
	require.NoError(t, Save([]json.RawMessage{json.RawMessage(`{"id":2}`)}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.EqualValues(t, 2, decoded[0]["id"])
}

func TestCompressDecompress_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "players.json")
	compressed := filepath.Join(dir, "players.json.gz")
	restored := filepath.Join(dir, "restored.json")

	items := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Player 1","stats":{"pace":91}}`),
	}
	require.NoError(t, Save(items, original))

	require.NoError(t, Compress(original, compressed))
	require.NoError(t, Decompress(compressed, restored))

	want, err := os.ReadFile(original)
	require.NoError(t, err)
	got, err := os.ReadFile(restored)
	require.NoError(t, err)

	assert.Equal(t, want, got, "round trip must be byte-faithful")
}

func TestCompress_Shrinks(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "players.json")
	compressed := filepath.Join(dir, "players.json.gz")

	// Repetitive payload compresses well.
	items := make([]json.RawMessage, 500)
	for i := range items {
		items[i] = json.RawMessage(`{"id":1,"name":"Player","rating":90}`)
	}
	require.NoError(t, Save(items, original))
	require.NoError(t, Compress(original, compressed))

	origInfo, err := os.Stat(original)
	require.NoError(t, err)
	gzInfo, err := os.Stat(compressed)
	require.NoError(t, err)

	assert.Less(t, gzInfo.Size(), origInfo.Size())
}

func TestCompress_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Compress(filepath.Join(dir, "absent.json"), filepath.Join(dir, "out.gz"))
	assert.Error(t, err)
}

func TestDecompress_NotGzip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(in, []byte("not gzip data"), 0o644))

	err := Decompress(in, filepath.Join(dir, "out.json"))
	assert.Error(t, err)
}
