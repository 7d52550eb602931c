package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/mdconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, dir string, debounce time.Duration) *dirWatcher {
	t.Helper()
	conv, err := mdconverter.New(mdconverter.ReverseConfig{})
	require.NoError(t, err)

	w, err := newDirWatcher(dir, conv, debounce)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func readBlocks(t *testing.T, path string) []converter.Block {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	blocks, err := converter.DecodeBlocks(data)
	require.NoError(t, err)
	return blocks
}

func TestBlocksPath(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "notes.blocks.json"), blocksPath(filepath.Join("docs", "notes.md")))
	assert.Equal(t, "README.blocks.json", blocksPath("README.markdown"))
}

func TestIsMarkdownFile(t *testing.T) {
	assert.True(t, isMarkdownFile("a.md"))
	assert.True(t, isMarkdownFile("A.MD"))
	assert.True(t, isMarkdownFile("b.markdown"))
	assert.False(t, isMarkdownFile("a.blocks.json"))
	assert.False(t, isMarkdownFile("md"))
}

func TestConvertExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n\ntext"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("# no"), 0o644))

	w := newTestWatcher(t, dir, time.Millisecond)
	require.NoError(t, w.convertExisting())

	blocks := readBlocks(t, filepath.Join(dir, "a.blocks.json"))
	require.Len(t, blocks, 2)
	assert.Equal(t, "core/heading", blocks[0].Type)
	assert.Equal(t, "<p>text</p>", blocks[1].BodyHTML)

	_, err := os.Stat(filepath.Join(dir, "skip.blocks.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestScheduleDebouncesRepeatedEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	w := newTestWatcher(t, dir, 50*time.Millisecond)
	w.schedule(path)
	require.NoError(t, os.WriteFile(path, []byte("---"), 0o644))
	w.schedule(path)

	target := blocksPath(path)
	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Close())

	blocks := readBlocks(t, target)
	require.Len(t, blocks, 1)
	assert.Equal(t, "core/separator", blocks[0].Type)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestCloseCancelsPendingConversions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))

	w := newTestWatcher(t, dir, time.Hour)
	w.schedule(path)
	require.NoError(t, w.Close())

	_, err := os.Stat(blocksPath(path))
	assert.True(t, os.IsNotExist(err))
}
