package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/mdconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "bmc.yaml", `
render:
  namespace: acme
  headingOffset: -1
  bulletMarker: "*"
  languageMap:
    golang: go
  unknownBlocks: skip
  resolutionMode: strict
parse:
  unclosedFence: drop
  languageMap:
    sh: bash
`)

	render, parse, err := loadConfigFile(path, converter.Config{}, mdconverter.ReverseConfig{})
	require.NoError(t, err)

	assert.Equal(t, "acme", render.Namespace)
	assert.Equal(t, -1, render.HeadingOffset)
	assert.Equal(t, '*', render.BulletMarker)
	assert.Equal(t, map[string]string{"golang": "go"}, render.LanguageMap)
	assert.Equal(t, converter.UnknownSkip, render.UnknownBlocks)
	assert.Equal(t, converter.ResolutionStrict, render.ResolutionMode)

	assert.Equal(t, mdconverter.UnclosedFenceDrop, parse.UnclosedFence)
	assert.Equal(t, map[string]string{"sh": "bash"}, parse.LanguageMap)

	_, err = converter.New(render)
	require.NoError(t, err)
	_, err = mdconverter.New(parse)
	require.NoError(t, err)
}

func TestLoadConfigFileKeepsUnsetValues(t *testing.T) {
	path := writeFile(t, "bmc.yaml", "render:\n  headingOffset: 2\n")

	render, parse, err := loadConfigFile(path,
		converter.Config{UnknownBlocks: converter.UnknownError},
		mdconverter.ReverseConfig{UnclosedFence: mdconverter.UnclosedFenceParagraph},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, render.HeadingOffset)
	assert.Equal(t, converter.UnknownError, render.UnknownBlocks)
	assert.Equal(t, mdconverter.UnclosedFenceParagraph, parse.UnclosedFence)
}

func TestLoadConfigFileEmpty(t *testing.T) {
	path := writeFile(t, "bmc.yaml", "")

	render, _, err := loadConfigFile(path, converter.Config{Namespace: "acme"}, mdconverter.ReverseConfig{})
	require.NoError(t, err)
	assert.Equal(t, "acme", render.Namespace)
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown key", content: "render:\n  bullets: '*'\n", errMsg: "parse config"},
		{name: "long bullet", content: "render:\n  bulletMarker: '**'\n", errMsg: "bulletMarker must be a single character"},
		{name: "bad yaml", content: "render: [\n", errMsg: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bmc.yaml", tt.content)
			_, _, err := loadConfigFile(path, converter.Config{}, mdconverter.ReverseConfig{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, _, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), converter.Config{}, mdconverter.ReverseConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
