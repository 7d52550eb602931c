package mdconverter

import (
	"encoding/json"
	"testing"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseConfigDefaults(t *testing.T) {
	cfg := (ReverseConfig{}).applyDefaults()

	assert.Equal(t, converter.DefaultNamespace, cfg.Namespace)
	assert.Equal(t, UnclosedFenceCode, cfg.UnclosedFence)
	assert.Equal(t, ResolutionBestEffort, cfg.ResolutionMode)
	assert.NotNil(t, cfg.Logger)
	assert.Equal(t, metrics.NoopRecorder{}, cfg.Recorder)
}

func TestReverseConfigValidate(t *testing.T) {
	valid := ReverseConfig{
		Namespace:     "acme",
		HeadingOffset: 2,
		LanguageMap:   map[string]string{"golang": "go"},
		UnclosedFence: UnclosedFenceDrop,
	}
	require.NoError(t, valid.applyDefaults().Validate())

	tests := []struct {
		name   string
		mutate func(*ReverseConfig)
		errMsg string
	}{
		{name: "namespace", mutate: func(c *ReverseConfig) { c.Namespace = "Bad NS" }, errMsg: "invalid namespace"},
		{name: "heading offset", mutate: func(c *ReverseConfig) { c.HeadingOffset = 6 }, errMsg: "headingOffset"},
		{name: "language map", mutate: func(c *ReverseConfig) { c.LanguageMap = map[string]string{"": "go"} }, errMsg: "languageMap"},
		{name: "fence policy", mutate: func(c *ReverseConfig) { c.UnclosedFence = "close" }, errMsg: `invalid unclosedFence policy "close"`},
		{name: "resolution mode", mutate: func(c *ReverseConfig) { c.ResolutionMode = "eager" }, errMsg: `invalid resolutionMode "eager"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := (ReverseConfig{}).applyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(ReverseConfig{UnclosedFence: "sometimes"})
	require.Error(t, err)
}

func TestReverseConfigCloneIsolatesLanguageMap(t *testing.T) {
	languages := map[string]string{"golang": "go"}
	conv := newTestConverter(t, ReverseConfig{LanguageMap: languages})

	languages["golang"] = "mutated"
	result, err := conv.Convert("```golang\nx\n```")
	require.NoError(t, err)
	assert.Equal(t, "go", result.Blocks[0].Attributes["language"])
}

func TestReverseConfigSerialization(t *testing.T) {
	cfg := ReverseConfig{
		Namespace:     "acme",
		HeadingOffset: -1,
		LanguageMap:   map[string]string{"golang": "go"},
		UnclosedFence: UnclosedFenceParagraph,
	}.applyDefaults()

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Logger")

	var decoded ReverseConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cfg.Namespace, decoded.Namespace)
	assert.Equal(t, cfg.HeadingOffset, decoded.HeadingOffset)
	assert.Equal(t, cfg.LanguageMap, decoded.LanguageMap)
	assert.Equal(t, cfg.UnclosedFence, decoded.UnclosedFence)
}
