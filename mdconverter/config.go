package mdconverter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/metrics"
)

// UnclosedFencePolicy controls what happens to a code fence that is still open
// at the end of the input.
type UnclosedFencePolicy string

const (
	// UnclosedFenceCode emits the buffered lines as a code block, as if the
	// fence were closed at the end of the document.
	UnclosedFenceCode UnclosedFencePolicy = "code"
	// UnclosedFenceParagraph emits the opening fence line and the buffered
	// lines as one paragraph.
	UnclosedFenceParagraph UnclosedFencePolicy = "paragraph"
	// UnclosedFenceDrop discards the buffered lines.
	UnclosedFenceDrop UnclosedFencePolicy = "drop"
)

// ReverseConfig configures Markdown to Blocks conversion behavior.
type ReverseConfig struct {
	Namespace      string              `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	HeadingOffset  int                 `json:"headingOffset,omitempty" yaml:"headingOffset,omitempty"`
	LanguageMap    map[string]string   `json:"languageMap,omitempty" yaml:"languageMap,omitempty"`
	UnclosedFence  UnclosedFencePolicy `json:"unclosedFence,omitempty" yaml:"unclosedFence,omitempty"`
	ResolutionMode ResolutionMode      `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	LinkHook       LinkParseHook       `json:"-" yaml:"-"`
	ImageHook      ImageParseHook      `json:"-" yaml:"-"`
	Logger         *slog.Logger        `json:"-" yaml:"-"`
	Recorder       metrics.Recorder    `json:"-" yaml:"-"`
}

func (c ReverseConfig) applyDefaults() ReverseConfig {
	if c.Namespace == "" {
		c.Namespace = converter.DefaultNamespace
	}
	if c.UnclosedFence == "" {
		c.UnclosedFence = UnclosedFenceCode
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Recorder == nil {
		c.Recorder = metrics.NoopRecorder{}
	}

	return c
}

func (c ReverseConfig) clone() ReverseConfig {
	cloned := c
	cloned.LanguageMap = converter.CloneStringMap(c.LanguageMap)
	return cloned
}

// Validate checks that config values are valid.
func (c ReverseConfig) Validate() error {
	if err := converter.ValidateNamespace(c.Namespace); err != nil {
		return err
	}

	if c.HeadingOffset < -5 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between -5 and 5, got %d", c.HeadingOffset)
	}

	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}

	if c.UnclosedFence != UnclosedFenceCode &&
		c.UnclosedFence != UnclosedFenceParagraph &&
		c.UnclosedFence != UnclosedFenceDrop {
		return fmt.Errorf("invalid unclosedFence policy %q", c.UnclosedFence)
	}

	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}
