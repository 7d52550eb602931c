package converter

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rgonek/block-markdown-converter/metrics"
)

// UnknownPolicy controls behavior for block types the renderer does not know.
type UnknownPolicy string

const (
	UnknownError       UnknownPolicy = "error"
	UnknownSkip        UnknownPolicy = "skip"
	UnknownPlaceholder UnknownPolicy = "placeholder"
)

var namespacePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Config holds all converter configuration options.
type Config struct {
	Namespace      string                  `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	HeadingOffset  int                     `json:"headingOffset,omitempty" yaml:"headingOffset,omitempty"`
	BulletMarker   rune                    `json:"bulletMarker,omitempty" yaml:"-"`
	LanguageMap    map[string]string       `json:"languageMap,omitempty" yaml:"languageMap,omitempty"`
	UnknownBlocks  UnknownPolicy           `json:"unknownBlocks,omitempty" yaml:"unknownBlocks,omitempty"`
	ResolutionMode ResolutionMode          `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	LinkHook       LinkRenderHook          `json:"-" yaml:"-"`
	ImageHook      ImageRenderHook         `json:"-" yaml:"-"`
	BlockHandlers  map[string]BlockHandler `json:"-" yaml:"-"`
	Logger         *slog.Logger            `json:"-" yaml:"-"`
	Recorder       metrics.Recorder        `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.BulletMarker == 0 {
		c.BulletMarker = '-'
	}
	if c.UnknownBlocks == "" {
		c.UnknownBlocks = UnknownPlaceholder
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

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.LanguageMap = CloneStringMap(c.LanguageMap)
	cloned.BlockHandlers = cloneHandlers(c.BlockHandlers)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if err := ValidateNamespace(c.Namespace); err != nil {
		return err
	}
	if c.HeadingOffset < -5 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between -5 and 5, got %d", c.HeadingOffset)
	}
	if c.BulletMarker != '-' && c.BulletMarker != '*' && c.BulletMarker != '+' {
		return fmt.Errorf("invalid bulletMarker %q: must be one of -, *, +", c.BulletMarker)
	}
	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}
	if c.UnknownBlocks != UnknownError && c.UnknownBlocks != UnknownSkip && c.UnknownBlocks != UnknownPlaceholder {
		return fmt.Errorf("invalid unknownBlocks policy %q", c.UnknownBlocks)
	}
	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}
	for blockType, handler := range c.BlockHandlers {
		if strings.TrimSpace(blockType) == "" || handler == nil {
			return fmt.Errorf("blockHandlers entries need a block type and a non-nil handler")
		}
	}

	return nil
}

// ValidateNamespace reports whether ns can prefix block type names.
func ValidateNamespace(ns string) error {
	if !namespacePattern.MatchString(ns) {
		return fmt.Errorf("invalid namespace %q", ns)
	}
	return nil
}

// CloneStringMap copies a string map; nil stays nil.
func CloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}

// ClampHeadingLevel shifts level by offset and clamps the result to 1..6.
func ClampHeadingLevel(level, offset int) int {
	level += offset
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
