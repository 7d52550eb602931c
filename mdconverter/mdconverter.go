// Package mdconverter parses the Markdown dialect into structured content blocks.
//
// Parsing is line oriented: every line is classified on its own and a single
// loop keeps the open code fence, paragraph and list run for the current call.
package mdconverter

import (
	"context"
	"strings"
	"time"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/metrics"
)

// Converter converts Markdown to blocks. It is immutable after New and safe
// for concurrent use.
type Converter struct {
	config ReverseConfig
}

type state struct {
	config   ReverseConfig
	ctx      context.Context
	options  ConvertOptions
	blocks   []converter.Block
	warnings []converter.Warning
	hookErr  error
}

// New creates a new reverse Converter with the given config.
func New(config ReverseConfig) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{config: cfg}, nil
}

// Convert parses a Markdown document into blocks. Without hooks it never fails.
func (c *Converter) Convert(markdown string) (Result, error) {
	return c.ConvertWithContext(context.Background(), markdown, ConvertOptions{})
}

// ConvertWithContext parses markdown, checking ctx between lines and passing
// it to hooks.
func (c *Converter) ConvertWithContext(ctx context.Context, markdown string, opts ConvertOptions) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		config:  c.config,
		ctx:     ctx,
		options: opts,
		blocks:  []converter.Block{},
	}

	started := time.Now()
	err := s.parse(strings.Split(markdown, "\n"))
	if err == nil {
		err = s.hookErr
	}
	if err != nil {
		s.config.Recorder.ObserveConversion(metrics.DirectionToBlocks, time.Since(started), metrics.OutcomeFailed)
		return Result{}, err
	}
	s.config.Recorder.ObserveConversion(metrics.DirectionToBlocks, time.Since(started), metrics.OutcomeSuccess)

	return Result{
		Blocks:   s.blocks,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType converter.WarningType, blockType, message string) {
	s.warnings = append(s.warnings, converter.Warning{
		Type:      warnType,
		BlockType: blockType,
		Message:   message,
	})
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}
