// Package converter renders structured content blocks as Markdown.
//
// Each block carries a namespaced type name, typed attributes and one HTML
// fragment. Known block types are rendered natively; anything else passes
// through as a delimited HTML comment section and marks the result as a
// fallback.
package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rgonek/block-markdown-converter/internal/logfields"
	"github.com/rgonek/block-markdown-converter/metrics"
)

// Converter renders blocks to Markdown. It is immutable after New and safe
// for concurrent use.
type Converter struct {
	config Config
}

type state struct {
	config   Config
	ctx      context.Context
	options  ConvertOptions
	warnings []Warning
	hookErr  error
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{config: cfg}, nil
}

// Convert renders blocks as Markdown.
func (c *Converter) Convert(blocks []Block) (Result, error) {
	return c.ConvertWithContext(context.Background(), blocks, ConvertOptions{})
}

// ConvertJSON decodes a JSON array of blocks and renders it.
func (c *Converter) ConvertJSON(input []byte) (Result, error) {
	blocks, err := DecodeBlocks(input)
	if err != nil {
		return Result{}, err
	}
	return c.Convert(blocks)
}

// DecodeBlocks decodes a JSON array of blocks. Numbers in attributes are kept
// as json.Number.
func DecodeBlocks(input []byte) ([]Block, error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return []Block{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()

	var blocks []Block
	if err := dec.Decode(&blocks); err != nil {
		return nil, fmt.Errorf("failed to parse blocks JSON: %w", err)
	}
	if blocks == nil {
		blocks = []Block{}
	}
	return blocks, nil
}

// ConvertWithContext renders blocks as Markdown, checking ctx between blocks
// and passing it to hooks.
func (c *Converter) ConvertWithContext(ctx context.Context, blocks []Block, opts ConvertOptions) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		config:  c.config,
		ctx:     ctx,
		options: opts,
	}

	started := time.Now()
	markdown, hasFallback, err := s.renderBlocks(blocks)
	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailed
	case hasFallback:
		outcome = metrics.OutcomeFallback
	}
	s.config.Recorder.ObserveConversion(metrics.DirectionToMarkdown, time.Since(started), outcome)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Markdown:    markdown,
		HasFallback: hasFallback,
		Warnings:    s.warnings,
	}, nil
}

func (s *state) renderBlocks(blocks []Block) (string, bool, error) {
	parts := make([]string, 0, len(blocks))
	hasFallback := false

	for i, block := range blocks {
		if err := s.checkContext(); err != nil {
			return "", false, err
		}

		text, fallback, err := s.renderBlock(block)
		if err != nil {
			return "", false, fmt.Errorf("block %d (%s): %w", i, block.Type, err)
		}
		if block.Type != "" {
			s.config.Recorder.IncBlock(metrics.DirectionToMarkdown, block.Type)
		}
		if fallback {
			hasFallback = true
			s.config.Recorder.IncFallback(block.Type)
			s.config.Logger.Debug("rendered block through HTML passthrough",
				logfields.Direction(string(metrics.DirectionToMarkdown)),
				logfields.BlockType(block.Type),
				logfields.BlockIndex(i),
			)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), hasFallback, nil
}

// renderBlock renders one block and reports whether it went through the
// HTML passthrough.
func (s *state) renderBlock(block Block) (string, bool, error) {
	if block.Type == "" {
		return "", false, nil
	}

	s.hookErr = nil
	name, known := s.blockName(block.Type)
	if !known {
		text, handled, err := s.renderWithHandler(block)
		if err != nil {
			return "", false, err
		}
		if handled {
			return text, false, nil
		}
		return s.renderUnknown(block)
	}

	var (
		text string
		err  error
	)
	switch name {
	case TypeHeading:
		text = s.renderHeading(block)
	case TypeParagraph:
		text = s.renderParagraph(block)
	case TypeCode:
		text = s.renderCode(block)
	case TypeQuote:
		text = s.renderQuote(block)
	case TypeList:
		text = s.renderList(block)
	case TypeSeparator:
		text = "---"
	case TypeImage:
		text, err = s.renderImage(block)
	}
	if err != nil {
		return "", false, err
	}
	if s.hookErr != nil {
		return "", false, s.hookErr
	}

	return text, false, nil
}

// blockName strips the configured namespace from blockType. Bare names are
// accepted as well; names from another namespace are unknown.
func (s *state) blockName(blockType string) (string, bool) {
	name := blockType
	if ns, rest, found := strings.Cut(blockType, "/"); found {
		if ns != s.config.Namespace {
			return "", false
		}
		name = rest
	}

	switch name {
	case TypeHeading, TypeParagraph, TypeCode, TypeQuote, TypeList, TypeSeparator, TypeImage:
		return name, true
	}
	return "", false
}

func (s *state) renderUnknown(block Block) (string, bool, error) {
	switch s.config.UnknownBlocks {
	case UnknownError:
		return "", false, fmt.Errorf("%w: %s", ErrUnsupportedBlock, block.Type)
	case UnknownSkip:
		s.addWarning(WarningUnsupportedBlock, block.Type, fmt.Sprintf("unsupported block type %q skipped", block.Type))
		return "", true, nil
	}

	s.addWarning(WarningUnsupportedBlock, block.Type, fmt.Sprintf("unsupported block type %q rendered as HTML", block.Type))

	opener := "<!-- HTML BLOCK: " + block.Type + " -->"
	body := block.Body()
	if strings.TrimSpace(body) == "" {
		return opener, true, nil
	}
	return opener + "\n" + body + "\n<!-- END HTML BLOCK -->", true, nil
}

func (s *state) addWarning(warnType WarningType, blockType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:      warnType,
		BlockType: blockType,
		Message:   message,
	})
	s.config.Logger.LogAttrs(s.ctx, slog.LevelDebug, message,
		slog.String("warning", string(warnType)),
		logfields.BlockType(blockType),
	)
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}
