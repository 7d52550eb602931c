package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rgonek/block-markdown-converter/blockfmt"
	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/internal/logfields"
	"github.com/rgonek/block-markdown-converter/mdconverter"
)

// ToMarkdownCmd implements the 'to-markdown' command.
type ToMarkdownCmd struct {
	Input       string `arg:"" optional:"" default:"-" help:"Block file to convert, or - for stdin."`
	InputFormat string `name:"input-format" enum:"auto,json,serialized" default:"auto" help:"Block input format (auto|json|serialized)."`
}

func (c *ToMarkdownCmd) Run(rt *runtime) error {
	data, err := readInput(c.Input, rt.stdin)
	if err != nil {
		return err
	}

	format := blockInputFormat(c.InputFormat, c.Input, data)
	var blocks []converter.Block
	switch format {
	case formatJSON:
		blocks, err = converter.DecodeBlocks(data)
	default:
		blocks, err = blockfmt.Parse(string(data))
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", c.Input, err)
	}

	conv, err := converter.New(rt.render)
	if err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}

	result, err := conv.ConvertWithContext(context.Background(), blocks, converter.ConvertOptions{SourcePath: c.Input})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		slog.Warn(w.Message, slog.String("warning", string(w.Type)), logfields.BlockType(w.BlockType))
	}
	if result.HasFallback {
		slog.Warn("Output contains HTML fallback sections", logfields.File(c.Input), logfields.Format(format))
	}

	_, err = fmt.Fprint(rt.stdout, result.Markdown)
	return err
}

// ToBlocksCmd implements the 'to-blocks' command.
type ToBlocksCmd struct {
	Input        string `arg:"" optional:"" default:"-" help:"Markdown file to convert, or - for stdin."`
	OutputFormat string `name:"output-format" enum:"json,serialized" default:"json" help:"Block output format (json|serialized)."`
}

func (c *ToBlocksCmd) Run(rt *runtime) error {
	data, err := readInput(c.Input, rt.stdin)
	if err != nil {
		return err
	}

	conv, err := mdconverter.New(rt.parse)
	if err != nil {
		return fmt.Errorf("invalid parse config: %w", err)
	}

	result, err := conv.ConvertWithContext(context.Background(), string(data), mdconverter.ConvertOptions{SourcePath: c.Input})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		slog.Warn(w.Message, slog.String("warning", string(w.Type)), logfields.File(c.Input))
	}

	out, err := encodeBlocks(result.Blocks, c.OutputFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rt.stdout, out)
	return err
}

func encodeBlocks(blocks []converter.Block, format string) (string, error) {
	if format == formatSerialized {
		return blockfmt.Serialize(blocks)
	}

	pretty, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode blocks: %w", err)
	}
	return string(pretty), nil
}
