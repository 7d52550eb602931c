package mdconverter

import (
	"context"

	"github.com/rgonek/block-markdown-converter/converter"
)

// ErrUnresolved indicates that a link or image destination could not be resolved by a hook.
var ErrUnresolved = converter.ErrUnresolved

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode = converter.ResolutionMode

const (
	ResolutionBestEffort ResolutionMode = converter.ResolutionBestEffort
	ResolutionStrict     ResolutionMode = converter.ResolutionStrict
)

// ConvertOptions carries optional per-conversion context.
type ConvertOptions struct {
	SourcePath string
}

// LinkParseHook can rewrite link destinations during Markdown -> Blocks conversion.
type LinkParseHook func(ctx context.Context, in LinkParseInput) (LinkParseOutput, error)

// ImageParseHook can rewrite image destinations during Markdown -> Blocks conversion.
type ImageParseHook func(ctx context.Context, in ImageParseInput) (ImageParseOutput, error)

// LinkParseInput describes an inline Markdown link being parsed.
type LinkParseInput struct {
	SourcePath  string
	BlockType   string
	Destination string
	Text        string
	Meta        converter.ReferenceMetadata
}

// LinkParseOutput contains the hook-provided link destination.
type LinkParseOutput struct {
	Destination string
	Handled     bool
}

// ImageParseInput describes an inline Markdown image being parsed.
type ImageParseInput struct {
	SourcePath  string
	BlockType   string
	Destination string
	Alt         string
	Meta        converter.ReferenceMetadata
}

// ImageParseOutput contains the hook-provided image destination.
type ImageParseOutput struct {
	Destination string
	Handled     bool
}
