package converter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link or image reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved link or image reference")

// ErrUnsupportedBlock is returned under UnknownError for block types the renderer does not know.
var ErrUnsupportedBlock = errors.New("unsupported block type")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort continues conversion and keeps the original reference.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails conversion when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// ConvertOptions carries optional per-conversion context.
type ConvertOptions struct {
	SourcePath string
}

// ReferenceMetadata exposes typed details derived from a reference and its block attributes.
type ReferenceMetadata struct {
	MediaID  string
	Filename string
	Anchor   string
}

// LinkRenderHook can rewrite link targets during Blocks -> Markdown conversion.
type LinkRenderHook func(ctx context.Context, in LinkRenderInput) (LinkRenderOutput, error)

// ImageRenderHook can rewrite image references during Blocks -> Markdown conversion.
type ImageRenderHook func(ctx context.Context, in ImageRenderInput) (ImageRenderOutput, error)

// LinkRenderInput describes a link found inside a block body.
type LinkRenderInput struct {
	SourcePath string
	BlockType  string
	Href       string
	Text       string
	Meta       ReferenceMetadata
}

// LinkRenderOutput contains the hook-provided link target.
type LinkRenderOutput struct {
	Href    string
	Handled bool
}

// ImageRenderInput describes an image block or an inline image being rendered.
type ImageRenderInput struct {
	SourcePath string
	BlockType  string
	URL        string
	Alt        string
	Meta       ReferenceMetadata
	Attrs      map[string]any
}

// ImageRenderOutput contains the hook-provided image reference.
type ImageRenderOutput struct {
	URL     string
	Alt     string
	Handled bool
}
