package converter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hookContextKey string

const traceContextKey hookContextKey = "trace"

func TestLinkHookRewritesParagraphLink(t *testing.T) {
	var called atomic.Bool
	conv := newTestConverter(t, Config{
		LinkHook: func(ctx context.Context, in LinkRenderInput) (LinkRenderOutput, error) {
			called.Store(true)
			assert.Equal(t, "hook-test", ctx.Value(traceContextKey))
			assert.Equal(t, "docs/page.json", in.SourcePath)
			assert.Equal(t, core(TypeParagraph), in.BlockType)
			assert.Equal(t, "https://cms.example/pages/123#intro", in.Href)
			assert.Equal(t, "Page", in.Text)
			assert.Equal(t, "123", in.Meta.Filename)
			assert.Equal(t, "intro", in.Meta.Anchor)
			return LinkRenderOutput{Href: "../pages/123.md#intro", Handled: true}, nil
		},
	})

	ctx := context.WithValue(context.Background(), traceContextKey, "hook-test")
	result, err := conv.ConvertWithContext(ctx, []Block{
		NewBlock(core(TypeParagraph), nil, `<p>See <a href="https://cms.example/pages/123#intro">Page</a>.</p>`),
	}, ConvertOptions{SourcePath: "docs/page.json"})
	require.NoError(t, err)
	assert.True(t, called.Load())
	assert.Equal(t, "See [Page](../pages/123.md#intro).", result.Markdown)
}

func TestLinkHookNotHandledKeepsHref(t *testing.T) {
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{Handled: false}, nil
		},
	})

	result, err := conv.Convert([]Block{NewBlock(core(TypeHeading), map[string]any{"level": 1}, `<h1><a href="/a">A</a></h1>`)})
	require.NoError(t, err)
	assert.Equal(t, "# [A](/a)", result.Markdown)
}

func TestImageHookRewritesImageBlock(t *testing.T) {
	conv := newTestConverter(t, Config{
		ImageHook: func(_ context.Context, in ImageRenderInput) (ImageRenderOutput, error) {
			assert.Equal(t, core(TypeImage), in.BlockType)
			assert.Equal(t, "https://cdn.example/uploads/cat.png", in.URL)
			assert.Equal(t, "Cat", in.Alt)
			assert.Equal(t, "42", in.Meta.MediaID)
			assert.Equal(t, "cat.png", in.Meta.Filename)
			in.Attrs["id"] = "mutated"
			return ImageRenderOutput{URL: "assets/cat.png", Handled: true}, nil
		},
	})

	block := NewBlock(core(TypeImage), map[string]any{"id": 42, "url": "https://cdn.example/uploads/cat.png", "alt": "Cat"}, "")
	result, err := conv.Convert([]Block{block})
	require.NoError(t, err)
	assert.Equal(t, "![Cat](assets/cat.png)", result.Markdown)
	assert.Equal(t, 42, block.Attributes["id"])
}

func TestImageHookAppliesToInlineImages(t *testing.T) {
	conv := newTestConverter(t, Config{
		ImageHook: func(_ context.Context, in ImageRenderInput) (ImageRenderOutput, error) {
			return ImageRenderOutput{URL: "local/" + in.Meta.Filename, Handled: true}, nil
		},
	})

	result, err := conv.Convert([]Block{NewBlock(core(TypeParagraph), nil, `<p><img src="https://x.io/a/b.png" alt="B"></p>`)})
	require.NoError(t, err)
	assert.Equal(t, "![B](local/b.png)", result.Markdown)
}

func TestHookUnresolvedBestEffortWarns(t *testing.T) {
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{}, ErrUnresolved
		},
	})

	result, err := conv.Convert([]Block{NewBlock(core(TypeParagraph), nil, `<p><a href="/missing">gone</a></p>`)})
	require.NoError(t, err)
	assert.Equal(t, "[gone](/missing)", result.Markdown)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnresolvedReference, result.Warnings[0].Type)
	assert.Contains(t, result.Warnings[0].Message, "/missing")
}

func TestHookUnresolvedStrictFails(t *testing.T) {
	conv := newTestConverter(t, Config{
		ResolutionMode: ResolutionStrict,
		ImageHook: func(_ context.Context, _ ImageRenderInput) (ImageRenderOutput, error) {
			return ImageRenderOutput{}, ErrUnresolved
		},
	})

	_, err := conv.Convert([]Block{NewBlock(core(TypeImage), map[string]any{"url": "x.png"}, "")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
	assert.Contains(t, err.Error(), "x.png")
}

func TestHookStrictFailureInsideInlineContent(t *testing.T) {
	conv := newTestConverter(t, Config{
		ResolutionMode: ResolutionStrict,
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{}, ErrUnresolved
		},
	})

	_, err := conv.Convert([]Block{NewBlock(core(TypeQuote), nil, `<blockquote><p><a href="/x">x</a></p></blockquote>`)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
	assert.Contains(t, err.Error(), "block 0")
}

func TestHookErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{}, boom
		},
	})

	_, err := conv.Convert([]Block{NewBlock(core(TypeParagraph), nil, `<p><a href="/x">x</a></p>`)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "link hook failed")
}

func TestHookHandledOutputValidation(t *testing.T) {
	conv := newTestConverter(t, Config{
		ImageHook: func(_ context.Context, _ ImageRenderInput) (ImageRenderOutput, error) {
			return ImageRenderOutput{URL: "  ", Handled: true}, nil
		},
	})

	_, err := conv.Convert([]Block{NewBlock(core(TypeImage), map[string]any{"url": "x.png"}, "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid image hook output")
}

func TestParseReferenceDetails(t *testing.T) {
	tests := []struct {
		ref      string
		filename string
		anchor   string
	}{
		{ref: "https://x.io/docs/guide.md#setup", filename: "guide.md", anchor: "setup"},
		{ref: "https://x.io", filename: "", anchor: ""},
		{ref: "#only-anchor", filename: "", anchor: "only-anchor"},
		{ref: `dir\sub\file.png`, filename: "file.png", anchor: ""},
		{ref: "", filename: "", anchor: ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			filename, anchor := parseReferenceDetails(tt.ref)
			assert.Equal(t, tt.filename, filename)
			assert.Equal(t, tt.anchor, anchor)
		})
	}
}

func TestReferenceMetadataMediaID(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]any
		want  string
	}{
		{name: "id", attrs: map[string]any{"id": 7}, want: "7"},
		{name: "mediaId", attrs: map[string]any{"mediaId": "m-1"}, want: "m-1"},
		{name: "media_id", attrs: map[string]any{"media_id": "m-2"}, want: "m-2"},
		{name: "attachmentId", attrs: map[string]any{"attachmentId": "a-3"}, want: "a-3"},
		{name: "id wins", attrs: map[string]any{"id": "first", "mediaId": "second"}, want: "first"},
		{name: "blank", attrs: map[string]any{"mediaId": "  "}, want: ""},
		{name: "none", attrs: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := referenceMetadata(tt.attrs, "https://cdn.example/uploads/cat.png#top")
			assert.Equal(t, tt.want, meta.MediaID)
			assert.Equal(t, "cat.png", meta.Filename)
			assert.Equal(t, "top", meta.Anchor)
		})
	}
}
