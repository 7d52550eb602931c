package converter

import "context"

// BlockRenderInput is passed to a BlockHandler for one block.
type BlockRenderInput struct {
	SourcePath string
	Block      Block
}

// BlockRenderOutput is the handler's rendering of a block.
type BlockRenderOutput struct {
	Markdown string
	Handled  bool
}

// BlockHandler renders a block type the converter has no native rendering
// for. Handlers are registered per qualified type name in Config.BlockHandlers
// and run before the unknown block policy applies.
type BlockHandler interface {
	ToMarkdown(ctx context.Context, in BlockRenderInput) (BlockRenderOutput, error)
}

// BlockHandlerFunc adapts a function to BlockHandler.
type BlockHandlerFunc func(ctx context.Context, in BlockRenderInput) (BlockRenderOutput, error)

func (f BlockHandlerFunc) ToMarkdown(ctx context.Context, in BlockRenderInput) (BlockRenderOutput, error) {
	return f(ctx, in)
}
