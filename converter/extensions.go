package converter

import (
	"fmt"
	"strings"
)

// renderWithHandler runs the handler registered for block.Type, if any. The
// second result reports whether the handler produced the output.
func (s *state) renderWithHandler(block Block) (string, bool, error) {
	handler, ok := s.config.BlockHandlers[block.Type]
	if !ok {
		return "", false, nil
	}

	if err := s.checkContext(); err != nil {
		return "", false, err
	}

	output, err := handler.ToMarkdown(s.ctx, BlockRenderInput{
		SourcePath: s.options.SourcePath,
		Block:      cloneBlock(block),
	})
	if err != nil {
		return "", false, fmt.Errorf("block handler failed: %w", err)
	}
	if !output.Handled {
		return "", false, nil
	}

	return strings.TrimRight(output.Markdown, "\n"), true, nil
}

func cloneBlock(block Block) Block {
	cloned := block
	cloned.Attributes = cloneAnyMap(block.Attributes)
	if block.InnerContent != nil {
		cloned.InnerContent = append([]string(nil), block.InnerContent...)
	}
	if block.Children != nil {
		cloned.Children = make([]Block, len(block.Children))
		for i, child := range block.Children {
			cloned.Children[i] = cloneBlock(child)
		}
	}
	return cloned
}

func cloneHandlers(src map[string]BlockHandler) map[string]BlockHandler {
	if src == nil {
		return nil
	}

	dst := make(map[string]BlockHandler, len(src))
	for key, handler := range src {
		dst[key] = handler
	}
	return dst
}
