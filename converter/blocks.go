package converter

import (
	"strings"

	"github.com/rgonek/block-markdown-converter/inline"
)

// inlineMarkdown extracts the inner fragment of the block body and converts
// its inline markup to Markdown.
func (s *state) inlineMarkdown(block Block) string {
	return inline.ToMarkdownResolved(InnerHTML(block.Body()), s.inlineResolver(block))
}

func (s *state) renderHeading(block Block) string {
	level := ClampHeadingLevel(block.IntAttr("level", 2), s.config.HeadingOffset)
	return strings.Repeat("#", level) + " " + s.inlineMarkdown(block)
}

func (s *state) renderParagraph(block Block) string {
	return s.inlineMarkdown(block)
}

// renderQuote prefixes every line of the quote text, blank ones included.
func (s *state) renderQuote(block Block) string {
	lines := strings.Split(s.inlineMarkdown(block), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func (s *state) renderCode(block Block) string {
	root := parseFragment(block.Body())

	var content string
	if code := innermostCode(root); code != nil {
		content = textContent(code)
	} else {
		content = textContent(root)
	}

	language := block.StringAttr("language", "")
	if mapped, ok := s.config.LanguageMap[language]; ok {
		language = mapped
	}

	var result strings.Builder
	result.WriteString("```")
	result.WriteString(language)
	result.WriteString("\n")
	if content != "" {
		result.WriteString(content)
		result.WriteString("\n")
	}
	result.WriteString("```")

	return result.String()
}
