package mdconverter

import (
	"strconv"
	"strings"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/metrics"
	"github.com/yuin/goldmark/util"
)

func (s *state) emit(name string, attrs map[string]any, body string) {
	blockType := converter.QualifiedType(s.config.Namespace, name)
	s.blocks = append(s.blocks, converter.NewBlock(blockType, attrs, body))
	s.config.Recorder.IncBlock(metrics.DirectionToBlocks, blockType)
}

func (s *state) emitHeading(level int, text string) {
	level = converter.ClampHeadingLevel(level, s.config.HeadingOffset)
	tag := "h" + strconv.Itoa(level)
	s.emit(converter.TypeHeading, map[string]any{"level": level}, "<"+tag+">"+s.inlineHTML(converter.TypeHeading, text)+"</"+tag+">")
}

// emitParagraph joins the buffered raw lines with single spaces.
func (s *state) emitParagraph(lines []string) {
	s.emit(converter.TypeParagraph, nil, "<p>"+s.inlineHTML(converter.TypeParagraph, strings.Join(lines, " "))+"</p>")
}

func (s *state) emitQuote(text string) {
	s.emit(converter.TypeQuote, nil, "<blockquote><p>"+s.inlineHTML(converter.TypeQuote, text)+"</p></blockquote>")
}

func (s *state) emitSeparator() {
	s.emit(converter.TypeSeparator, nil, "<hr />")
}

// emitCode escapes the joined lines as one unit. Code content never goes
// through inline formatting.
func (s *state) emitCode(lines []string, language string) {
	if mapped, ok := s.config.LanguageMap[language]; ok {
		language = mapped
	}

	var attrs map[string]any
	if language != "" {
		attrs = map[string]any{"language": language}
	}

	content := util.EscapeHTML([]byte(strings.Join(lines, "\n")))
	s.emit(converter.TypeCode, attrs, "<pre><code>"+string(content)+"</code></pre>")
}
