package mdconverter

import (
	"strings"

	"github.com/rgonek/block-markdown-converter/converter"
)

// emitList builds one list block from a run of raw item texts. Source
// numbering is not kept; only the ordered flag is.
func (s *state) emitList(items []string, ordered bool) {
	tag := "ul"
	var attrs map[string]any
	if ordered {
		tag = "ol"
		attrs = map[string]any{"ordered": true}
	}

	var sb strings.Builder
	sb.WriteString("<" + tag + ">")
	for _, item := range items {
		sb.WriteString("<li>")
		sb.WriteString(s.inlineHTML(converter.TypeList, item))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")

	s.emit(converter.TypeList, attrs, sb.String())
}
