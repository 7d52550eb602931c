package mdconverter

import (
	"fmt"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/internal/logfields"
	"github.com/rgonek/block-markdown-converter/metrics"
	"github.com/yuin/goldmark/util"
)

// parse runs the line loop. The fence, paragraph and list buffers live only
// for the duration of the call.
func (s *state) parse(lines []string) error {
	var (
		inCodeFence  bool
		codeLanguage string
		codeLines    []string
		fenceLine    int
		fenceRaw     string
		paragraph    []string
		listItems    []string
		listOrdered  bool
		inList       bool
	)

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		s.emitParagraph(paragraph)
		paragraph = nil
	}
	flushList := func() {
		if len(listItems) > 0 {
			s.emitList(listItems, listOrdered)
		}
		listItems = nil
		inList = false
	}

	for i, raw := range lines {
		if err := s.checkContext(); err != nil {
			return err
		}
		if s.hookErr != nil {
			return s.hookErr
		}

		ln := classifyLine(raw, inCodeFence)
		switch ln.kind {
		case lineFence:
			if inCodeFence {
				s.emitCode(codeLines, codeLanguage)
				inCodeFence = false
				codeLines = nil
				codeLanguage = ""
				continue
			}
			flushList()
			flushParagraph()
			inCodeFence = true
			codeLanguage = ln.lang
			codeLines = []string{}
			fenceLine = i + 1
			fenceRaw = ln.raw
		case lineCode:
			codeLines = append(codeLines, ln.raw)
		case lineHeading:
			flushList()
			flushParagraph()
			s.emitHeading(ln.level, ln.text)
		case lineQuote:
			flushList()
			flushParagraph()
			s.emitQuote(ln.text)
		case lineListItem:
			flushParagraph()
			if !inList || listOrdered != ln.ordered {
				flushList()
				inList = true
				listOrdered = ln.ordered
			}
			listItems = append(listItems, ln.text)
		case lineRule:
			flushList()
			flushParagraph()
			s.emitSeparator()
		case lineBlank:
			flushList()
			flushParagraph()
		default:
			// A text line ends the list run so blocks keep source order.
			flushList()
			paragraph = append(paragraph, ln.raw)
		}
	}

	if inCodeFence {
		paragraph = s.closeUnterminatedFence(fenceLine, fenceRaw, codeLanguage, codeLines, paragraph)
	}
	flushList()
	flushParagraph()

	return nil
}

// closeUnterminatedFence applies the unclosed fence policy and returns the
// paragraph buffer to flush afterwards.
func (s *state) closeUnterminatedFence(fenceLine int, fenceRaw, language string, codeLines, paragraph []string) []string {
	blockType := converter.QualifiedType(s.config.Namespace, converter.TypeCode)
	s.addWarning(
		converter.WarningUnclosedFence,
		blockType,
		fmt.Sprintf("code fence opened on line %d is never closed; applied %q policy", fenceLine, s.config.UnclosedFence),
	)
	s.config.Logger.Debug("unclosed code fence",
		logfields.Direction(string(metrics.DirectionToBlocks)),
		logfields.Line(fenceLine),
		logfields.Format(string(s.config.UnclosedFence)),
	)

	switch s.config.UnclosedFence {
	case UnclosedFenceParagraph:
		paragraph = append(paragraph, fenceRaw)
		for _, raw := range codeLines {
			if !util.IsBlank([]byte(raw)) {
				paragraph = append(paragraph, raw)
			}
		}
	case UnclosedFenceDrop:
		// buffered lines are discarded
	default:
		s.emitCode(codeLines, language)
	}

	return paragraph
}
