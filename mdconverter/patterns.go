package mdconverter

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/util"
)

var (
	fenceRe         = regexp.MustCompile("^```([\\w+#.-]*)\\s*$")
	headingRe       = regexp.MustCompile(`^(#{1,6})[ \t]+(\S.*)$`)
	quoteRe         = regexp.MustCompile(`^>\s?(.*)$`)
	unorderedItemRe = regexp.MustCompile(`^[-*+][ \t]+(\S.*)$`)
	orderedItemRe   = regexp.MustCompile(`^\d+\.[ \t]+(\S.*)$`)
	ruleRe          = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

type lineKind int

const (
	lineText lineKind = iota
	lineFence
	lineCode
	lineHeading
	lineQuote
	lineListItem
	lineRule
	lineBlank
)

func (k lineKind) String() string {
	switch k {
	case lineFence:
		return "fence"
	case lineCode:
		return "code"
	case lineHeading:
		return "heading"
	case lineQuote:
		return "quote"
	case lineListItem:
		return "list_item"
	case lineRule:
		return "rule"
	case lineBlank:
		return "blank"
	default:
		return "text"
	}
}

// line is one classified source line. Only the fields relevant to kind are set.
type line struct {
	kind    lineKind
	raw     string
	text    string
	lang    string
	level   int
	ordered bool
}

// classifyLine tags raw with the first matching line kind. Inside a fence
// every line except a fence delimiter is code.
func classifyLine(raw string, inFence bool) line {
	raw = strings.TrimSuffix(raw, "\r")

	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return line{kind: lineFence, raw: raw, lang: m[1]}
	}
	if inFence {
		return line{kind: lineCode, raw: raw}
	}
	if m := headingRe.FindStringSubmatch(raw); m != nil {
		return line{kind: lineHeading, raw: raw, level: len(m[1]), text: strings.TrimSpace(m[2])}
	}
	if m := quoteRe.FindStringSubmatch(raw); m != nil {
		return line{kind: lineQuote, raw: raw, text: strings.TrimSpace(m[1])}
	}
	if m := unorderedItemRe.FindStringSubmatch(raw); m != nil {
		return line{kind: lineListItem, raw: raw, text: m[1]}
	}
	if m := orderedItemRe.FindStringSubmatch(raw); m != nil {
		return line{kind: lineListItem, raw: raw, text: m[1], ordered: true}
	}
	if ruleRe.MatchString(strings.TrimSpace(raw)) {
		return line{kind: lineRule, raw: raw}
	}
	if util.IsBlank([]byte(raw)) {
		return line{kind: lineBlank, raw: raw}
	}

	return line{kind: lineText, raw: raw}
}
