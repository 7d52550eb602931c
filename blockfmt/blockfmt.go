// Package blockfmt reads and writes the comment-delimited text form of a
// block list:
//
//	<!-- core/heading {"level":1} -->
//	<h1>Title</h1>
//	<!-- /core/heading -->
//
// Serialize always writes the paired form. Parse also accepts the
// self-closing <!-- core/separator /--> form for blocks without a body.
// Inside a block only the matching closer ends it, so ordinary comments such
// as <!-- more --> stay part of the body.
package blockfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rgonek/block-markdown-converter/converter"
)

// ErrMalformed is returned by Parse for unbalanced or invalid delimiters.
var ErrMalformed = errors.New("malformed block markup")

// delimiterRe matches an opening, closing or self-closing block comment.
// Groups: 1 closing slash, 2 type, 3 attributes JSON, 4 self-closing slash.
var delimiterRe = regexp.MustCompile(`<!--\s+(/)?([A-Za-z][\w.-]*(?:/[A-Za-z][\w.-]*)?)\s+(?:(\{(?s:.*?)\})\s+)?(/)?-->`)

// Serialize writes blocks in the comment-delimited form. The attributes
// segment is omitted when a block has no attributes; blocks without a type
// are written as their bare body.
func Serialize(blocks []converter.Block) (string, error) {
	parts := make([]string, 0, len(blocks))
	for i, block := range blocks {
		body := block.Body()
		if block.Type == "" {
			if strings.TrimSpace(body) != "" {
				parts = append(parts, body)
			}
			continue
		}

		opener := "<!-- " + block.Type + " "
		if len(block.Attributes) > 0 {
			attrs, err := encodeAttributes(block.Attributes)
			if err != nil {
				return "", fmt.Errorf("block %d (%s): %w", i, block.Type, err)
			}
			opener += attrs + " "
		}

		parts = append(parts, opener+"-->\n"+body+"\n<!-- /"+block.Type+" -->")
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}

// encodeAttributes marshals attrs so the result can never end the comment.
func encodeAttributes(attrs map[string]any) (string, error) {
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encode attributes: %w", err)
	}
	return strings.ReplaceAll(string(data), "--", `\u002d\u002d`), nil
}

// Parse reads the comment-delimited form back into blocks. Non-blank text
// outside any block becomes a block without a type. Attribute numbers are
// decoded as json.Number.
func Parse(text string) ([]converter.Block, error) {
	blocks := []converter.Block{}
	matches := delimiterRe.FindAllStringSubmatchIndex(text, -1)

	var (
		open      bool
		openType  string
		openAttrs map[string]any
		bodyStart int
		openAt    int
		depth     int
		mismatch  []int
	)

	last := 0
	for i, loc := range matches {
		closing := loc[2] >= 0
		selfClosing := loc[8] >= 0
		blockType := text[loc[4]:loc[5]]

		if open {
			if blockType != openType || selfClosing {
				if closing && mismatch == nil {
					mismatch = loc
				}
				continue
			}
			if !closing {
				depth++
				continue
			}
			if depth > 0 {
				depth--
				continue
			}

			blocks = append(blocks, converter.NewBlock(openType, openAttrs, trimBody(text[bodyStart:loc[0]])))
			open = false
			last = loc[1]
			continue
		}

		if isOrdinaryComment(text, matches, i) {
			continue
		}
		if closing {
			return nil, fmt.Errorf("%w: closing %q on line %d has no opening comment", ErrMalformed, blockType, lineOf(text, loc[0]))
		}
		if loose := strings.TrimSpace(text[last:loc[0]]); loose != "" {
			blocks = append(blocks, converter.NewBlock("", nil, loose))
		}

		attrs, err := decodeAttributes(text, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %q on line %d: %v", ErrMalformed, blockType, lineOf(text, loc[0]), err)
		}

		if selfClosing {
			blocks = append(blocks, converter.NewBlock(blockType, attrs, ""))
			last = loc[1]
			continue
		}

		open, openType, openAttrs, bodyStart, openAt = true, blockType, attrs, loc[1], loc[0]
		depth, mismatch = 0, nil
	}

	if open {
		if mismatch != nil {
			return nil, fmt.Errorf("%w: closing %q on line %d does not match %q", ErrMalformed, text[mismatch[4]:mismatch[5]], lineOf(text, mismatch[0]), openType)
		}
		return nil, fmt.Errorf("%w: %q opened on line %d is never closed", ErrMalformed, openType, lineOf(text, openAt))
	}
	if loose := strings.TrimSpace(text[last:]); loose != "" {
		blocks = append(blocks, converter.NewBlock("", nil, loose))
	}

	return blocks, nil
}

// isOrdinaryComment reports whether the delimiter at matches[i] is a plain
// one-word comment rather than block markup. Only un-namespaced types without
// attributes qualify: a stray closer, or an opener with no closer after it.
func isOrdinaryComment(text string, matches [][]int, i int) bool {
	loc := matches[i]
	blockType := text[loc[4]:loc[5]]
	if strings.Contains(blockType, "/") || loc[6] >= 0 || loc[8] >= 0 {
		return false
	}
	if loc[2] >= 0 {
		return true
	}

	for _, next := range matches[i+1:] {
		if next[2] >= 0 && text[next[4]:next[5]] == blockType {
			return false
		}
	}
	return true
}

func decodeAttributes(text string, loc []int) (map[string]any, error) {
	if loc[6] < 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text[loc[6]:loc[7]])))
	dec.UseNumber()

	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return attrs, nil
}

// trimBody removes the single line break Serialize puts on each side of a body.
func trimBody(body string) string {
	switch {
	case strings.HasPrefix(body, "\r\n"):
		body = body[2:]
	case strings.HasPrefix(body, "\n"):
		body = body[1:]
	}
	switch {
	case strings.HasSuffix(body, "\r\n"):
		body = body[:len(body)-2]
	case strings.HasSuffix(body, "\n"):
		body = body[:len(body)-1]
	}
	return body
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
