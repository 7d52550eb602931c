package converter

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultNamespace prefixes block type names when no namespace is configured.
const DefaultNamespace = "core"

// Block type names, without namespace.
const (
	TypeHeading   = "heading"
	TypeParagraph = "paragraph"
	TypeCode      = "code"
	TypeQuote     = "quote"
	TypeList      = "list"
	TypeSeparator = "separator"
	TypeImage     = "image"
)

// Block is one structured content block: a type name, typed attributes and a
// single HTML fragment body.
type Block struct {
	Type         string         `json:"type,omitempty"`
	Attributes   map[string]any `json:"attributes"`
	BodyHTML     string         `json:"bodyHtml,omitempty"`
	Children     []Block        `json:"children"`
	InnerContent []string       `json:"innerContent,omitempty"`
}

// NewBlock returns a block with non-nil attributes, no children, and the body
// mirrored into InnerContent.
func NewBlock(blockType string, attrs map[string]any, body string) Block {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Block{
		Type:         blockType,
		Attributes:   attrs,
		BodyHTML:     body,
		Children:     []Block{},
		InnerContent: []string{body},
	}
}

// QualifiedType joins a namespace and a block name.
func QualifiedType(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "/" + name
}

// Body returns BodyHTML, falling back to the joined InnerContent for records
// that only carry the mirror field.
func (b Block) Body() string {
	if b.BodyHTML != "" {
		return b.BodyHTML
	}
	return strings.Join(b.InnerContent, "")
}

// HasAttr reports whether key is present with a non-nil value.
func (b Block) HasAttr(key string) bool {
	v, ok := b.Attributes[key]
	return ok && v != nil
}

// IntAttr returns the attribute as an int, or def when it is absent or not numeric.
func (b Block) IntAttr(key string, def int) int {
	switch v := b.Attributes[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// StringAttr returns the attribute as a string, or def when it is absent.
func (b Block) StringAttr(key, def string) string {
	switch v := b.Attributes[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return def
}

// BoolAttr reports whether the attribute is truthy: true, a non-zero number,
// or a non-empty string other than "0" and "false".
func (b Block) BoolAttr(key string) bool {
	switch v := b.Attributes[key].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case string:
		s := strings.TrimSpace(v)
		return s != "" && s != "0" && !strings.EqualFold(s, "false")
	}
	return false
}
