package converter

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlock(t *testing.T) {
	block := NewBlock("core/paragraph", nil, "<p>x</p>")

	assert.Equal(t, "core/paragraph", block.Type)
	assert.NotNil(t, block.Attributes)
	assert.Empty(t, block.Attributes)
	assert.NotNil(t, block.Children)
	assert.Empty(t, block.Children)
	assert.Equal(t, []string{"<p>x</p>"}, block.InnerContent)
	assert.Equal(t, "<p>x</p>", block.Body())
}

func TestBlockJSONShape(t *testing.T) {
	data, err := json.Marshal(NewBlock("core/heading", map[string]any{"level": 2}, "<h2>T</h2>"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"core/heading","attributes":{"level":2},"bodyHtml":"<h2>T</h2>","children":[],"innerContent":["<h2>T</h2>"]}`, string(data))

	data, err = json.Marshal(NewBlock("core/separator", nil, "<hr />"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"core/separator","attributes":{},"bodyHtml":"<hr />","children":[],"innerContent":["<hr />"]}`, string(data))
}

func TestIntAttr(t *testing.T) {
	block := Block{Attributes: map[string]any{
		"int":    3,
		"int64":  int64(4),
		"float":  float64(5),
		"number": json.Number("6"),
		"string": " 7 ",
		"nan":    math.NaN(),
		"bad":    "seven",
		"bool":   true,
	}}

	assert.Equal(t, 3, block.IntAttr("int", 0))
	assert.Equal(t, 4, block.IntAttr("int64", 0))
	assert.Equal(t, 5, block.IntAttr("float", 0))
	assert.Equal(t, 6, block.IntAttr("number", 0))
	assert.Equal(t, 7, block.IntAttr("string", 0))
	assert.Equal(t, 2, block.IntAttr("nan", 2))
	assert.Equal(t, 2, block.IntAttr("bad", 2))
	assert.Equal(t, 2, block.IntAttr("bool", 2))
	assert.Equal(t, 2, block.IntAttr("missing", 2))
	assert.Equal(t, 2, Block{}.IntAttr("level", 2))
}

func TestStringAttr(t *testing.T) {
	block := Block{Attributes: map[string]any{
		"s":   "js",
		"n":   json.Number("12"),
		"i":   5,
		"f":   1.5,
		"b":   true,
		"nil": nil,
	}}

	assert.Equal(t, "js", block.StringAttr("s", ""))
	assert.Equal(t, "12", block.StringAttr("n", ""))
	assert.Equal(t, "5", block.StringAttr("i", ""))
	assert.Equal(t, "1.5", block.StringAttr("f", ""))
	assert.Equal(t, "true", block.StringAttr("b", ""))
	assert.Equal(t, "def", block.StringAttr("nil", "def"))
	assert.Equal(t, "def", block.StringAttr("missing", "def"))
}

func TestBoolAttrTruthiness(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{value: true, want: true},
		{value: false, want: false},
		{value: 1, want: true},
		{value: 0, want: false},
		{value: float64(2), want: true},
		{value: json.Number("0"), want: false},
		{value: json.Number("1"), want: true},
		{value: "yes", want: true},
		{value: "true", want: true},
		{value: "", want: false},
		{value: "0", want: false},
		{value: "false", want: false},
		{value: "FALSE", want: false},
		{value: nil, want: false},
	}

	for _, tt := range tests {
		block := Block{Attributes: map[string]any{"ordered": tt.value}}
		assert.Equal(t, tt.want, block.BoolAttr("ordered"), "value %#v", tt.value)
	}
}

func TestBodyFallsBackToInnerContent(t *testing.T) {
	block := Block{InnerContent: []string{"<p>a", "b</p>"}}
	assert.Equal(t, "<p>ab</p>", block.Body())

	block.BodyHTML = "<p>body</p>"
	assert.Equal(t, "<p>body</p>", block.Body())
}
