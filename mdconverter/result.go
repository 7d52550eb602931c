package mdconverter

import "github.com/rgonek/block-markdown-converter/converter"

// Result holds the output of a reverse conversion.
type Result struct {
	Blocks   []converter.Block   `json:"blocks"`
	Warnings []converter.Warning `json:"warnings,omitempty"`
}
