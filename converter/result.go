package converter

// Result holds the output of a conversion.
type Result struct {
	Markdown    string    `json:"markdown"`
	HasFallback bool      `json:"hasFallback"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnsupportedBlock    WarningType = "unsupported_block"
	WarningMissingAttribute    WarningType = "missing_attribute"
	WarningUnresolvedReference WarningType = "unresolved_reference"
	WarningUnclosedFence       WarningType = "unclosed_fence"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type      WarningType `json:"type"`
	BlockType string      `json:"blockType,omitempty"`
	Message   string      `json:"message"`
}
