package models

// Verse is a scripture reference with optional text.
type Verse struct {
	Reference string `json:"reference" yaml:"reference"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
}
