package entity

import "time"

// FieldKind classifies a dynamic form field. Exactly one rendering and
// validation rule exists per kind.
type FieldKind string

const (
	FieldText    FieldKind = "text"
	FieldNumber  FieldKind = "number"
	FieldBoolean FieldKind = "boolean"
	FieldSelect  FieldKind = "select"
	FieldDate    FieldKind = "date"
)

// FieldDescriptor is one resolved row of an uploaded schema workbook. It is
// immutable after resolution; a new upload replaces the whole descriptor list.
type FieldDescriptor struct {
	// Name is the field label, unique within a schema.
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
	// Default holds the coerced default value: string for text, float64 for
	// number, bool for boolean, one of Options for select, and a date string
	// (2006-01-02) for date.
	Default any `json:"default"`
	// Options is set iff Kind == FieldSelect.
	Options []string `json:"options,omitempty"`
}

// DateLayout is the canonical date format of workbook cells and QR payloads.
const DateLayout = "2006-01-02"

// Today returns the current date in the canonical layout.
func Today() string {
	return time.Now().Format(DateLayout)
}
