package models

// FieldType classifies how a field is rendered and validated downstream.
type FieldType string

const (
	// FieldTypeText is a single-line free-text field.
	FieldTypeText FieldType = "text"
	// FieldTypeNumber is a numeric field.
	FieldTypeNumber FieldType = "number"
	// FieldTypeDate is a calendar date field.
	FieldTypeDate FieldType = "date"
	// FieldTypeTextarea is a long free-text field.
	FieldTypeTextarea FieldType = "textarea"
)

// NumberSettings bounds a numeric field.
type NumberSettings struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SelectSettings lists the choices of a selection field.
type SelectSettings struct {
	Options []string `json:"options,omitempty"`
}

// FieldSettings is the per-field configuration consumed by the form renderer.
// Required and Placeholder apply to every type; the typed sub-configs are set
// only for the matching FieldType. Extra carries forward configuration keys
// this version does not model.
type FieldSettings struct {
	Required    bool                   `json:"required"`
	Placeholder string                 `json:"placeholder"`
	Number      *NumberSettings        `json:"number,omitempty"`
	Select      *SelectSettings        `json:"select,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

// FieldDefinition is one fillable unit extracted from a template workbook.
type FieldDefinition struct {
	// TemplateID is the owning template; passed through, never validated here.
	TemplateID string `json:"template_id"`
	// Code is unique within a template and deterministic for a given
	// sheet + position, so re-runs can be reconciled against the store.
	Code string `json:"code"`
	// Prompt is the human-readable field label.
	Prompt string `json:"prompt"`
	// Description names the source sheet for provenance.
	Description string `json:"description"`
	// SourceSheet and SourceCell record where the prompt was found.
	SourceSheet string `json:"source_sheet"`
	SourceCell  string `json:"source_cell"`
	// SectionLabel groups fields into UI tabs; defaults to the sheet name.
	SectionLabel string `json:"section_label"`
	// Type is the inferred field type.
	Type FieldType `json:"type"`
	// Settings is the renderer configuration.
	Settings FieldSettings `json:"settings"`
	// AssignedRole is the role expected to fill the field; downstream
	// systems may reassign it.
	AssignedRole string `json:"assigned_role"`
	// Order is the 1-based display position within the sheet.
	Order int `json:"order"`
}
