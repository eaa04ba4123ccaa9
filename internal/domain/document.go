package domain

// Document is a schemaless JSON object persisted as serialized text.
// Structured content, feedback, outputs, profiles and preferences all use it:
// the platform trades nested-field queryability for schema flexibility.
type Document map[string]interface{}

// IsEmpty reports whether the document carries no data.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}
