package model

// Row is a schema-agnostic record: a partial mapping from field ID to a
// scalar value (number, string, or date-like string). Fields may be absent
// or ill-typed; consumers decide what to do with them.
type Row map[string]interface{}

// Clone returns a shallow copy of the row. Transforms work on copies so
// input rows are never mutated.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FieldType is the caller-declared semantic type of a field.
type FieldType string

const (
	FieldNumerical   FieldType = "numerical"
	FieldCategorical FieldType = "categorical"
	FieldTemporal    FieldType = "temporal"
)

// FieldDescriptor describes one column of a dataset. The engine trusts the
// declared type and never re-infers it.
type FieldDescriptor struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Dataset pairs an ordered sequence of rows with the field descriptors
// describing them. No invariant requires every row to contain every field.
type Dataset struct {
	Rows   []Row             `json:"rows"`
	Fields []FieldDescriptor `json:"fields"`
}

// FieldsOfType returns the descriptors of the given type, in declaration order.
func (d Dataset) FieldsOfType(t FieldType) []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range d.Fields {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// Field returns the descriptor with the given ID, if present.
func (d Dataset) Field(id string) (FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
