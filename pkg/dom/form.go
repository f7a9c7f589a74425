package dom

import (
	"net/url"
	"strings"
)

// Entry is a single name/value pair collected from a form.
type Entry struct {
	Name  string
	Value string
}

// Payload is the ordered set of entries collected from a form at submit time.
type Payload []Entry

// Len returns the number of entries.
func (p Payload) Len() int {
	return len(p)
}

// Get returns the first value recorded for name.
func (p Payload) Get(name string) (string, bool) {
	for _, entry := range p {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return "", false
}

// Values converts the payload into url.Values. Repeated names keep their
// relative order.
func (p Payload) Values() url.Values {
	if len(p) == 0 {
		return nil
	}
	out := make(url.Values, len(p))
	for _, entry := range p {
		out[entry.Name] = append(out[entry.Name], entry.Value)
	}
	return out
}

// Form groups the fields submitted together.
type Form struct {
	ID     string
	Fields []*Field
}

// NewForm returns a Form with the given id and fields. Nil fields are dropped.
func NewForm(id string, fields ...*Field) *Form {
	form := &Form{ID: strings.TrimSpace(id)}
	for _, field := range fields {
		if field != nil {
			form.Fields = append(form.Fields, field)
		}
	}
	return form
}

// Field returns the first field carrying name.
func (f *Form) Field(name string) (*Field, bool) {
	for _, field := range f.Fields {
		if field != nil && field.Name == name {
			return field, true
		}
	}
	return nil, false
}

// Payload snapshots every field in declaration order. Fields without a name
// are not submitted, matching browser form serialisation.
func (f *Form) Payload() Payload {
	if f == nil || len(f.Fields) == 0 {
		return nil
	}
	out := make(Payload, 0, len(f.Fields))
	for _, field := range f.Fields {
		if field == nil || field.Name == "" {
			continue
		}
		out = append(out, Entry{Name: field.Name, Value: field.Value()})
	}
	return out
}
