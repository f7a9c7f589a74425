package dom

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrElementNotFound is returned when no element carries the requested id.
	ErrElementNotFound = errors.New("dom: element not found")
	// ErrDuplicateElement is returned when an id is registered twice.
	ErrDuplicateElement = errors.New("dom: duplicate element id")
)

// Document indexes the page elements by id. A page holds a single instance of
// each id.
type Document struct {
	mu      sync.RWMutex
	ids     map[string]struct{}
	forms   map[string]*Form
	fields  map[string]*Field
	outputs map[string]*Output
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		ids:     make(map[string]struct{}),
		forms:   make(map[string]*Form),
		fields:  make(map[string]*Field),
		outputs: make(map[string]*Output),
	}
}

// AddForm registers the form and each of its fields.
func (d *Document) AddForm(form *Form) error {
	if form == nil {
		return errors.New("dom: form is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := []string{form.ID}
	for _, field := range form.Fields {
		if field != nil {
			pending = append(pending, field.ID)
		}
	}
	seen := make(map[string]struct{}, len(pending))
	for _, id := range pending {
		if id == "" {
			return errors.New("dom: element id is empty")
		}
		if _, taken := d.ids[id]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateElement, id)
		}
		if _, taken := seen[id]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateElement, id)
		}
		seen[id] = struct{}{}
	}

	for id := range seen {
		d.ids[id] = struct{}{}
	}
	d.forms[form.ID] = form
	for _, field := range form.Fields {
		if field != nil {
			d.fields[field.ID] = field
		}
	}
	return nil
}

// AddOutput registers an output element.
func (d *Document) AddOutput(output *Output) error {
	if output == nil || output.ID == "" {
		return errors.New("dom: output id is empty")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, taken := d.ids[output.ID]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateElement, output.ID)
	}
	d.ids[output.ID] = struct{}{}
	d.outputs[output.ID] = output
	return nil
}

// Form looks up a form by id.
func (d *Document) Form(id string) (*Form, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if form, ok := d.forms[id]; ok {
		return form, nil
	}
	return nil, fmt.Errorf("%w: form %q", ErrElementNotFound, id)
}

// Field looks up an input field by id.
func (d *Document) Field(id string) (*Field, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if field, ok := d.fields[id]; ok {
		return field, nil
	}
	return nil, fmt.Errorf("%w: field %q", ErrElementNotFound, id)
}

// Output looks up an output element by id.
func (d *Document) Output(id string) (*Output, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if output, ok := d.outputs[id]; ok {
		return output, nil
	}
	return nil, fmt.Errorf("%w: output %q", ErrElementNotFound, id)
}

// MustField is Field for callers whose page layout is fixed; a missing id
// panics.
func (d *Document) MustField(id string) *Field {
	field, err := d.Field(id)
	if err != nil {
		panic(err)
	}
	return field
}

// MustOutput is Output with a panic on missing ids.
func (d *Document) MustOutput(id string) *Output {
	output, err := d.Output(id)
	if err != nil {
		panic(err)
	}
	return output
}

// FormIDs returns the registered form ids in sorted order.
func (d *Document) FormIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.forms))
	for id := range d.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
