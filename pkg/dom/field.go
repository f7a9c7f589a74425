package dom

import (
	"strings"
	"sync"
)

// Field is a named form input (an HTML input or textarea).
type Field struct {
	ID   string
	Name string

	mu    sync.RWMutex
	value string
}

// NewField returns a Field with the given element id and form name. The id
// doubles as the name when name is empty.
func NewField(id, name string) *Field {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if name == "" {
		name = id
	}
	return &Field{ID: id, Name: name}
}

// Value returns the current field value.
func (f *Field) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// SetValue replaces the field value.
func (f *Field) SetValue(value string) {
	f.mu.Lock()
	f.value = value
	f.mu.Unlock()
}

// Output is the element a backend response is rendered into.
type Output struct {
	ID string

	mu     sync.RWMutex
	text   string
	writes int
}

// NewOutput returns an empty Output bound to the element id.
func NewOutput(id string) *Output {
	return &Output{ID: strings.TrimSpace(id)}
}

// Text returns the text currently displayed.
func (o *Output) Text() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.text
}

// SetText replaces the displayed text. Writes are not ordered; the last one
// wins.
func (o *Output) SetText(text string) {
	o.mu.Lock()
	o.text = text
	o.writes++
	o.mu.Unlock()
}

// Writes reports how many times SetText has been called.
func (o *Output) Writes() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.writes
}
