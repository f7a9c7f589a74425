package dom

import "sync/atomic"

// Event is a submit event raised by a form.
type Event struct {
	Target *Form

	prevented atomic.Bool
}

// NewSubmitEvent returns an event targeting form.
func NewSubmitEvent(form *Form) *Event {
	return &Event{Target: form}
}

// PreventDefault marks the default navigation as suppressed.
func (e *Event) PreventDefault() {
	e.prevented.Store(true)
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented.Load()
}
