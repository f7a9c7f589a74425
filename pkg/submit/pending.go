package submit

import "context"

// Pending tracks one in-flight submission.
type Pending struct {
	id   string
	done chan struct{}
	text string
	err  error
}

func newPending(id string) *Pending {
	return &Pending{id: id, done: make(chan struct{})}
}

func (p *Pending) finish(text string, err error) {
	p.text = text
	p.err = err
	close(p.done)
}

// ID identifies the submission in diagnostic records.
func (p *Pending) ID() string {
	return p.id
}

// Done is closed once the output element has been written.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the submission finishes or ctx is done. ctx bounds the
// wait only; the submission itself keeps running.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Text returns what the submission wrote to the output. Valid after Done.
func (p *Pending) Text() string {
	select {
	case <-p.done:
		return p.text
	default:
		return ""
	}
}

// Err returns the transmission failure, if any. Valid after Done.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
