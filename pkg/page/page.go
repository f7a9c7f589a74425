package page

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-simform/pkg/contract"
	"github.com/goliatone/go-simform/pkg/dom"
	"github.com/goliatone/go-simform/pkg/sample"
	"github.com/goliatone/go-simform/pkg/submit"
)

// ErrNoSample is returned by LoadSample for forms without a sample.
var ErrNoSample = errors.New("page: form has no sample")

// inputFieldName is the request field that receives the binding's input id.
const inputFieldName = "input"

// Option configures a Page.
type Option func(*config)

type config struct {
	logger        *zap.Logger
	submitOptions []submit.Option
}

// WithLogger sets the logger shared by the page submitters.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSubmitOptions forwards options to every submitter.
func WithSubmitOptions(options ...submit.Option) Option {
	return func(cfg *config) {
		cfg.submitOptions = append(cfg.submitOptions, options...)
	}
}

// Part is one form of the page with its collaborators.
type Part struct {
	Binding   contract.Binding
	Form      *dom.Form
	Input     *dom.Field
	Output    *dom.Output
	Submitter *submit.Submitter

	loader    sample.Loader
	hasSample bool
}

// SampleText returns the text LoadSample writes, if any.
func (p *Part) SampleText() (string, bool) {
	return p.loader.Text, p.hasSample
}

// Page owns the document and one Part per binding.
type Page struct {
	doc   *dom.Document
	parts []*Part
	index map[string]*Part
}

// New builds a page from the contract bindings. Every binding gets its own
// form, fields, output, loader, and submitter; nothing is shared between
// parts.
func New(bindings []contract.Binding, options ...Option) (*Page, error) {
	if len(bindings) == 0 {
		return nil, errors.New("page: no bindings")
	}
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	p := &Page{
		doc:   dom.NewDocument(),
		index: make(map[string]*Part, len(bindings)),
	}
	for _, binding := range bindings {
		part, err := p.buildPart(binding, cfg)
		if err != nil {
			return nil, err
		}
		p.parts = append(p.parts, part)
		p.index[binding.FormID] = part
	}
	return p, nil
}

func (p *Page) buildPart(binding contract.Binding, cfg *config) (*Part, error) {
	fields := make([]*dom.Field, 0, len(binding.Fields))
	var input *dom.Field
	for i, name := range binding.Fields {
		id := binding.FormID + "-" + name
		if name == inputFieldName || (i == 0 && !hasField(binding.Fields, inputFieldName)) {
			id = binding.InputID
		}
		field := dom.NewField(id, name)
		if id == binding.InputID {
			input = field
		}
		fields = append(fields, field)
	}
	if input == nil {
		return nil, fmt.Errorf("page: %s declares no input field", binding.OperationID)
	}

	form := dom.NewForm(binding.FormID, fields...)
	if err := p.doc.AddForm(form); err != nil {
		return nil, fmt.Errorf("page: %s: %w", binding.OperationID, err)
	}
	output := dom.NewOutput(binding.OutputID)
	if err := p.doc.AddOutput(output); err != nil {
		return nil, fmt.Errorf("page: %s: %w", binding.OperationID, err)
	}

	submitOptions := append([]submit.Option{submit.WithLogger(cfg.logger)}, cfg.submitOptions...)
	submitter, err := submit.New(form, binding.Path, output, submitOptions...)
	if err != nil {
		return nil, fmt.Errorf("page: %s: %w", binding.OperationID, err)
	}

	part := &Part{
		Binding:   binding,
		Form:      form,
		Input:     input,
		Output:    output,
		Submitter: submitter,
	}
	if binding.Sample != "" {
		entry, err := sample.Lookup(binding.Sample)
		if err != nil {
			return nil, fmt.Errorf("page: %s: %w", binding.OperationID, err)
		}
		part.loader = sample.NewLoader(input, entry.Text)
		part.hasSample = true
	}
	return part, nil
}

// Default builds the page described by the embedded contract.
func Default(ctx context.Context, options ...Option) (*Page, error) {
	bindings, err := contract.Default(ctx)
	if err != nil {
		return nil, err
	}
	return New(bindings, options...)
}

// Document returns the page document.
func (p *Page) Document() *dom.Document {
	return p.doc
}

// Parts returns the parts in form id order.
func (p *Page) Parts() []*Part {
	return append([]*Part(nil), p.parts...)
}

// Part looks up a part by form id.
func (p *Page) Part(formID string) (*Part, error) {
	part, ok := p.index[formID]
	if !ok {
		return nil, fmt.Errorf("%w: form %q", dom.ErrElementNotFound, formID)
	}
	return part, nil
}

// LoadSample writes the form's sample into its input field.
func (p *Page) LoadSample(formID string) error {
	part, err := p.Part(formID)
	if err != nil {
		return err
	}
	if !part.hasSample {
		return fmt.Errorf("%w: %q", ErrNoSample, formID)
	}
	part.loader.Load()
	return nil
}

// Submit raises a submit event on the form.
func (p *Page) Submit(ctx context.Context, formID string) (*submit.Pending, error) {
	part, err := p.Part(formID)
	if err != nil {
		return nil, err
	}
	return part.Submitter.Submit(ctx), nil
}

// Handle dispatches an event to the submitter owning its target form.
func (p *Page) Handle(ctx context.Context, event *dom.Event) (*submit.Pending, error) {
	if event == nil || event.Target == nil {
		return nil, errors.New("page: event has no target form")
	}
	part, err := p.Part(event.Target.ID)
	if err != nil {
		return nil, err
	}
	return part.Submitter.Handle(ctx, event), nil
}

func hasField(fields []string, name string) bool {
	for _, field := range fields {
		if field == name {
			return true
		}
	}
	return false
}
