package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-simform/pkg/dom"
)

// Submitter binds one form to one endpoint and one output element.
type Submitter struct {
	form     *dom.Form
	endpoint string
	output   *dom.Output

	baseURL  string
	target   string
	client   *http.Client
	logger   *zap.Logger
	fallback string
}

// New constructs a Submitter. endpoint is resolved against the base URL the
// way a browser resolves a fetch path against the page origin.
func New(form *dom.Form, endpoint string, output *dom.Output, options ...Option) (*Submitter, error) {
	if form == nil {
		return nil, errors.New("submit: form is nil")
	}
	if output == nil {
		return nil, errors.New("submit: output is nil")
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("submit: endpoint is empty")
	}

	s := &Submitter{
		form:     form,
		endpoint: endpoint,
		output:   output,
		baseURL:  DefaultBaseURL,
		client:   http.DefaultClient,
		logger:   zap.NewNop(),
		fallback: FallbackText,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	target, err := resolveEndpoint(s.baseURL, endpoint)
	if err != nil {
		return nil, err
	}
	s.target = target
	return s, nil
}

// Endpoint returns the configured endpoint path.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// URL returns the absolute request URL.
func (s *Submitter) URL() string {
	return s.target
}

// Form returns the bound form.
func (s *Submitter) Form() *dom.Form {
	return s.form
}

// Output returns the bound output element.
func (s *Submitter) Output() *dom.Output {
	return s.output
}

// Submit raises a fresh submit event on the bound form and handles it.
func (s *Submitter) Submit(ctx context.Context) *Pending {
	return s.Handle(ctx, dom.NewSubmitEvent(s.form))
}

// Handle processes a submit event. The default action is prevented and the
// payload captured before Handle returns; the request runs in the background.
// Cancelling ctx does not abort the request. An event targeting another form
// is left untouched and the returned Pending reports ErrForeignEvent.
func (s *Submitter) Handle(ctx context.Context, event *dom.Event) *Pending {
	if event == nil {
		event = dom.NewSubmitEvent(s.form)
	}
	pending := newPending(uuid.NewString())
	if event.Target != nil && event.Target != s.form {
		pending.finish("", fmt.Errorf("%w: %q", ErrForeignEvent, event.Target.ID))
		return pending
	}
	event.PreventDefault()
	payload := s.form.Payload()

	go s.run(context.WithoutCancel(ctx), pending, payload)
	return pending
}

func (s *Submitter) run(ctx context.Context, pending *Pending, payload dom.Payload) {
	text, err := s.roundTrip(ctx, pending.id, payload)
	if err != nil {
		s.logger.Error("submission failed",
			zap.String("submission", pending.id),
			zap.String("endpoint", s.endpoint),
			zap.Error(err),
		)
		text = s.fallback
	}
	s.output.SetText(text)
	pending.finish(text, err)
}

func (s *Submitter) roundTrip(ctx context.Context, id string, payload dom.Payload) (string, error) {
	body, contentType, err := EncodeMultipart(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransmission, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.target, body)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrTransmission, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransmission, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrTransmission, err)
	}

	s.logger.Debug("submission answered",
		zap.String("submission", id),
		zap.String("endpoint", s.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
	)
	return string(data), nil
}

func resolveEndpoint(base, endpoint string) (string, error) {
	origin, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("submit: parse base url %q: %w", base, err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return "", fmt.Errorf("submit: base url %q must be absolute", base)
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("submit: parse endpoint %q: %w", endpoint, err)
	}
	return origin.ResolveReference(ref).String(), nil
}
