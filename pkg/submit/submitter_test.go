package submit_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-simform/pkg/dom"
	"github.com/goliatone/go-simform/pkg/sample"
	"github.com/goliatone/go-simform/pkg/submit"
)

type fixture struct {
	input  *dom.Field
	form   *dom.Form
	output *dom.Output
}

func newFixture() fixture {
	input := dom.NewField("input1", "input")
	return fixture{
		input:  input,
		form:   dom.NewForm("part1Form", input),
		output: dom.NewOutput("output1"),
	}
}

func newSubmitter(t *testing.T, fx fixture, base string, options ...submit.Option) *submit.Submitter {
	t.Helper()
	options = append([]submit.Option{submit.WithBaseURL(base)}, options...)
	s, err := submit.New(fx.form, "/simulate_part1", fx.output, options...)
	if err != nil {
		t.Fatalf("new submitter: %v", err)
	}
	return s
}

func wait(t *testing.T, p *submit.Pending) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestSubmitRendersResponseText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/simulate_part1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, "OK")
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))

	p := s.Submit(context.Background())
	wait(t, p)

	if got := fx.output.Text(); got != "OK" {
		t.Fatalf("want output %q, got %q", "OK", got)
	}
	if p.Err() != nil || p.Text() != "OK" {
		t.Fatalf("unexpected pending state: text=%q err=%v", p.Text(), p.Err())
	}
	if p.ID() == "" {
		t.Fatalf("expected submission id")
	}
}

func TestSubmitSampleScenario(t *testing.T) {
	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.FormValue("input")
		_, _ = io.WriteString(w, "(4, 3, E)")
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	fx := newFixture()
	sample.Part1Loader(fx.input).Load()
	if fx.input.Value() != "10 10\n1 2 N\nFFRFFFRRLF" {
		t.Fatalf("sample not loaded: %q", fx.input.Value())
	}

	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))
	wait(t, s.Submit(context.Background()))

	if got := <-received; got != sample.Part1 {
		t.Fatalf("backend received %q", got)
	}
	if got := fx.output.Text(); got != "(4, 3, E)" {
		t.Fatalf("want output %q, got %q", "(4, 3, E)", got)
	}
}

func TestSubmitErrorStatusIsDisplayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "Error: Please provide exactly 3 lines of input.")
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))
	p := s.Submit(context.Background())
	wait(t, p)

	if got := fx.output.Text(); got != "Error: Please provide exactly 3 lines of input." {
		t.Fatalf("unexpected output %q", got)
	}
	if p.Err() != nil {
		t.Fatalf("error statuses must not be failures, got %v", p.Err())
	}
}

func TestSubmitConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	core, logs := observer.New(zap.ErrorLevel)
	fx := newFixture()
	fx.output.SetText("stale")
	s := newSubmitter(t, fx, base, submit.WithLogger(zap.New(core)))

	event := dom.NewSubmitEvent(fx.form)
	p := s.Handle(context.Background(), event)
	if !event.DefaultPrevented() {
		t.Fatalf("default must be prevented before Handle returns")
	}
	wait(t, p)

	if got := fx.output.Text(); got != "An error occurred." {
		t.Fatalf("want fallback text, got %q", got)
	}
	if !errors.Is(p.Err(), submit.ErrTransmission) {
		t.Fatalf("expected ErrTransmission, got %v", p.Err())
	}

	entries := logs.FilterMessage("submission failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one diagnostic record, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["endpoint"] != "/simulate_part1" || fields["submission"] != p.ID() {
		t.Fatalf("unexpected diagnostic fields: %v", fields)
	}
}

func TestSubmitBodyReadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "128")
		_, _ = io.WriteString(w, "partial")
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))
	p := s.Submit(context.Background())
	wait(t, p)

	if got := fx.output.Text(); got != submit.FallbackText {
		t.Fatalf("want fallback text, got %q", got)
	}
	if !errors.Is(p.Err(), submit.ErrTransmission) {
		t.Fatalf("expected ErrTransmission, got %v", p.Err())
	}
}

func TestSubmitLastResolvedResponseWins(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value := r.FormValue("input")
		if value == "first" {
			<-release
		}
		_, _ = io.WriteString(w, "answer to "+value)
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))

	fx.input.SetValue("first")
	slow := s.Submit(context.Background())
	fx.input.SetValue("second")
	fast := s.Submit(context.Background())

	wait(t, fast)
	if got := fx.output.Text(); got != "answer to second" {
		t.Fatalf("after fast response: got %q", got)
	}

	close(release)
	wait(t, slow)
	if got := fx.output.Text(); got != "answer to first" {
		t.Fatalf("later resolving response must win, got %q", got)
	}
	if fx.output.Writes() != 2 {
		t.Fatalf("expected two writes, got %d", fx.output.Writes())
	}
}

func TestSubmitPayloadRoundTrip(t *testing.T) {
	type part struct {
		Name  string
		Value string
	}
	parts := make(chan []part, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got []part
		defer func() { parts <- got }()
		reader, err := r.MultipartReader()
		if err != nil {
			t.Errorf("multipart reader: %v", err)
			return
		}
		for {
			p, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("next part: %v", err)
				return
			}
			data, _ := io.ReadAll(p)
			got = append(got, part{Name: p.FormName(), Value: string(data)})
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	input := dom.NewField("input2", "input")
	input.SetValue(sample.Part2)
	label := dom.NewField("label2", "label")
	label.SetValue("fleet")
	form := dom.NewForm("part2Form", input, label)
	output := dom.NewOutput("output2")

	s, err := submit.New(form, "/simulate_part2", output,
		submit.WithBaseURL(srv.URL),
		submit.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("new submitter: %v", err)
	}
	wait(t, s.Submit(context.Background()))

	want := []part{
		{Name: "input", Value: sample.Part2},
		{Name: "label", Value: "fleet"},
	}
	if diff := cmp.Diff(want, <-parts); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "done")
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))
	p := s.Submit(ctx)
	wait(t, p)

	if got := fx.output.Text(); got != "done" {
		t.Fatalf("submission should survive cancellation, got %q", got)
	}
}

func TestPendingWaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))
	p := s.Submit(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := p.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.Text() != "" || p.Err() != nil {
		t.Fatalf("pending must be empty before completion")
	}

	close(release)
	wait(t, p)
}

func TestNewValidatesArguments(t *testing.T) {
	fx := newFixture()
	if _, err := submit.New(nil, "/simulate_part1", fx.output); err == nil {
		t.Fatalf("expected error for nil form")
	}
	if _, err := submit.New(fx.form, " ", fx.output); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
	if _, err := submit.New(fx.form, "/simulate_part1", fx.output, submit.WithBaseURL("localhost")); err == nil {
		t.Fatalf("expected error for relative base url")
	}

	s, err := submit.New(fx.form, "/simulate_part1", fx.output, submit.WithBaseURL("http://example.test/app/"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.URL() != "http://example.test/simulate_part1" {
		t.Fatalf("unexpected resolved url %q", s.URL())
	}
}

func TestHandleRejectsEventForAnotherForm(t *testing.T) {
	hits := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
		_, _ = io.WriteString(w, "unexpected")
	}))
	defer srv.Close()

	fx := newFixture()
	s := newSubmitter(t, fx, srv.URL, submit.WithHTTPClient(srv.Client()))

	other := dom.NewForm("part2Form", dom.NewField("input2", "input"))
	event := dom.NewSubmitEvent(other)
	p := s.Handle(context.Background(), event)
	wait(t, p)

	if !errors.Is(p.Err(), submit.ErrForeignEvent) {
		t.Fatalf("expected ErrForeignEvent, got %v", p.Err())
	}
	if event.DefaultPrevented() {
		t.Fatalf("foreign event must keep its default action")
	}
	if got := fx.output.Writes(); got != 0 {
		t.Fatalf("output written %d times", got)
	}
	select {
	case <-hits:
		t.Fatalf("foreign payload reached the endpoint")
	default:
	}
}
