package submit

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DefaultBaseURL is the origin endpoint paths resolve against when no base URL
// is configured.
const DefaultBaseURL = "http://localhost:5000"

// Option configures a Submitter.
type Option func(*Submitter)

// WithBaseURL sets the origin relative endpoint paths resolve against.
func WithBaseURL(base string) Option {
	return func(s *Submitter) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			s.baseURL = trimmed
		}
	}
}

// WithHTTPClient overrides the client used for the round trip.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets the logger receiving diagnostic records.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFallbackText overrides the text shown when transmission fails.
func WithFallbackText(text string) Option {
	return func(s *Submitter) {
		if text != "" {
			s.fallback = text
		}
	}
}
