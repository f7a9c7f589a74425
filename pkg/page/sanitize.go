package page

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps the inline markup an operation description may
// carry and drops everything else. Output text never goes through here; the
// template escapes it as is.
func sanitizeDescription(raw string) string {
	if raw == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("code", "em", "strong", "br")
		descriptionPolicy = policy
	})
	return descriptionPolicy.Sanitize(raw)
}
