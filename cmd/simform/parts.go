package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-simform/pkg/page"
	"github.com/goliatone/go-simform/pkg/submit"
)

func (a *app) newPage(ctx context.Context) (*page.Page, error) {
	return page.Default(ctx,
		page.WithLogger(a.logger),
		page.WithSubmitOptions(submit.WithBaseURL(a.cfg.Client.BaseURL)),
	)
}

// selectParts resolves "1", "2" or "all" into page parts.
func selectParts(p *page.Page, selector string) ([]*page.Part, error) {
	parts := p.Parts()
	selector = strings.TrimSpace(strings.ToLower(selector))
	if selector == "all" {
		return parts, nil
	}
	n, err := strconv.Atoi(selector)
	if err != nil || n < 1 || n > len(parts) {
		return nil, fmt.Errorf("part must be 1..%d or all, got %q", len(parts), selector)
	}
	return parts[n-1 : n], nil
}
