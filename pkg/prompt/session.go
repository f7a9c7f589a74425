package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-simform/pkg/page"
)

// Session runs one interactive submission against a page.
type Session struct {
	page   *page.Page
	driver PromptDriver
}

// NewSession binds a driver to a page.
func NewSession(p *page.Page, driver PromptDriver) (*Session, error) {
	if p == nil {
		return nil, errors.New("prompt: page is nil")
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	return &Session{page: p, driver: driver}, nil
}

// Run walks the user through one submission and returns the displayed text.
func (s *Session) Run(ctx context.Context) (string, error) {
	parts := s.page.Parts()
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		label := part.Binding.Summary
		if label == "" {
			label = part.Binding.OperationID
		}
		options = append(options, label)
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Which simulation?",
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(parts) {
		return "", fmt.Errorf("prompt: selection %d out of range", idx)
	}
	part := parts[idx]

	if _, ok := part.SampleText(); ok {
		load, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Load the sample input?",
			Default: true,
		})
		if err != nil {
			return "", err
		}
		if load {
			if err := s.page.LoadSample(part.Binding.FormID); err != nil {
				return "", err
			}
		}
	}

	text, err := s.driver.TextArea(ctx, TextAreaConfig{
		Message: "Input",
		Default: part.Input.Value(),
		Help:    "Field size, then car positions and commands, one per line.",
	})
	if err != nil {
		return "", err
	}
	part.Input.SetValue(text)

	pending, err := s.page.Submit(ctx, part.Binding.FormID)
	if err != nil {
		return "", err
	}
	if err := pending.Wait(ctx); err != nil {
		return "", err
	}

	result := part.Output.Text()
	if err := s.driver.Info(ctx, result); err != nil {
		return "", err
	}
	return result, nil
}
