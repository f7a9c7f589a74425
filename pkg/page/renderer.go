package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
)

// DefaultTitle is the page heading.
const DefaultTitle = "Auto Driving Car Simulator"

const indexTemplate = "index.tpl"

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTemplatesFS replaces the embedded templates. The set must provide
// index.tpl.
func WithTemplatesFS(files fs.FS) RendererOption {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithTitle overrides the page title.
func WithTitle(title string) RendererOption {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			r.title = trimmed
		}
	}
}

// WithScriptURL overrides the URL of the browser script.
func WithScriptURL(url string) RendererOption {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			r.scriptURL = trimmed
		}
	}
}

// WithThemeSelector sets the selector used to resolve theme tokens.
func WithThemeSelector(selector theme.ThemeSelector) RendererOption {
	return func(r *Renderer) {
		if selector != nil {
			r.selector = selector
		}
	}
}

// WithTheme picks the theme and variant requested from the selector.
func WithTheme(name, variant string) RendererOption {
	return func(r *Renderer) {
		r.themeName = strings.TrimSpace(name)
		r.themeVariant = strings.TrimSpace(variant)
	}
}

// Renderer turns a Page into HTML.
type Renderer struct {
	templates    fs.FS
	title        string
	scriptURL    string
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string

	tmpl *pongo2.Template
}

// NewRenderer parses the page template.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		templates: TemplatesFS(),
		title:     DefaultTitle,
		scriptURL: ScriptPath,
		selector:  NewManifestSelector(DefaultManifest()),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	set := pongo2.NewSet("simform", pongo2.NewFSLoader(r.templates))
	tmpl, err := set.FromFile(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", indexTemplate, err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render produces the page markup reflecting the current field values and
// output texts.
func (r *Renderer) Render(ctx context.Context, p *Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("page: page is nil")
	}

	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteWriter(r.context(p, selection), &buf); err != nil {
		return nil, fmt.Errorf("page: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) context(p *Page, selection *theme.Selection) pongo2.Context {
	parts := make([]map[string]any, 0, len(p.parts))
	for _, part := range p.parts {
		fields := make([]map[string]any, 0, len(part.Form.Fields))
		for _, field := range part.Form.Fields {
			fields = append(fields, map[string]any{
				"id":    field.ID,
				"name":  field.Name,
				"value": field.Value(),
			})
		}
		sampleText, hasSample := part.SampleText()
		summary := part.Binding.Summary
		if summary == "" {
			summary = part.Binding.OperationID
		}
		parts = append(parts, map[string]any{
			"form_id":     part.Binding.FormID,
			"input_id":    part.Binding.InputID,
			"output_id":   part.Binding.OutputID,
			"path":        part.Binding.Path,
			"summary":     summary,
			"description": sanitizeDescription(part.Binding.Description),
			"fields":      fields,
			"has_sample":  hasSample,
			"sample":      sampleText,
			"output":      part.Output.Text(),
		})
	}

	data := pongo2.Context{
		"title":       r.title,
		"script_url":  r.scriptURL,
		"parts":       parts,
		"theme_style": cssVarsStyle(selectionTokens(selection)),
	}
	if selection != nil {
		data["theme_name"] = selection.Theme
		data["theme_variant"] = selection.Variant
	}
	return data
}
