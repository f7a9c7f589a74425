// Package contract reads the endpoint contract of the simulator from an
// OpenAPI document. Each POST operation tagged with the x-simform extension
// becomes a Binding tying a form, its input and output elements, and a sample
// to the operation path.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionKey names the operation extension carrying the page bindings.
const ExtensionKey = "x-simform"

var (
	// ErrEmptyDocument is returned for empty payloads.
	ErrEmptyDocument = errors.New("contract: document is empty")
	// ErrNoBindings is returned when no operation carries the extension.
	ErrNoBindings = errors.New("contract: no bound operations")
)

//go:embed simulate.yaml
var simulateDocument []byte

// Document returns the embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), simulateDocument...)
}

// Binding ties one operation to the page elements that drive it.
type Binding struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
	Description string
	FormID      string
	InputID     string
	OutputID    string
	Sample      string
	Fields      []string
}

// Default loads the embedded document.
func Default(ctx context.Context) ([]Binding, error) {
	return Load(ctx, simulateDocument)
}

// Load parses an OpenAPI document and returns its bindings sorted by form id.
func Load(ctx context.Context, data []byte) ([]Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	var bindings []Binding
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				binding, ok, err := bindOperation(method, path, operation)
				if err != nil {
					return nil, err
				}
				if ok {
					bindings = append(bindings, binding)
				}
			}
		}
	}
	if len(bindings) == 0 {
		return nil, ErrNoBindings
	}

	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].FormID < bindings[j].FormID
	})
	if err := checkUnique(bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func bindOperation(method, path string, operation *openapi3.Operation) (Binding, bool, error) {
	if operation == nil {
		return Binding{}, false, nil
	}
	raw, ok := operation.Extensions[ExtensionKey]
	if !ok {
		return Binding{}, false, nil
	}

	label := operation.OperationID
	if label == "" {
		label = strings.ToLower(method) + ":" + path
	}
	if !strings.EqualFold(method, "POST") {
		return Binding{}, false, fmt.Errorf("contract: %s: forms submit with POST, got %s", label, method)
	}

	ext, ok := raw.(map[string]any)
	if !ok {
		return Binding{}, false, fmt.Errorf("contract: %s: %s must be an object", label, ExtensionKey)
	}

	binding := Binding{
		OperationID: label,
		Method:      strings.ToUpper(method),
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		FormID:      stringValue(ext, "form"),
		InputID:     stringValue(ext, "input"),
		OutputID:    stringValue(ext, "output"),
		Sample:      stringValue(ext, "sample"),
		Fields:      requestFields(operation.RequestBody),
	}
	for key, value := range map[string]string{"form": binding.FormID, "input": binding.InputID, "output": binding.OutputID} {
		if value == "" {
			return Binding{}, false, fmt.Errorf("contract: %s: %s.%s is required", label, ExtensionKey, key)
		}
	}
	if len(binding.Fields) == 0 {
		return Binding{}, false, fmt.Errorf("contract: %s: request body declares no form fields", label)
	}
	return binding, true, nil
}

func requestFields(body *openapi3.RequestBodyRef) []string {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"multipart/form-data", "application/x-www-form-urlencoded"} {
		mt, ok := body.Value.Content[mediaType]
		if !ok || mt.Schema == nil || mt.Schema.Value == nil {
			continue
		}
		names := make([]string, 0, len(mt.Schema.Value.Properties))
		for name := range mt.Schema.Value.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
	return nil
}

func checkUnique(bindings []Binding) error {
	seen := make(map[string]string)
	for _, binding := range bindings {
		for _, id := range []string{binding.FormID, binding.InputID, binding.OutputID} {
			if owner, taken := seen[id]; taken {
				return fmt.Errorf("contract: element id %q used by %s and %s", id, owner, binding.OperationID)
			}
			seen[id] = binding.OperationID
		}
	}
	return nil
}

func stringValue(ext map[string]any, key string) string {
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
