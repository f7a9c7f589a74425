// Package sample holds the fixed example inputs and the loaders that copy them
// into form fields.
package sample

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-simform/pkg/dom"
)

const (
	// Part1 is the single car sample.
	Part1 = "10 10\n1 2 N\nFFRFFFRRLF"
	// Part2 is the multiple car sample.
	Part2 = "10 10\n\nA\n1 2 N\nFFRFFFFRRL\n\nB\n7 8 W\nFFLFFFFFFF"

	KeyPart1 = "part1"
	KeyPart2 = "part2"
)

// ErrUnknownSample is returned by Lookup for keys outside the catalogue.
var ErrUnknownSample = errors.New("sample: unknown sample")

//go:embed samples.yaml
var catalogueYAML []byte

// Sample is a catalogue entry.
type Sample struct {
	Key   string `yaml:"-"`
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

var (
	catalogueOnce sync.Once
	catalogue     map[string]Sample
	catalogueErr  error
)

// Lookup returns the sample registered under key.
func Lookup(key string) (Sample, error) {
	entries, err := loadCatalogue()
	if err != nil {
		return Sample{}, err
	}
	entry, ok := entries[key]
	if !ok {
		return Sample{}, fmt.Errorf("%w: %q", ErrUnknownSample, key)
	}
	return entry, nil
}

// Keys lists the catalogue keys in sorted order.
func Keys() []string {
	entries, err := loadCatalogue()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func loadCatalogue() (map[string]Sample, error) {
	catalogueOnce.Do(func() {
		catalogue, catalogueErr = parseCatalogue(catalogueYAML)
	})
	return catalogue, catalogueErr
}

func parseCatalogue(data []byte) (map[string]Sample, error) {
	var doc struct {
		Samples map[string]Sample `yaml:"samples"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sample: decode catalogue: %w", err)
	}
	builtin := map[string]string{KeyPart1: Part1, KeyPart2: Part2}
	for key, want := range builtin {
		entry, ok := doc.Samples[key]
		if !ok {
			return nil, fmt.Errorf("sample: catalogue is missing %q", key)
		}
		if entry.Text != want {
			return nil, fmt.Errorf("sample: catalogue text for %q drifted from the built-in literal", key)
		}
	}
	out := make(map[string]Sample, len(doc.Samples))
	for key, entry := range doc.Samples {
		entry.Key = key
		out[key] = entry
	}
	return out, nil
}

// Loader copies a fixed text into a field.
type Loader struct {
	Target *dom.Field
	Text   string
}

// NewLoader binds text to target.
func NewLoader(target *dom.Field, text string) Loader {
	return Loader{Target: target, Text: text}
}

// Part1Loader binds the part 1 sample to target.
func Part1Loader(target *dom.Field) Loader {
	return NewLoader(target, Part1)
}

// Part2Loader binds the part 2 sample to target.
func Part2Loader(target *dom.Field) Loader {
	return NewLoader(target, Part2)
}

// Load overwrites the target value. A nil target is a wiring bug and panics.
func (l Loader) Load() {
	l.Target.SetValue(l.Text)
}
