package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/decor/internal/block"
)

// Scenario defines one decorator scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is an optional CUE configuration file. Relative paths are
	// resolved against the scenario file's directory by LoadScenario.
	Config string `yaml:"config,omitempty"`

	// Decorators lists built-in decorator names in priority order. Used
	// when Config is empty. An empty list is valid.
	Decorators []string `yaml:"decorators,omitempty"`

	// Normalize enables NFC normalization of block text.
	Normalize bool `yaml:"normalize,omitempty"`

	// Blocks is the document to export.
	Blocks []BlockSpec `yaml:"blocks"`

	// Assertions validate the export.
	Assertions []Assertion `yaml:"assertions"`
}

// BlockSpec describes one block of a scenario document.
type BlockSpec struct {
	Key   string `yaml:"key"`
	Type  string `yaml:"type,omitempty"`
	Text  string `yaml:"text"`
	Depth int    `yaml:"depth,omitempty"`
}

// Assertion validates the export of a scenario.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Block is the key of the block under test. Empty means the whole
	// document (markup_*, element_count, attr_equals only).
	Block string `yaml:"block,omitempty"`

	// Value is the expected markup or attribute value.
	Value string `yaml:"value,omitempty"`

	// Selector is a CSS selector (element_count, attr_equals).
	Selector string `yaml:"selector,omitempty"`

	// Attr is the attribute name (attr_equals).
	Attr string `yaml:"attr,omitempty"`

	// Count is the expected number of matches (element_count).
	Count int `yaml:"count,omitempty"`

	// Expect is the expected flag (decorated, gate).
	Expect *bool `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertMarkupEquals   = "markup_equals"
	AssertMarkupContains = "markup_contains"
	AssertElementCount   = "element_count"
	AssertAttrEquals     = "attr_equals"
	AssertDecorated      = "decorated"
	AssertGate           = "gate"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(filepath.Dir(path), scenario.Config)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML held in memory. Config paths are left
// as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and assertion shapes.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Config != "" && len(s.Decorators) > 0 {
		return fmt.Errorf("config and decorators are mutually exclusive")
	}
	if len(s.Blocks) == 0 {
		return fmt.Errorf("at least one block is required")
	}

	keys := make(map[string]bool, len(s.Blocks))
	for i, b := range s.Blocks {
		if b.Key == "" {
			return fmt.Errorf("blocks[%d]: key is required", i)
		}
		if keys[b.Key] {
			return fmt.Errorf("blocks[%d]: duplicate key %q", i, b.Key)
		}
		keys[b.Key] = true
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a, i, keys); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(a Assertion, index int, keys map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Block != "" && !keys[a.Block] {
		return fmt.Errorf("assertions[%d]: unknown block %q", index, a.Block)
	}

	switch a.Type {
	case AssertMarkupEquals, AssertMarkupContains:
		if a.Type == AssertMarkupContains && a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertElementCount:
		if a.Selector == "" {
			return fmt.Errorf("assertions[%d]: selector is required for element_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for element_count", index)
		}
	case AssertAttrEquals:
		if a.Selector == "" || a.Attr == "" {
			return fmt.Errorf("assertions[%d]: selector and attr are required for attr_equals", index)
		}
	case AssertDecorated, AssertGate:
		if a.Block == "" {
			return fmt.Errorf("assertions[%d]: block is required for %s", index, a.Type)
		}
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// ContentState builds the scenario document. Blocks without a type are
// unstyled.
func (s *Scenario) ContentState() *block.ContentState {
	cs := &block.ContentState{
		Blocks:    make(block.BlockList, len(s.Blocks)),
		EntityMap: map[string]block.Entity{},
	}
	for i, b := range s.Blocks {
		typ := b.Type
		if typ == "" {
			typ = block.TypeUnstyled
		}
		cs.Blocks[i] = block.Block{Key: b.Key, Text: b.Text, Type: typ, Depth: b.Depth}
	}
	return cs
}
