package harness

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Block    string // Block key, empty for the document
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	target := "document"
	if e.Block != "" {
		target = fmt.Sprintf("block %q", e.Block)
	}
	fmt.Fprintf(&buf, "Assertion failed: %s (%s)\n", e.Type, target)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)

	return buf.String()
}

// EvaluateAssertions evaluates all assertions and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	markup := result.Markup
	var outcome BlockOutcome
	if a.Block != "" {
		var ok bool
		outcome, ok = result.Block(a.Block)
		if !ok {
			return fmt.Errorf("block %q not in result", a.Block)
		}
		markup = outcome.Markup
	}

	switch a.Type {
	case AssertMarkupEquals:
		if markup != a.Value {
			return fail(a, fmt.Sprintf("%q", a.Value), fmt.Sprintf("%q", markup))
		}
	case AssertMarkupContains:
		if !strings.Contains(markup, a.Value) {
			return fail(a, fmt.Sprintf("markup containing %q", a.Value), fmt.Sprintf("%q", markup))
		}
	case AssertElementCount:
		sel, err := selectIn(markup, a.Selector)
		if err != nil {
			return err
		}
		if sel.Length() != a.Count {
			return fail(a, fmt.Sprintf("%d match(es) for %q", a.Count, a.Selector), fmt.Sprintf("%d", sel.Length()))
		}
	case AssertAttrEquals:
		sel, err := selectIn(markup, a.Selector)
		if err != nil {
			return err
		}
		if sel.Length() == 0 {
			return fail(a, fmt.Sprintf("element matching %q", a.Selector), "no match")
		}
		val, ok := sel.First().Attr(a.Attr)
		if !ok {
			return fail(a, fmt.Sprintf("%s=%q", a.Attr, a.Value), fmt.Sprintf("no %s attribute", a.Attr))
		}
		if val != a.Value {
			return fail(a, fmt.Sprintf("%s=%q", a.Attr, a.Value), fmt.Sprintf("%s=%q", a.Attr, val))
		}
	case AssertDecorated:
		if outcome.Decorated != *a.Expect {
			return fail(a, fmt.Sprintf("decorated=%t", *a.Expect), fmt.Sprintf("decorated=%t", outcome.Decorated))
		}
	case AssertGate:
		if outcome.Gate != *a.Expect {
			return fail(a, fmt.Sprintf("gate=%t", *a.Expect), fmt.Sprintf("gate=%t", outcome.Gate))
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func selectIn(markup, selector string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return doc.Find(selector), nil
}

func fail(a Assertion, expected, actual string) error {
	return &AssertionError{Type: a.Type, Block: a.Block, Expected: expected, Actual: actual}
}
