package decorator

import (
	"fmt"
	"regexp"

	"github.com/roach88/decor/internal/block"
	"github.com/roach88/decor/internal/dom"
)

// ElementTemplate describes the element a template decorator wraps each
// match in. Attribute values may reference capture groups ($1, ${name}).
type ElementTemplate struct {
	Tag   string
	Class string
	Attrs map[string]string

	// SkipBlockTypes lists block types in which matches are left as plain
	// text. Nil means code blocks only.
	SkipBlockTypes []string
}

// Template builds a decorator that wraps every match of pattern in the
// element described by tmpl.
func Template(name, pattern string, tmpl ElementTemplate) (Decorator, error) {
	if tmpl.Tag == "" {
		return Decorator{}, newMalformedError(name, -1, "template tag is required")
	}
	if err := dom.ValidateTag(tmpl.Tag); err != nil {
		return Decorator{}, &Error{Code: ErrCodeMalformedDecorator, Message: "template element", Decorator: name, Index: -1, Err: err}
	}
	for k := range tmpl.Attrs {
		if err := dom.ValidateAttr(k); err != nil {
			return Decorator{}, &Error{Code: ErrCodeMalformedDecorator, Message: "template element", Decorator: name, Index: -1, Err: err}
		}
	}
	re, err := compilePattern(name, pattern)
	if err != nil {
		return Decorator{}, err
	}

	skip := tmpl.SkipBlockTypes
	if skip == nil {
		skip = []string{block.TypeCode}
	}

	render := func(p Props) (Result, error) {
		if containsType(skip, p.Block.Type) {
			return Node(p.Children), nil
		}
		props := make(dom.Props, len(tmpl.Attrs)+1)
		for k, v := range tmpl.Attrs {
			props[k] = p.Match.Expand(re, v)
		}
		if tmpl.Class != "" {
			props["className"] = tmpl.Class
		}
		return Node(dom.CreateElement(tmpl.Tag, props, p.Children)), nil
	}

	return Decorator{Name: name, Strategy: re, Component: render, Params: tmpl.params(skip)}, nil
}

func (tmpl ElementTemplate) params(skip []string) map[string]any {
	attrs := make(map[string]string, len(tmpl.Attrs))
	for k, v := range tmpl.Attrs {
		attrs[k] = v
	}
	return map[string]any{
		"action":           "template",
		"tag":              tmpl.Tag,
		"class":            tmpl.Class,
		"attrs":            attrs,
		"skip_block_types": append([]string{}, skip...),
	}
}

// Strip builds a decorator that removes every match of pattern.
func Strip(name, pattern string) (Decorator, error) {
	re, err := compilePattern(name, pattern)
	if err != nil {
		return Decorator{}, err
	}
	return Decorator{
		Name:     name,
		Strategy: re,
		Component: func(Props) (Result, error) {
			return Suppressed(), nil
		},
		Params: map[string]any{"action": "strip"},
	}, nil
}

func compilePattern(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, newMalformedError(name, -1, "pattern is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &Error{
			Code:      ErrCodeMalformedDecorator,
			Message:   fmt.Sprintf("invalid pattern %q", pattern),
			Decorator: name,
			Index:     -1,
			Err:       err,
		}
	}
	if re.MatchString("") {
		return nil, &Error{
			Code:      ErrCodeNonAdvancingPattern,
			Message:   fmt.Sprintf("pattern %q matches the empty string", pattern),
			Decorator: name,
			Index:     -1,
		}
	}
	return re, nil
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
