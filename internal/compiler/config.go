package compiler

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/decor/internal/decorator"
	"github.com/roach88/decor/internal/dom"
	"github.com/roach88/decor/internal/exporter"
)

// Config is a compiled decorator configuration.
type Config struct {
	Decorators    []decorator.Decorator
	BlockElements map[string]string
	Normalize     bool
}

// ExporterOptions converts the configuration to exporter options.
func (c *Config) ExporterOptions() exporter.Options {
	return exporter.Options{
		Decorators:    c.Decorators,
		BlockElements: c.BlockElements,
		Normalize:     c.Normalize,
	}
}

// DefaultConfig is used when no configuration file is given: linkify, then
// hashtag, then line breaks.
func DefaultConfig() *Config {
	return &Config{
		Decorators: []decorator.Decorator{
			decorator.Linkify(),
			decorator.Hashtag(),
			decorator.LineBreak(),
		},
	}
}

var (
	topLevelFields = []string{"decorators", "block_elements", "normalize"}
	entryFields    = []string{"name", "builtin", "pattern", "element", "strip"}
	elementFields  = []string{"tag", "class", "attrs", "skip_block_types"}
)

// LoadConfig reads and compiles a CUE configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	ctx := cuecontext.New()
	return CompileConfig(ctx.CompileBytes(data, cue.Filename(path)))
}

// CompileConfigString compiles configuration source held in memory.
func CompileConfigString(src string) (*Config, error) {
	ctx := cuecontext.New()
	return CompileConfig(ctx.CompileString(src))
}

// CompileConfig compiles a CUE value into a Config.
func CompileConfig(v cue.Value) (*Config, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError("cue", err)
	}
	if err := checkFields(v, "", topLevelFields); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if nv := v.LookupPath(cue.ParsePath("normalize")); nv.Exists() {
		b, err := nv.Bool()
		if err != nil {
			return nil, formatCUEError("normalize", err)
		}
		cfg.Normalize = b
	}

	elements, err := parseStringMap(v.LookupPath(cue.ParsePath("block_elements")), "block_elements")
	if err != nil {
		return nil, err
	}
	for _, blockType := range sortedKeys(elements) {
		tag := elements[blockType]
		if tag == "" {
			continue
		}
		if err := dom.ValidateTag(tag); err != nil {
			return nil, &CompileError{
				Field:   joinField("block_elements", blockType),
				Message: err.Error(),
				Pos:     v.LookupPath(cue.MakePath(cue.Str("block_elements"), cue.Str(blockType))).Pos(),
			}
		}
	}
	cfg.BlockElements = elements

	dv := v.LookupPath(cue.ParsePath("decorators"))
	if !dv.Exists() {
		return nil, &CompileError{Field: "decorators", Message: "decorators list is required", Pos: v.Pos()}
	}
	iter, err := dv.List()
	if err != nil {
		return nil, formatCUEError("decorators", err)
	}

	seen := make(map[string]string)
	for i := 0; iter.Next(); i++ {
		field := fmt.Sprintf("decorators[%d]", i)
		d, err := parseDecorator(iter.Value(), field)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[d.Name]; dup {
			return nil, &CompileError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate decorator name %q (first defined at %s)", d.Name, prev),
				Pos:     iter.Value().Pos(),
			}
		}
		seen[d.Name] = field
		cfg.Decorators = append(cfg.Decorators, d)
	}

	return cfg, nil
}

// parseDecorator compiles one entry of the decorators list.
func parseDecorator(v cue.Value, field string) (decorator.Decorator, error) {
	if err := checkFields(v, field, entryFields); err != nil {
		return decorator.Decorator{}, err
	}

	name, err := optionalString(v, "name", field)
	if err != nil {
		return decorator.Decorator{}, err
	}
	builtin, err := optionalString(v, "builtin", field)
	if err != nil {
		return decorator.Decorator{}, err
	}
	pattern, err := optionalString(v, "pattern", field)
	if err != nil {
		return decorator.Decorator{}, err
	}
	strip := false
	if sv := v.LookupPath(cue.ParsePath("strip")); sv.Exists() {
		if strip, err = sv.Bool(); err != nil {
			return decorator.Decorator{}, formatCUEError(field+".strip", err)
		}
	}
	ev := v.LookupPath(cue.ParsePath("element"))

	if builtin != "" {
		if pattern != "" || ev.Exists() || strip {
			return decorator.Decorator{}, &CompileError{
				Field:   field,
				Message: "builtin cannot be combined with pattern, element or strip",
				Pos:     v.Pos(),
			}
		}
		d, ok := decorator.Builtin(builtin)
		if !ok {
			return decorator.Decorator{}, &CompileError{
				Field:   field + ".builtin",
				Message: fmt.Sprintf("unknown builtin %q (known: %s)", builtin, strings.Join(decorator.BuiltinNames(), ", ")),
				Pos:     v.LookupPath(cue.ParsePath("builtin")).Pos(),
			}
		}
		if name != "" {
			d.Name = name
		}
		return d, nil
	}

	if name == "" {
		return decorator.Decorator{}, &CompileError{Field: field + ".name", Message: "name is required", Pos: v.Pos()}
	}
	if pattern == "" {
		return decorator.Decorator{}, &CompileError{Field: field + ".pattern", Message: "pattern is required", Pos: v.Pos()}
	}
	if strip == ev.Exists() {
		return decorator.Decorator{}, &CompileError{
			Field:   field,
			Message: "exactly one of element or strip is required",
			Pos:     v.Pos(),
		}
	}

	if strip {
		d, err := decorator.Strip(name, pattern)
		if err != nil {
			return decorator.Decorator{}, &CompileError{Field: field + ".pattern", Message: err.Error(), Pos: v.LookupPath(cue.ParsePath("pattern")).Pos()}
		}
		return d, nil
	}

	tmpl, err := parseElement(ev, field+".element")
	if err != nil {
		return decorator.Decorator{}, err
	}
	d, err := decorator.Template(name, pattern, tmpl)
	if err != nil {
		return decorator.Decorator{}, &CompileError{Field: field, Message: err.Error(), Pos: v.Pos()}
	}
	return d, nil
}

func parseElement(v cue.Value, field string) (decorator.ElementTemplate, error) {
	var tmpl decorator.ElementTemplate
	if err := checkFields(v, field, elementFields); err != nil {
		return tmpl, err
	}

	tag, err := optionalString(v, "tag", field)
	if err != nil {
		return tmpl, err
	}
	if tag == "" {
		return tmpl, &CompileError{Field: field + ".tag", Message: "tag is required", Pos: v.Pos()}
	}
	if err := dom.ValidateTag(tag); err != nil {
		return tmpl, &CompileError{Field: field + ".tag", Message: err.Error(), Pos: v.LookupPath(cue.ParsePath("tag")).Pos()}
	}
	tmpl.Tag = tag

	if tmpl.Class, err = optionalString(v, "class", field); err != nil {
		return tmpl, err
	}
	if tmpl.Attrs, err = parseStringMap(v.LookupPath(cue.ParsePath("attrs")), field+".attrs"); err != nil {
		return tmpl, err
	}
	for _, k := range sortedKeys(tmpl.Attrs) {
		if err := dom.ValidateAttr(k); err != nil {
			return tmpl, &CompileError{Field: joinField(field+".attrs", k), Message: err.Error(), Pos: v.Pos()}
		}
	}

	if sv := v.LookupPath(cue.ParsePath("skip_block_types")); sv.Exists() {
		iter, err := sv.List()
		if err != nil {
			return tmpl, formatCUEError(field+".skip_block_types", err)
		}
		tmpl.SkipBlockTypes = []string{}
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return tmpl, formatCUEError(field+".skip_block_types", err)
			}
			tmpl.SkipBlockTypes = append(tmpl.SkipBlockTypes, s)
		}
	}
	return tmpl, nil
}

func optionalString(v cue.Value, name, field string) (string, error) {
	sv := v.LookupPath(cue.ParsePath(name))
	if !sv.Exists() {
		return "", nil
	}
	s, err := sv.String()
	if err != nil {
		return "", formatCUEError(joinField(field, name), err)
	}
	return s, nil
}

// parseStringMap reads a struct of string fields. A missing value yields nil.
func parseStringMap(v cue.Value, field string) (map[string]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(field, err)
	}
	out := make(map[string]string)
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(joinField(field, iter.Label()), err)
		}
		out[iter.Label()] = s
	}
	return out, nil
}

// checkFields rejects fields outside allowed, which catches typos.
func checkFields(v cue.Value, field string, allowed []string) error {
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(fieldOrRoot(field), err)
	}
	for iter.Next() {
		label := iter.Label()
		if !contains(allowed, label) {
			sorted := append([]string(nil), allowed...)
			sort.Strings(sorted)
			return &CompileError{
				Field:   joinField(field, label),
				Message: fmt.Sprintf("unknown field %q (allowed: %s)", label, strings.Join(sorted, ", ")),
				Pos:     iter.Value().Pos(),
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func joinField(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func fieldOrRoot(field string) string {
	if field == "" {
		return "config"
	}
	return field
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
