package dom

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tagPattern  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	attrPattern = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:.-]*$`)
)

// rawTextTags are elements whose children the HTML serializer writes
// without escaping.
var rawTextTags = map[atom.Atom]bool{
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
	atom.Script:    true,
	atom.Style:     true,
	atom.Xmp:       true,
}

// ValidateTag reports whether tag can be rendered as an element with
// escaped text content.
func ValidateTag(tag string) error {
	if !tagPattern.MatchString(tag) {
		return fmt.Errorf("invalid tag %q", tag)
	}
	if rawTextTags[atom.Lookup([]byte(tag))] {
		return fmt.Errorf("tag %q renders its text unescaped", tag)
	}
	return nil
}

// ValidateAttr reports whether key is a usable attribute name.
func ValidateAttr(key string) error {
	if !attrPattern.MatchString(key) {
		return fmt.Errorf("invalid attribute name %q", key)
	}
	return nil
}

// Render serializes n to markup. Elements with an invalid or raw-text tag,
// or an invalid attribute name, are errors.
func Render(n Node) (string, error) {
	var b strings.Builder
	if err := renderTo(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderTo(b *strings.Builder, n Node) error {
	switch v := n.(type) {
	case nil:
		return nil
	case Text:
		return html.Render(b, &html.Node{Type: html.TextNode, Data: string(v)})
	case *Element:
		if v == nil {
			return nil
		}
		if v.IsFragment() {
			for i, child := range v.Children {
				if err := renderTo(b, child); err != nil {
					return fmt.Errorf("fragment child %d: %w", i, err)
				}
			}
			return nil
		}
		hn, err := toHTML(v)
		if err != nil {
			return err
		}
		return html.Render(b, hn)
	default:
		return fmt.Errorf("render: unsupported node type %T", n)
	}
}

// toHTML converts an element subtree to x/net/html nodes. Fragments nested
// inside elements are flattened into their parent.
func toHTML(el *Element) (*html.Node, error) {
	if err := ValidateTag(el.Tag); err != nil {
		return nil, err
	}
	for k := range el.Props {
		if err := ValidateAttr(k); err != nil {
			return nil, fmt.Errorf("<%s>: %w", el.Tag, err)
		}
	}
	hn := &html.Node{
		Type:     html.ElementNode,
		Data:     el.Tag,
		DataAtom: atom.Lookup([]byte(el.Tag)),
		Attr:     attributes(el.Props),
	}
	if err := appendChildren(hn, el.Children); err != nil {
		return nil, fmt.Errorf("<%s>: %w", el.Tag, err)
	}
	return hn, nil
}

func appendChildren(parent *html.Node, children []Node) error {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
		case Text:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: string(v)})
		case *Element:
			if v == nil {
				continue
			}
			if v.IsFragment() {
				if err := appendChildren(parent, v.Children); err != nil {
					return err
				}
				continue
			}
			hn, err := toHTML(v)
			if err != nil {
				return err
			}
			parent.AppendChild(hn)
		default:
			return fmt.Errorf("unsupported node type %T", child)
		}
	}
	return nil
}

func attributes(props Props) []html.Attribute {
	if len(props) == 0 {
		return nil
	}
	attrs := make([]html.Attribute, 0, len(props))
	for k, v := range props {
		key := k
		if key == "className" {
			key = "class"
		}
		attrs = append(attrs, html.Attribute{Key: key, Val: v})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}
