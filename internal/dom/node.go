package dom

import "strings"

// Node is either a Text leaf or an *Element.
type Node interface {
	isNode()
}

// Text is a plain string leaf.
type Text string

func (Text) isNode() {}

// Props holds element attributes. The key "className" is rendered as "class".
type Props map[string]string

// Element is a tagged node with properties and ordered children.
// An empty Tag marks a fragment.
type Element struct {
	Tag      string
	Props    Props
	Children []Node
}

func (*Element) isNode() {}

// IsFragment reports whether the element renders only its children.
func (e *Element) IsFragment() bool {
	return e.Tag == ""
}

// CreateElement builds an element node. Nil children are dropped.
// Props are copied so the caller may reuse the map.
func CreateElement(tag string, props Props, children ...Node) *Element {
	el := &Element{Tag: tag}
	if len(props) > 0 {
		el.Props = make(Props, len(props))
		for k, v := range props {
			el.Props[k] = v
		}
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		el.Children = append(el.Children, child)
	}
	return el
}

// Fragment groups nodes without a wrapping tag.
func Fragment(children ...Node) *Element {
	return CreateElement("", nil, children...)
}

// TextContent concatenates every text leaf under n in document order.
func TextContent(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		b.WriteString(string(v))
	case *Element:
		if v == nil {
			return
		}
		for _, child := range v.Children {
			writeText(b, child)
		}
	}
}
