package decorator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/decor/internal/dom"
)

var (
	// LineBreakPattern matches a single newline.
	LineBreakPattern = regexp.MustCompile(`\n`)

	// HashtagPattern matches # followed by one or more letters, digits,
	// marks or underscores.
	HashtagPattern = regexp.MustCompile(`#[\p{L}\p{M}\p{N}_]+`)

	// LinkifyPattern matches http://, https:// and bare www. URLs.
	// Group 1 is the scheme or "www.", group 2 the rest.
	LinkifyPattern = regexp.MustCompile(`(http://|https://|www\.)([a-zA-Z0-9\.\-%/\?&_=\+#:~!,'\*\^$]+)`)
)

// LineBreak renders newlines as <br/>, except in code blocks.
func LineBreak() Decorator {
	return Decorator{
		Name:      "br",
		Strategy:  LineBreakPattern,
		Component: RenderLineBreak,
		Kind:      KindLineBreak,
	}
}

// Hashtag wraps #tags in <span class="hashtag">, except in code blocks.
func Hashtag() Decorator {
	return Decorator{
		Name:      "hashtag",
		Strategy:  HashtagPattern,
		Component: RenderHashtag,
	}
}

// Linkify turns URLs into links, except in code blocks.
func Linkify() Decorator {
	return Decorator{
		Name:      "linkify",
		Strategy:  LinkifyPattern,
		Component: RenderLinkify,
	}
}

// RenderLineBreak is the line-break renderer.
func RenderLineBreak(p Props) (Result, error) {
	if p.Block.IsCode() {
		return Node(p.Children), nil
	}
	return Node(dom.CreateElement("br", nil)), nil
}

// RenderHashtag is the hashtag renderer.
func RenderHashtag(p Props) (Result, error) {
	if p.Block.IsCode() {
		return Node(p.Children), nil
	}
	return Node(dom.CreateElement("span", dom.Props{"className": "hashtag"}, p.Children)), nil
}

// RenderLinkify is the linkify renderer. Links without a scheme get http://.
func RenderLinkify(p Props) (Result, error) {
	if p.Block.IsCode() {
		return Node(p.Children), nil
	}
	href := p.Match.Text
	if p.Match.Group(1) == "www." {
		href = "http://" + href
	}
	return Node(dom.CreateElement("a", dom.Props{"href": href}, p.Children)), nil
}

var builtins = map[string]func() Decorator{
	"br":         LineBreak,
	"line_break": LineBreak,
	"hashtag":    Hashtag,
	"linkify":    Linkify,
}

// Builtin returns the built-in decorator registered under name.
func Builtin(name string) (Decorator, bool) {
	ctor, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Decorator{}, false
	}
	return ctor(), true
}

// BuiltinNames lists the registered built-in names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
