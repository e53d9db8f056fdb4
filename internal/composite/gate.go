package composite

import (
	"strings"

	"github.com/roach88/decor/internal/decorator"
)

// ShouldRenderDecorators reports whether running RenderDecorators on text
// can be worthwhile.
//
// With several decorators it always answers true. A lone line-break
// decorator runs on nearly every block while newlines are rare, so it only
// answers true when text contains one. Any other lone decorator answers true.
func ShouldRenderDecorators(decorators []decorator.Decorator, text string) bool {
	switch len(decorators) {
	case 0:
		return false
	case 1:
		if decorators[0].Kind == decorator.KindLineBreak {
			return strings.Contains(text, "\n")
		}
		return true
	default:
		return true
	}
}
