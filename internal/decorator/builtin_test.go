package decorator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/decor/internal/block"
	"github.com/roach88/decor/internal/dom"
)

// renderMatch scans text with d and renders the first match the way the
// engine would.
func renderMatch(t *testing.T, d Decorator, blockType, text string) Result {
	t.Helper()

	matches, err := Scan(d.Strategy, text)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	res, err := d.Component(Props{
		Block:    block.Block{Type: blockType},
		Match:    matches[0],
		Children: dom.Text(matches[0].Text),
	})
	require.NoError(t, err)
	return res
}

func renderResult(t *testing.T, res Result) string {
	t.Helper()
	out, err := dom.Render(res.Value())
	require.NoError(t, err)
	return out
}

func TestLinkify_Render(t *testing.T) {
	res := renderMatch(t, Linkify(), block.TypeUnstyled, "test https://www.example.com")
	assert.Equal(t, `<a href="https://www.example.com">https://www.example.com</a>`, renderResult(t, res))
}

func TestLinkify_RenderWWW(t *testing.T) {
	res := renderMatch(t, Linkify(), block.TypeUnstyled, "test www.example.com")
	assert.Equal(t, `<a href="http://www.example.com">www.example.com</a>`, renderResult(t, res))
}

func TestLinkify_CodeBlock(t *testing.T) {
	res := renderMatch(t, Linkify(), block.TypeCode, "test https://www.example.com")
	assert.Equal(t, dom.Text("https://www.example.com"), res.Value())
}

func TestHashtag_Render(t *testing.T) {
	res := renderMatch(t, Hashtag(), block.TypeUnstyled, "#hashtagtest")
	assert.Equal(t, `<span class="hashtag">#hashtagtest</span>`, renderResult(t, res))
}

func TestHashtag_CodeBlock(t *testing.T) {
	res := renderMatch(t, Hashtag(), block.TypeCode, "#hashtagtest")
	assert.Equal(t, dom.Text("#hashtagtest"), res.Value())
}

func TestHashtag_UnicodeWordCharacters(t *testing.T) {
	matches, err := Scan(HashtagPattern, "#café_2 #日本")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "#café_2", matches[0].Text)
	assert.Equal(t, "#日本", matches[1].Text)
}

func TestLineBreak_Render(t *testing.T) {
	res := renderMatch(t, LineBreak(), block.TypeUnstyled, "\n")
	assert.Equal(t, "<br/>", renderResult(t, res))
}

func TestLineBreak_CodeBlock(t *testing.T) {
	res := renderMatch(t, LineBreak(), block.TypeCode, "\n")
	assert.Equal(t, dom.Text("\n"), res.Value())
}

func TestBuiltin_Registry(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			d, ok := Builtin(name)
			require.True(t, ok)
			assert.NoError(t, d.Validate(0))
		})
	}

	br, ok := Builtin("LINE_BREAK")
	require.True(t, ok)
	assert.Equal(t, KindLineBreak, br.Kind)

	hashtag, _ := Builtin("hashtag")
	assert.Equal(t, KindGeneric, hashtag.Kind)

	_, ok = Builtin("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"br", "hashtag", "line_break", "linkify"}, BuiltinNames())
}
