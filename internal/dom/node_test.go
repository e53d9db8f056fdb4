package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateElement_DropsNilChildren(t *testing.T) {
	el := CreateElement("span", nil, Text("a"), nil, Text("b"))

	require.Len(t, el.Children, 2)
	assert.Equal(t, Text("a"), el.Children[0])
	assert.Equal(t, Text("b"), el.Children[1])
	assert.Nil(t, el.Props)
}

func TestCreateElement_CopiesProps(t *testing.T) {
	props := Props{"href": "https://example.com"}
	el := CreateElement("a", props)

	props["href"] = "changed"
	assert.Equal(t, "https://example.com", el.Props["href"])
}

func TestFragment(t *testing.T) {
	f := Fragment(Text("x"))
	assert.True(t, f.IsFragment())
	assert.False(t, CreateElement("p", nil).IsFragment())
}

func TestTextContent(t *testing.T) {
	tree := Fragment(
		Text("test "),
		CreateElement("a", Props{"href": "https://example.com"}, Text("https://example.com")),
		Text(" "),
		CreateElement("span", nil, Fragment(Text("#a"), Text("b"))),
	)

	assert.Equal(t, "test https://example.com #ab", TextContent(tree))
	assert.Equal(t, "plain", TextContent(Text("plain")))
	assert.Equal(t, "", TextContent(CreateElement("br", nil)))
}
