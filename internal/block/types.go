package block

// Block types understood by the exporter and the built-in renderers.
const (
	TypeUnstyled          = "unstyled"
	TypeHeaderOne         = "header-one"
	TypeHeaderTwo         = "header-two"
	TypeHeaderThree       = "header-three"
	TypeHeaderFour        = "header-four"
	TypeHeaderFive        = "header-five"
	TypeHeaderSix         = "header-six"
	TypeUnorderedListItem = "unordered-list-item"
	TypeOrderedListItem   = "ordered-list-item"
	TypeBlockquote        = "blockquote"
	TypeCode              = "code-block"
	TypeAtomic            = "atomic"
)

// Block is one unit of rich-text content.
type Block struct {
	Key               string             `json:"key"`
	Text              string             `json:"text"`
	Type              string             `json:"type"`
	Depth             int                `json:"depth"`
	InlineStyleRanges []InlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange      `json:"entityRanges"`
	Data              map[string]any     `json:"data,omitempty"`
}

// IsCode reports whether the block holds verbatim text that decorators
// should leave alone.
func (b Block) IsCode() bool {
	return b.Type == TypeCode
}

// InlineStyleRange marks a styled span of block text.
type InlineStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// EntityRange links a span of block text to an entity in the entity map.
type EntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// Entity is a typed annotation such as a link or an image.
type Entity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// BlockList is the ordered sequence of all blocks in a document.
type BlockList []Block

// Index returns the position of the block with the given key, or -1.
func (l BlockList) Index(key string) int {
	for i := range l {
		if l[i].Key == key {
			return i
		}
	}
	return -1
}

// Get returns the block with the given key.
func (l BlockList) Get(key string) (Block, bool) {
	i := l.Index(key)
	if i < 0 {
		return Block{}, false
	}
	return l[i], true
}

// ContentState is a decoded document.
type ContentState struct {
	Blocks    BlockList         `json:"blocks"`
	EntityMap map[string]Entity `json:"entityMap"`
}
