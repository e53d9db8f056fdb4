package block

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoBlocks is returned when a document has no "blocks" array.
var ErrNoBlocks = errors.New("missing blocks array")

// DecodeError locates a decoding or validation failure in the document.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a content state from JSON.
//
// Blocks without a type are treated as unstyled. Duplicate or missing keys,
// negative depths and ranges outside the block text are rejected.
func Decode(r io.Reader) (*ContentState, error) {
	var raw struct {
		Blocks    *BlockList        `json:"blocks"`
		EntityMap map[string]Entity `json:"entityMap"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw.Blocks == nil {
		return nil, &DecodeError{Err: ErrNoBlocks}
	}

	cs := &ContentState{Blocks: *raw.Blocks, EntityMap: raw.EntityMap}
	if cs.EntityMap == nil {
		cs.EntityMap = map[string]Entity{}
	}
	for i := range cs.Blocks {
		if cs.Blocks[i].Type == "" {
			cs.Blocks[i].Type = TypeUnstyled
		}
	}
	if err := Validate(cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// DecodeString is a convenience wrapper for Decode.
func DecodeString(s string) (*ContentState, error) {
	return Decode(strings.NewReader(s))
}

// Validate checks structural constraints on a decoded document.
// Range offsets and lengths are counted in UTF-16 code units, as the editor
// produces them.
func Validate(cs *ContentState) error {
	seen := make(map[string]int, len(cs.Blocks))
	for i, b := range cs.Blocks {
		path := fmt.Sprintf("blocks[%d]", i)
		if b.Key == "" {
			return &DecodeError{Path: path, Err: errors.New("key is required")}
		}
		if prev, dup := seen[b.Key]; dup {
			return &DecodeError{Path: path, Err: fmt.Errorf("duplicate key %q (first at blocks[%d])", b.Key, prev)}
		}
		seen[b.Key] = i
		if b.Depth < 0 {
			return &DecodeError{Path: path, Err: fmt.Errorf("depth must be >= 0, got %d", b.Depth)}
		}

		n := utf16Len(b.Text)
		for j, r := range b.InlineStyleRanges {
			if err := checkRange(r.Offset, r.Length, n); err != nil {
				return &DecodeError{Path: fmt.Sprintf("%s.inlineStyleRanges[%d]", path, j), Err: err}
			}
		}
		for j, r := range b.EntityRanges {
			if err := checkRange(r.Offset, r.Length, n); err != nil {
				return &DecodeError{Path: fmt.Sprintf("%s.entityRanges[%d]", path, j), Err: err}
			}
			if _, ok := cs.EntityMap[fmt.Sprintf("%d", r.Key)]; !ok {
				return &DecodeError{Path: fmt.Sprintf("%s.entityRanges[%d]", path, j), Err: fmt.Errorf("entity %d not in entityMap", r.Key)}
			}
		}
	}
	return nil
}

func checkRange(offset, length, textLen int) error {
	if offset < 0 || length < 0 || offset > textLen || length > textLen-offset {
		return fmt.Errorf("range [%d,+%d) outside text of length %d", offset, length, textLen)
	}
	return nil
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
