// Package chat models the rich-text JSON component carried on the
// wire as a length-prefixed string. The core codec only supplies the
// string transport; everything here is JSON semantics layered on top.
package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"craftwire.dev/wire"
)

// ErrInvalidRoot means the JSON document was not an object, array or
// bare string.
var ErrInvalidRoot = errors.New("chat: invalid json root")

// Component is one node of a rich-text message. Unset booleans are
// distinct from explicit false, hence the pointers.
type Component struct {
	Text          string      `json:"text,omitempty"`
	Translate     string      `json:"translate,omitempty"`
	Keybind       string      `json:"keybind,omitempty"`
	Score         *Score      `json:"score,omitempty"`
	Selector      string      `json:"selector,omitempty"`
	Bold          *bool       `json:"bold,omitempty"`
	Italic        *bool       `json:"italic,omitempty"`
	Underlined    *bool       `json:"underlined,omitempty"`
	Strikethrough *bool       `json:"strikethrough,omitempty"`
	Obfuscated    *bool       `json:"obfuscated,omitempty"`
	Color         string      `json:"color,omitempty"`
	Insertion     string      `json:"insertion,omitempty"`
	ClickEvent    *ClickEvent `json:"clickEvent,omitempty"`
	HoverEvent    *HoverEvent `json:"hoverEvent,omitempty"`
	Extra         []Component `json:"extra,omitempty"`
}

// Score references a scoreboard entry.
type Score struct {
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Value     string `json:"value,omitempty"`
}

type ClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

type HoverEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// Plain wraps a bare string in a text component.
func Plain(text string) Component {
	return Component{Text: text}
}

// Parse accepts the three legal root shapes: an object is a component,
// an array is a list of siblings hung off an empty parent, and a bare
// string is plain text.
func Parse(data string) (Component, error) {
	var c Component
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return Component{}, err
	}
	return c, nil
}

// component sidesteps the custom unmarshaller for the object shape.
type component Component

// UnmarshalJSON accepts the three shapes a component may take anywhere
// in a document, including nested inside an "extra" list.
func (c *Component) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidRoot
	}
	switch data[0] {
	case '{':
		return json.Unmarshal(data, (*component)(c))
	case '[':
		var extra []Component
		if err := json.Unmarshal(data, &extra); err != nil {
			return err
		}
		*c = Component{Extra: extra}
		return nil
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*c = Component{Text: text}
		return nil
	default:
		return ErrInvalidRoot
	}
}

// Flatten renders the component tree as unstyled text.
func (c Component) Flatten() string {
	var b strings.Builder
	flattenInto(&b, c)
	return b.String()
}

func flattenInto(b *strings.Builder, c Component) {
	switch {
	case c.Text != "":
		b.WriteString(c.Text)
	case c.Translate != "":
		b.WriteString(c.Translate)
	case c.Keybind != "":
		b.WriteString(c.Keybind)
	case c.Selector != "":
		b.WriteString(c.Selector)
	}
	for _, extra := range c.Extra {
		flattenInto(b, extra)
	}
}

// String renders the component as a JSON document.
func (c Component) String() (string, error) {
	b, err := json.Marshal(c)
	return string(b), err
}

// Append encodes the component as a length-prefixed JSON string.
func Append(dst []byte, c Component) ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return wire.AppendString(dst, string(b)), nil
}

// Read decodes a length-prefixed JSON string into a component,
// returning the bytes consumed.
func Read(r io.Reader) (Component, int, error) {
	s, n, err := wire.ReadString(r)
	if err != nil {
		return Component{}, 0, err
	}
	c, err := Parse(s)
	return c, n, err
}
