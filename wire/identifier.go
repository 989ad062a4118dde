package wire

import (
	"io"
	"strings"
)

// DefaultNamespace is assumed when an identifier string carries no
// namespace of its own.
const DefaultNamespace = "minecraft"

// Identifier is a namespaced resource reference, written on the wire
// as the string "namespace:selector".
type Identifier struct {
	Namespace string
	Selector  string
}

// ParseIdentifier splits s on ':'. No separator implies the default
// namespace; more than one separator is a parse error.
func ParseIdentifier(s string) (Identifier, error) {
	switch parts := strings.Split(s, ":"); len(parts) {
	case 1:
		return Identifier{Namespace: DefaultNamespace, Selector: parts[0]}, nil
	case 2:
		return Identifier{Namespace: parts[0], Selector: parts[1]}, nil
	default:
		return Identifier{}, ErrInvalidIdentifier
	}
}

// String always renders the extended form, default namespace included.
func (id Identifier) String() string {
	return id.Namespace + ":" + id.Selector
}

// AppendIdentifier appends id as a length-prefixed string.
func AppendIdentifier(dst []byte, id Identifier) []byte {
	return AppendString(dst, id.String())
}

// EncodedLen reports the wire size of id.
func (id Identifier) EncodedLen() int {
	n := len(id.Namespace) + 1 + len(id.Selector)
	return VarIntLen(int32(n)) + n
}

// ReadIdentifier reads and parses a length-prefixed identifier,
// returning the bytes consumed.
func ReadIdentifier(r io.Reader) (Identifier, int, error) {
	s, n, err := ReadString(r)
	if err != nil {
		return Identifier{}, 0, err
	}
	id, err := ParseIdentifier(s)
	return id, n, err
}
