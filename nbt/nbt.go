// Package nbt reads and writes the named binary tag format: a
// recursive tree of twelve payload kinds plus a terminator, used for
// structured payloads on the wire and in world data.
//
// The tree is strictly a tree. Children are owned by their parent and
// no back-references exist, so values can be copied and compared
// structurally. Decoding guards recursion depth against hostile
// deeply-nested input.
package nbt

import (
	"errors"
	"io"
	"unicode/utf8"

	"craftwire.dev/wire"
)

var (
	// ErrInvalidHeader means a full tree did not begin with a Compound.
	ErrInvalidHeader = errors.New("nbt: stream does not start with a compound")
	// ErrInvalidType means an unrecognized tag-type byte was read.
	ErrInvalidType = errors.New("nbt: invalid tag type")
	// ErrInvalidRoot means an encode was attempted on a non-Compound root.
	ErrInvalidRoot = errors.New("nbt: root tag must be a compound")
	// ErrTooDeep means the tree nests beyond MaxDepth.
	ErrTooDeep = errors.New("nbt: tree nested too deeply")
)

// MaxDepth bounds List/Compound nesting during decode and encode.
const MaxDepth = 512

// TagType identifies the payload kind of a tag.
type TagType byte

const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagNames = [...]string{
	"TAG_End", "TAG_Byte", "TAG_Short", "TAG_Int", "TAG_Long",
	"TAG_Float", "TAG_Double", "TAG_Byte_Array", "TAG_String",
	"TAG_List", "TAG_Compound", "TAG_Int_Array", "TAG_Long_Array",
}

func (t TagType) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "TAG_Invalid"
}

// Tag is one node of the tree.
type Tag interface {
	Type() TagType
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	String    string
	IntArray  []int32
	LongArray []int64
)

func (Byte) Type() TagType      { return TagByte }
func (Short) Type() TagType     { return TagShort }
func (Int) Type() TagType       { return TagInt }
func (Long) Type() TagType      { return TagLong }
func (Float) Type() TagType     { return TagFloat }
func (Double) Type() TagType    { return TagDouble }
func (ByteArray) Type() TagType { return TagByteArray }
func (String) Type() TagType    { return TagString }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }

// List holds same-kind elements without per-element type or name
// prefixes. An empty list still declares an element kind so it
// round-trips byte for byte.
type List struct {
	Elem  TagType
	Items []Tag
}

func (List) Type() TagType { return TagList }

// Named is one (name, tag) entry of a compound.
type Named struct {
	Name string
	Tag  Tag
}

// Compound is an ordered sequence of named entries, terminated on the
// wire by TagEnd.
type Compound []Named

func (Compound) Type() TagType { return TagCompound }

// Get returns the first entry with the given name.
func (c Compound) Get(name string) (Tag, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Tag, true
		}
	}
	return nil, false
}

// Read decodes a full tree from r. The stream must begin with the
// Compound type id; anything else is ErrInvalidHeader.
func Read(r io.Reader) (Named, error) {
	t, err := wire.ReadUint8(r)
	if err != nil {
		return Named{}, err
	}
	if TagType(t) != TagCompound {
		return Named{}, ErrInvalidHeader
	}
	name, err := readName(r)
	if err != nil {
		return Named{}, err
	}
	body, err := readPayload(r, TagCompound, 0)
	if err != nil {
		return Named{}, err
	}
	return Named{Name: name, Tag: body}, nil
}

// Marshal encodes a full tree. The root must be a Compound; any other
// kind is ErrInvalidRoot.
func Marshal(root Named) ([]byte, error) {
	if _, ok := root.Tag.(Compound); !ok {
		return nil, ErrInvalidRoot
	}
	dst := []byte{byte(TagCompound)}
	dst = appendName(dst, root.Name)
	return appendPayload(dst, root.Tag, 0)
}

// Names are prefixed by an unsigned 16-bit byte count.

func readName(r io.Reader) (string, error) {
	size, err := wire.ReadUint16(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return "", wire.ErrMissingData
		}
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", wire.ErrInvalidString
	}
	return string(buf), nil
}

func appendName(dst []byte, name string) []byte {
	dst = wire.AppendUint16(dst, uint16(len(name)))
	return append(dst, name...)
}

func readPayload(r io.Reader, t TagType, depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	switch t {
	case TagByte:
		v, err := wire.ReadInt8(r)
		return Byte(v), err
	case TagShort:
		v, err := wire.ReadInt16(r)
		return Short(v), err
	case TagInt:
		v, err := wire.ReadInt32(r)
		return Int(v), err
	case TagLong:
		v, err := wire.ReadInt64(r)
		return Long(v), err
	case TagFloat:
		v, err := wire.ReadFloat32(r)
		return Float(v), err
	case TagDouble:
		v, err := wire.ReadFloat64(r)
		return Double(v), err
	case TagByteArray:
		size, err := wire.ReadInt32(r)
		if err != nil {
			return nil, err
		}
		var arr ByteArray
		for i := int32(0); i < size; i++ {
			v, err := wire.ReadInt8(r)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case TagString:
		s, err := readName(r)
		return String(s), err
	case TagList:
		elem, err := wire.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		if TagType(elem) > TagLongArray {
			return nil, ErrInvalidType
		}
		size, err := wire.ReadInt32(r)
		if err != nil {
			return nil, err
		}
		// A count below one is an empty list, not an error; the
		// declared element kind is preserved for round-trips.
		list := List{Elem: TagType(elem)}
		for i := int32(0); i < size; i++ {
			item, err := readPayload(r, list.Elem, depth+1)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	case TagCompound:
		var c Compound
		for {
			entryType, err := wire.ReadUint8(r)
			if err != nil {
				return nil, err
			}
			if TagType(entryType) == TagEnd {
				return c, nil
			}
			if TagType(entryType) > TagLongArray {
				return nil, ErrInvalidType
			}
			name, err := readName(r)
			if err != nil {
				return nil, err
			}
			body, err := readPayload(r, TagType(entryType), depth+1)
			if err != nil {
				return nil, err
			}
			c = append(c, Named{Name: name, Tag: body})
		}
	case TagIntArray:
		size, err := wire.ReadInt32(r)
		if err != nil {
			return nil, err
		}
		var arr IntArray
		for i := int32(0); i < size; i++ {
			v, err := wire.ReadInt32(r)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case TagLongArray:
		size, err := wire.ReadInt32(r)
		if err != nil {
			return nil, err
		}
		var arr LongArray
		for i := int32(0); i < size; i++ {
			v, err := wire.ReadInt64(r)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	default:
		return nil, ErrInvalidType
	}
}

func appendPayload(dst []byte, tag Tag, depth int) ([]byte, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	switch v := tag.(type) {
	case Byte:
		return wire.AppendInt8(dst, int8(v)), nil
	case Short:
		return wire.AppendInt16(dst, int16(v)), nil
	case Int:
		return wire.AppendInt32(dst, int32(v)), nil
	case Long:
		return wire.AppendInt64(dst, int64(v)), nil
	case Float:
		return wire.AppendFloat32(dst, float32(v)), nil
	case Double:
		return wire.AppendFloat64(dst, float64(v)), nil
	case ByteArray:
		dst = wire.AppendInt32(dst, int32(len(v)))
		for _, b := range v {
			dst = wire.AppendInt8(dst, b)
		}
		return dst, nil
	case String:
		return appendName(dst, string(v)), nil
	case List:
		dst = append(dst, byte(v.Elem))
		dst = wire.AppendInt32(dst, int32(len(v.Items)))
		var err error
		for _, item := range v.Items {
			if item.Type() != v.Elem {
				return nil, ErrInvalidType
			}
			if dst, err = appendPayload(dst, item, depth+1); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case Compound:
		var err error
		for _, e := range v {
			dst = append(dst, byte(e.Tag.Type()))
			dst = appendName(dst, e.Name)
			if dst, err = appendPayload(dst, e.Tag, depth+1); err != nil {
				return nil, err
			}
		}
		return append(dst, byte(TagEnd)), nil
	case IntArray:
		dst = wire.AppendInt32(dst, int32(len(v)))
		for _, n := range v {
			dst = wire.AppendInt32(dst, n)
		}
		return dst, nil
	case LongArray:
		dst = wire.AppendInt32(dst, int32(len(v)))
		for _, n := range v {
			dst = wire.AppendInt64(dst, n)
		}
		return dst, nil
	default:
		return nil, ErrInvalidType
	}
}
