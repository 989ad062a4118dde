package packet

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"

	"craftwire.dev/wire"
)

const (
	// CompressionOff disables the compression sublayer entirely.
	CompressionOff int32 = -1

	// MaxFrameSize bounds the on-wire body of one frame.
	MaxFrameSize = 1<<21 - 1

	// MaxInflatedSize bounds the declared size of a compressed body.
	MaxInflatedSize = 1 << 23
)

// AppendFrame frames an encoded packet body onto dst. With the
// threshold off the body travels raw behind its length. With a
// threshold armed, bodies below it carry a zero marker and stay raw;
// bodies at or above it are zlib-deflated behind a marker holding the
// true inflated size.
func AppendFrame(dst []byte, body []byte, threshold int32) ([]byte, error) {
	if threshold < 0 {
		if len(body) > MaxFrameSize {
			return nil, ErrBadFrame
		}
		dst = wire.AppendVarInt(dst, int32(len(body)))
		return append(dst, body...), nil
	}
	if len(body) < int(threshold) {
		if len(body)+1 > MaxFrameSize {
			return nil, ErrBadFrame
		}
		dst = wire.AppendVarInt(dst, int32(len(body))+1)
		dst = append(dst, 0x00)
		return append(dst, body...), nil
	}
	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	inner := wire.VarIntLen(int32(len(body))) + deflated.Len()
	if inner > MaxFrameSize {
		return nil, ErrBadFrame
	}
	dst = wire.AppendVarInt(dst, int32(inner))
	dst = wire.AppendVarInt(dst, int32(len(body)))
	return append(dst, deflated.Bytes()...), nil
}

// ReadFrame reads one frame from r and returns the packet body. A
// stream that ends cleanly between frames reports io.EOF; a stream
// that ends inside a frame reports wire.ErrMissingData.
func ReadFrame(r io.Reader, threshold int32) ([]byte, error) {
	size, err := readFrameLen(r)
	if err != nil {
		return nil, err
	}
	if size < 0 || size > MaxFrameSize {
		return nil, ErrBadFrame
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, wire.ErrMissingData
		}
		return nil, err
	}
	if threshold < 0 {
		return buf, nil
	}

	inflated, n, err := wire.DecodeVarInt(buf)
	if err != nil {
		return nil, err
	}
	rest := buf[n:]
	if inflated == 0 {
		return rest, nil
	}
	if inflated < 0 || inflated > MaxInflatedSize {
		return nil, ErrBadFrame
	}
	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, ErrBadFrame
	}
	defer zr.Close()
	body := make([]byte, inflated)
	if _, err := io.ReadFull(zr, body); err != nil {
		return nil, ErrBadFrame
	}
	// The marker must state the exact inflated size.
	if extra, _ := io.Copy(io.Discard, zr); extra != 0 {
		return nil, ErrBadFrame
	}
	return body, nil
}

// readFrameLen reads the leading length varint byte by byte so a
// clean close before the first byte can surface as io.EOF.
func readFrameLen(r io.Reader) (int32, error) {
	var v uint32
	var b [1]byte
	for i := 0; i < wire.MaxVarIntLen; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			if errors.Is(err, io.EOF) && i == 0 {
				return 0, io.EOF
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, wire.ErrMissingData
			}
			return 0, err
		}
		c := b[0]
		v |= uint32(c&0x7f) << (7 * i)
		if i == wire.MaxVarIntLen-1 && c&0xf0 != 0 {
			return 0, wire.ErrIntTooLong
		}
		if c&0x80 == 0 {
			return int32(v), nil
		}
	}
	return 0, wire.ErrIntTooLong
}
