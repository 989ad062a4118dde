package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarIntStandardValues(t *testing.T) {
	cases := []struct {
		v   int32
		enc []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{2, []byte{0x02}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{25565, []byte{0xdd, 0xc7, 0x01}},
		{2097151, []byte{0xff, 0xff, 0x7f}},
		{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}
	for _, c := range cases {
		got := AppendVarInt(nil, c.v)
		if !bytes.Equal(got, c.enc) {
			t.Fatalf("encode %d: got % x want % x", c.v, got, c.enc)
		}
		if n := VarIntLen(c.v); n != len(c.enc) {
			t.Fatalf("VarIntLen(%d) = %d want %d", c.v, n, len(c.enc))
		}
		v, n, err := DecodeVarInt(c.enc)
		if err != nil {
			t.Fatalf("decode % x: %v", c.enc, err)
		}
		if v != c.v || n != len(c.enc) {
			t.Fatalf("decode % x: got (%d, %d) want (%d, %d)", c.enc, v, n, c.v, len(c.enc))
		}
		rv, rn, err := ReadVarInt(bytes.NewReader(c.enc))
		if err != nil || rv != c.v || rn != len(c.enc) {
			t.Fatalf("read % x: got (%d, %d, %v)", c.enc, rv, rn, err)
		}
	}
}

func TestVarLongStandardValues(t *testing.T) {
	cases := []struct {
		v   int64
		enc []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{9223372036854775807, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
		{-9223372036854775808, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
	}
	for _, c := range cases {
		got := AppendVarLong(nil, c.v)
		if !bytes.Equal(got, c.enc) {
			t.Fatalf("encode %d: got % x want % x", c.v, got, c.enc)
		}
		v, n, err := DecodeVarLong(c.enc)
		if err != nil || v != c.v || n != len(c.enc) {
			t.Fatalf("decode % x: got (%d, %d, %v)", c.enc, v, n, err)
		}
		rv, _, err := ReadVarLong(bytes.NewReader(c.enc))
		if err != nil || rv != c.v {
			t.Fatalf("read % x: got (%d, %v)", c.enc, rv, err)
		}
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, 64, 127, 128, 16383, 16384,
		2097151, 2097152, 268435455, 268435456,
		2147483647, -2147483648, -25565}
	for _, v := range values {
		enc := AppendVarInt(nil, v)
		// Minimality: the final group never encodes as a bare zero
		// continuation of an earlier group.
		if len(enc) > 1 && enc[len(enc)-1] == 0x00 {
			t.Fatalf("encode %d: superfluous trailing zero group in % x", v, enc)
		}
		got, n, err := DecodeVarInt(enc)
		if err != nil || got != v || n != len(enc) {
			t.Fatalf("round trip %d: got (%d, %d, %v)", v, got, n, err)
		}
	}
}

func TestVarIntErrors(t *testing.T) {
	// Truncated mid-sequence.
	if _, _, err := DecodeVarInt([]byte{0x80, 0x80}); !errors.Is(err, ErrMissingData) {
		t.Fatalf("truncated: got %v want ErrMissingData", err)
	}
	if _, _, err := DecodeVarInt(nil); !errors.Is(err, ErrMissingData) {
		t.Fatalf("empty: got %v want ErrMissingData", err)
	}
	// Six groups is always too long for 32 bits.
	if _, _, err := DecodeVarInt([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}); !errors.Is(err, ErrIntTooLong) {
		t.Fatalf("six groups: got %v want ErrIntTooLong", err)
	}
	// Fifth group with bits above the valid low four.
	if _, _, err := DecodeVarInt([]byte{0xff, 0xff, 0xff, 0xff, 0x10}); !errors.Is(err, ErrIntTooLong) {
		t.Fatalf("overflow bits: got %v want ErrIntTooLong", err)
	}
	if _, _, err := DecodeVarLong([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x80}); !errors.Is(err, ErrIntTooLong) {
		t.Fatalf("varlong overflow: got %v want ErrIntTooLong", err)
	}
	// The tenth group holds a single data bit; anything above it is lost
	// precision, not a value.
	if _, _, err := DecodeVarLong([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}); !errors.Is(err, ErrIntTooLong) {
		t.Fatalf("varlong stray bits: got %v want ErrIntTooLong", err)
	}
	if _, _, err := ReadVarInt(bytes.NewReader([]byte{0x80})); !errors.Is(err, ErrMissingData) {
		t.Fatalf("reader truncated: got %v want ErrMissingData", err)
	}
}
