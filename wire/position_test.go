package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestPositionPackVectors(t *testing.T) {
	cases := []struct {
		p   Position
		enc []byte
	}{
		// Reference vector from the protocol documentation.
		{Position{X: 18357644, Y: 831, Z: -20882616},
			[]byte{0x46, 0x07, 0x63, 0x2c, 0x15, 0xb4, 0x83, 0x3f}},
		{Position{},
			[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{Position{X: -1, Y: -1, Z: -1},
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		// Field maxima: 2^25-1 for x/z, 2^11-1 for y.
		{Position{X: 33554431, Y: 2047, Z: 33554431},
			[]byte{0x7f, 0xff, 0xff, 0xdf, 0xff, 0xff, 0xf7, 0xff}},
		// Field minima: -2^25 for x/z, -2^11 for y.
		{Position{X: -33554432, Y: -2048, Z: -33554432},
			[]byte{0x80, 0x00, 0x00, 0x20, 0x00, 0x00, 0x08, 0x00}},
		{Position{X: 100, Y: -64, Z: -200},
			[]byte{0x00, 0x00, 0x19, 0x3f, 0xff, 0xf3, 0x8f, 0xc0}},
	}
	for _, c := range cases {
		got := AppendPosition(nil, c.p)
		if !bytes.Equal(got, c.enc) {
			t.Fatalf("encode %v: got % x want % x", c.p, got, c.enc)
		}
		p, n, err := DecodePosition(c.enc)
		if err != nil || n != 8 {
			t.Fatalf("decode % x: n=%d err=%v", c.enc, n, err)
		}
		if p != c.p {
			t.Fatalf("decode % x: got %v want %v", c.enc, p, c.p)
		}
		rp, err := ReadPosition(bytes.NewReader(c.enc))
		if err != nil || rp != c.p {
			t.Fatalf("read % x: got %v err=%v", c.enc, rp, err)
		}
	}
}

func TestPositionShortInput(t *testing.T) {
	if _, _, err := DecodePosition(make([]byte, 7)); !errors.Is(err, ErrMissingData) {
		t.Fatalf("short decode: got %v want ErrMissingData", err)
	}
	if _, err := ReadPosition(bytes.NewReader(make([]byte, 3))); !errors.Is(err, ErrMissingData) {
		t.Fatalf("short read: got %v want ErrMissingData", err)
	}
}
