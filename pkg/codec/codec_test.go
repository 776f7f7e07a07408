package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadU64LE(t *testing.T) {
	data := []byte{0x00, 0xcf, 0x4e, 0x37, 0x9e, 0x02, 0x00, 0x00, 0xff}
	v, err := ReadU64LE(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2_878_556_000_000 {
		t.Fatalf("got %d, want 2878556000000", v)
	}
}

func TestReadU64LETruncated(t *testing.T) {
	_, err := ReadU64LE([]byte{1, 2, 3})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadString(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{5, 0, 0, 0})
	buf.WriteString("hello")
	buf.WriteString("trailing")

	s, rest, err := ReadString(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want hello", s)
	}
	if string(rest) != "trailing" {
		t.Fatalf("got rest %q, want trailing", rest)
	}
}

func TestReadStringTruncated(t *testing.T) {
	_, _, err := ReadString([]byte{10, 0, 0, 0, 'a', 'b'})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeBase64(t *testing.T) {
	// "AAAAAAAAAAA=" decodes to 8 zero bytes.
	b, err := DecodeBase64("AAAAAAAAAAA=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 8 {
		t.Fatalf("got len %d, want 8", len(b))
	}
}

func TestHexPrefix(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	if got := HexPrefix(data, 2); got != "dead" {
		t.Fatalf("got %q, want dead", got)
	}
	if got := HexPrefix(data, 10); got != "deadbeef" {
		t.Fatalf("got %q, want deadbeef", got)
	}
}
