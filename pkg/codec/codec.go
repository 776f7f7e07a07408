// Package codec provides the primitive byte-level decoders the rest of the
// carbon decoder builds on: little-endian integers, length-prefixed strings,
// public keys, and the base58/base64/hex encodings Solana programs use on
// the wire.
//
// Every function here is total: truncated or malformed input returns an
// explicit error rather than panicking. On-chain data routinely contains
// bytes from programs this decoder doesn't understand, and a panic there
// would take down the whole transaction instead of just that one event.
package codec

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrTruncated is wrapped into errors returned when the input is shorter
// than the field being decoded requires.
var ErrTruncated = fmt.Errorf("codec: truncated input")

func truncated(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, have)
}

// ReadU8 reads a single byte at offset 0.
func ReadU8(data []byte) (uint8, error) {
	if len(data) < 1 {
		return 0, truncated(1, len(data))
	}
	return data[0], nil
}

// ReadU16LE reads a little-endian uint16 from the start of data.
func ReadU16LE(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, truncated(2, len(data))
	}
	return binary.LittleEndian.Uint16(data[:2]), nil
}

// ReadU32LE reads a little-endian uint32 from the start of data.
func ReadU32LE(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, truncated(4, len(data))
	}
	return binary.LittleEndian.Uint32(data[:4]), nil
}

// ReadU64LE reads a little-endian uint64 from the start of data.
func ReadU64LE(data []byte) (uint64, error) {
	if len(data) < 8 {
		return 0, truncated(8, len(data))
	}
	return binary.LittleEndian.Uint64(data[:8]), nil
}

// ReadI64LE reads a little-endian int64 from the start of data.
func ReadI64LE(data []byte) (int64, error) {
	v, err := ReadU64LE(data)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReadPubkey reads a 32-byte public key from the start of data.
func ReadPubkey(data []byte) (solana.PublicKey, error) {
	if len(data) < 32 {
		return solana.PublicKey{}, truncated(32, len(data))
	}
	var pk solana.PublicKey
	copy(pk[:], data[:32])
	return pk, nil
}

// ReadString reads a 4-byte-length-prefixed UTF-8 string. Invalid UTF-8
// sequences are replaced rather than rejected, matching the lossy behavior
// Borsh string fields get when a program writes non-UTF-8 bytes into what is
// declared as a string.
func ReadString(data []byte) (string, []byte, error) {
	n, err := ReadU32LE(data)
	if err != nil {
		return "", nil, err
	}
	rest := data[4:]
	if uint32(len(rest)) < n {
		return "", nil, truncated(int(n), len(rest))
	}
	raw := rest[:n]
	if !utf8.Valid(raw) {
		raw = []byte(strings.ToValidUTF8(string(raw), "�"))
	}
	return string(raw), rest[n:], nil
}

// DecodeBase58 decodes a base58-encoded byte string.
func DecodeBase58(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("codec: base58 decode: %w", err)
	}
	return b, nil
}

// DecodeBase64 decodes a standard-alphabet base64 string, as used by
// "Program data: " log lines.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("codec: base64 decode: %w", err)
	}
	return b, nil
}

// HexPrefix returns the hex encoding of the first n bytes of data, or the
// hex encoding of all of data if it is shorter than n.
func HexPrefix(data []byte, n int) string {
	if len(data) < n {
		n = len(data)
	}
	return hex.EncodeToString(data[:n])
}
