// Package view provides zero-copy peeking at event-payload discriminators,
// avoiding an allocation for the common case where the caller only needs to
// check a discriminator before deciding whether to decode the rest.
package view

import (
	"errors"
)

// ErrInvalidBuffer is returned when a buffer is too short to hold even a
// discriminator.
var ErrInvalidBuffer = errors.New("view: invalid buffer size")

// EventView wraps a byte buffer without copying it, exposing its
// discriminator prefix and payload slice.
type EventView struct {
	buffer []byte
}

// NewEventView wraps buffer. It requires at least 8 bytes, the shortest
// discriminator this decoder recognizes.
func NewEventView(buffer []byte) (*EventView, error) {
	if len(buffer) < 8 {
		return nil, ErrInvalidBuffer
	}
	return &EventView{buffer: buffer}, nil
}

// Discriminator8 returns the first 8 bytes of the buffer, used for
// instruction discriminators.
func (v *EventView) Discriminator8() [8]byte {
	var d [8]byte
	copy(d[:], v.buffer[:8])
	return d
}

// Discriminator16 returns the first 16 bytes of the buffer, or false if the
// buffer is shorter than that, used for inner-instruction/log
// discriminators.
func (v *EventView) Discriminator16() ([16]byte, bool) {
	var d [16]byte
	if len(v.buffer) < 16 {
		return d, false
	}
	copy(d[:], v.buffer[:16])
	return d, true
}

// Payload returns the buffer past the given header length, or nil if the
// buffer is not longer than that.
func (v *EventView) Payload(headerLen int) []byte {
	if len(v.buffer) <= headerLen {
		return nil
	}
	return v.buffer[headerLen:]
}

// FullData returns the whole wrapped buffer.
func (v *EventView) FullData() []byte {
	return v.buffer
}
