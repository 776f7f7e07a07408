package view

import "testing"

func TestEventViewDiscriminator8(t *testing.T) {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = byte(i)
	}

	v, err := NewEventView(buf)
	if err != nil {
		t.Fatalf("failed to create event view: %v", err)
	}

	disc := v.Discriminator8()
	for i := 0; i < 8; i++ {
		if disc[i] != byte(i) {
			t.Errorf("discriminator byte %d: expected %d, got %d", i, i, disc[i])
		}
	}

	payload := v.Payload(8)
	if len(payload) != 24 {
		t.Errorf("expected payload length 24, got %d", len(payload))
	}

	if len(v.FullData()) != 32 {
		t.Errorf("expected full data length 32, got %d", len(v.FullData()))
	}
}

func TestEventViewDiscriminator16(t *testing.T) {
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = byte(i)
	}

	v, err := NewEventView(buf)
	if err != nil {
		t.Fatalf("failed to create event view: %v", err)
	}

	disc, ok := v.Discriminator16()
	if !ok {
		t.Fatalf("expected 16-byte discriminator to be available")
	}
	if disc[15] != 15 {
		t.Errorf("expected disc[15] == 15, got %d", disc[15])
	}
}

func TestEventViewShortBuffer(t *testing.T) {
	if _, err := NewEventView([]byte{1, 2, 3}); err != ErrInvalidBuffer {
		t.Fatalf("expected ErrInvalidBuffer, got %v", err)
	}
}

func TestEventViewNoDiscriminator16(t *testing.T) {
	v, err := NewEventView(make([]byte, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.Discriminator16(); ok {
		t.Fatalf("expected no 16-byte discriminator for a 10-byte buffer")
	}
}

func BenchmarkEventViewDiscriminator8(b *testing.B) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, _ := NewEventView(buf)
		_ = v.Discriminator8()
		_ = v.Payload(8)
	}
}
