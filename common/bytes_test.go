package common

import (
	"bytes"
	"testing"
)

func TestSliceToBytesFloat32(t *testing.T) {
	data := []float32{1.0}
	b := SliceToBytes(data)

	if len(b) != 4 {
		t.Fatalf("got %d bytes, want 4", len(b))
	}
	// 1.0 is 0x3F800000 little-endian.
	if !bytes.Equal(b, []byte{0x00, 0x00, 0x80, 0x3F}) {
		t.Errorf("got % X, want 00 00 80 3F", b)
	}
}

func TestSliceToBytesUint16(t *testing.T) {
	data := []uint16{0, 1, 2}
	b := SliceToBytes(data)

	if len(b) != 6 {
		t.Fatalf("got %d bytes, want 6", len(b))
	}
	if !bytes.Equal(b, []byte{0, 0, 1, 0, 2, 0}) {
		t.Errorf("got % X, want 00 00 01 00 02 00", b)
	}
}

func TestSliceToBytesSharesMemory(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)

	data[0] = 0
	if b[3] != 0 {
		t.Error("byte view did not reflect mutation of the source slice")
	}
}

func TestSliceToBytesEmpty(t *testing.T) {
	if b := SliceToBytes([]float32{}); b != nil {
		t.Errorf("got %v, want nil for empty input", b)
	}
}
