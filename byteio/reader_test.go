package byteio

import (
	"errors"
	"testing"
)

func TestReadUint(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	u8, err := r.ReadUint8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("ReadUint8() = %v, %v", u8, err)
	}
	u16, err := r.ReadUint16()
	if err != nil || u16 != 0x0203 {
		t.Fatalf("ReadUint16() = %v, %v", u16, err)
	}
	if r.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2", r.Remaining())
	}
}

func TestReadUint32InsufficientBytes(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	if _, err := r.ReadUint32(); !errors.Is(err, ErrInsufficientBytes) {
		t.Fatalf("ReadUint32() err = %v, want ErrInsufficientBytes", err)
	}
}

// TestSubAdvancesParentByWindowLength verifies the Byte Reader invariant
// from spec section 3: parent position after a sub-read equals
// start+window_length regardless of how many bytes the sub-reader actually
// consumed.
func TestSubAdvancesParentByWindowLength(t *testing.T) {
	r := New([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	sub, err := r.Sub(4)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if r.Position() != 4 {
		t.Fatalf("parent Position() = %d, want 4", r.Position())
	}
	// Sub-reader only reads one byte; parent position must not reflect that.
	if _, err := sub.ReadUint8(); err != nil {
		t.Fatalf("sub.ReadUint8() error = %v", err)
	}
	if r.Position() != 4 {
		t.Fatalf("parent Position() after sub-read = %d, want 4", r.Position())
	}
	rest, err := r.ReadExact(2)
	if err != nil {
		t.Fatalf("ReadExact() error = %v", err)
	}
	if rest[0] != 0xEE || rest[1] != 0xFF {
		t.Fatalf("ReadExact() = %v, want [EE FF]", rest)
	}
}

func TestSubInsufficientBytes(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	if _, err := r.Sub(3); !errors.Is(err, ErrInsufficientBytes) {
		t.Fatalf("Sub() err = %v, want ErrInsufficientBytes", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03})
	mark := r.Snapshot()
	if _, err := r.ReadExact(2); err != nil {
		t.Fatalf("ReadExact() error = %v", err)
	}
	r.Restore(mark)
	if r.Position() != 0 {
		t.Fatalf("Position() after Restore = %d, want 0", r.Position())
	}
}

func TestEOF(t *testing.T) {
	r := New([]byte{0x01})
	if r.EOF() {
		t.Fatalf("EOF() = true before consuming bytes")
	}
	if _, err := r.ReadUint8(); err != nil {
		t.Fatalf("ReadUint8() error = %v", err)
	}
	if !r.EOF() {
		t.Fatalf("EOF() = false after consuming all bytes")
	}
}
