package sim

import (
	"bytes"
	"testing"
)

func TestInputByteRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		in := DecodeInputByte(byte(b))
		got := EncodeInputByte(in)
		// Only the low 4 bits are defined; reserved bits must not survive.
		if got != byte(b)&0x0f {
			t.Errorf("byte %#x: round trip = %#x, want %#x", b, got, byte(b)&0x0f)
		}
	}
}

func TestDecodeInputByteBitLayout(t *testing.T) {
	in := DecodeInputByte(0x0b) // 0b1011: left, right, fire
	if !in.Left || !in.Right || in.Thrust || !in.Fire {
		t.Errorf("DecodeInputByte(0x0b) = %+v, want Left,Right,Fire set and Thrust clear", in)
	}
}

func TestTapeRoundTrip(t *testing.T) {
	original := Tape{
		Header: TapeHeader{
			Seed:     0x1234,
			Claimant: []byte("GABCD1234"),
		},
		Inputs: []byte{0x00, 0x01, 0x08, 0x04, 0x0f},
		Footer: TapeFooter{
			FinalScore:    4200,
			FinalRNGState: 0xCAFEBABE,
			RulesDigest:   RulesDigest,
		},
	}

	var buf bytes.Buffer
	if err := WriteTape(&buf, original); err != nil {
		t.Fatalf("WriteTape: %v", err)
	}

	got, err := ReadTape(&buf)
	if err != nil {
		t.Fatalf("ReadTape: %v", err)
	}

	if got.Header.Seed != original.Header.Seed {
		t.Errorf("seed = %#x, want %#x", got.Header.Seed, original.Header.Seed)
	}
	if !bytes.Equal(got.Header.Claimant, original.Header.Claimant) {
		t.Errorf("claimant = %q, want %q", got.Header.Claimant, original.Header.Claimant)
	}
	if !bytes.Equal(got.Inputs, original.Inputs) {
		t.Errorf("inputs = %v, want %v", got.Inputs, original.Inputs)
	}
	if got.Footer != original.Footer {
		t.Errorf("footer = %+v, want %+v", got.Footer, original.Footer)
	}
}

func TestReadTapeRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 0, 0})
	if _, err := ReadTape(buf); err == nil {
		t.Fatal("expected error for bad magic, got nil")
	}
}

func TestReadTapeRejectsTruncatedBody(t *testing.T) {
	var buf bytes.Buffer
	full := Tape{Header: TapeHeader{Seed: 1}, Inputs: []byte{1, 2, 3, 4, 5}}
	if err := WriteTape(&buf, full); err != nil {
		t.Fatalf("WriteTape: %v", err)
	}
	// Drop the 12-byte footer and the last 2 body bytes.
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-14])
	if _, err := ReadTape(truncated); err == nil {
		t.Fatal("expected error reading truncated tape, got nil")
	}
}
