package sim

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// FrameInput is the decoded form of one frame's input byte: bit0=left,
// bit1=right, bit2=thrust, bit3=fire. Bits 4-7 are reserved and must be
// zero; DecodeInputByte ignores them rather than rejecting the byte, since
// a future reserved bit is additive, not a version break.
type FrameInput struct {
	Left, Right, Thrust, Fire bool
}

// DecodeInputByte turns one tape byte into a FrameInput.
func DecodeInputByte(b byte) FrameInput {
	return FrameInput{
		Left:   b&0x01 != 0,
		Right:  b&0x02 != 0,
		Thrust: b&0x04 != 0,
		Fire:   b&0x08 != 0,
	}
}

// EncodeInputByte is the inverse of DecodeInputByte.
func EncodeInputByte(in FrameInput) byte {
	var b byte
	if in.Left {
		b |= 0x01
	}
	if in.Right {
		b |= 0x02
	}
	if in.Thrust {
		b |= 0x04
	}
	if in.Fire {
		b |= 0x08
	}
	return b
}

// tapeMagic identifies a tape file; tapeVersion is bumped whenever the
// on-disk framing itself (not the gameplay rules) changes shape.
const (
	tapeMagic   uint32 = 0x41535442 // "ASTB"
	tapeVersion uint16 = 1
)

// TapeHeader is the portion of a tape file that precedes the input bytes.
type TapeHeader struct {
	Seed               uint32
	DeclaredFrameCount uint32
	Claimant           []byte
}

// TapeFooter is the portion of a tape file that follows the input bytes,
// binding the tape to the replay outcome it claims to produce.
type TapeFooter struct {
	FinalScore    uint32
	FinalRNGState uint32
	RulesDigest   uint32
}

// Tape is a fully-parsed on-disk tape: header, raw per-frame input bytes,
// and footer. The core only ever consumes Header.Seed and Inputs; Footer
// and Header.Claimant exist purely for interoperability with the external
// prover and on-chain verifier that consume a replay's result, neither of
// which this core implements.
type Tape struct {
	Header TapeHeader
	Inputs []byte
	Footer TapeFooter
}

// WriteTape serializes t in the on-disk layout: magic, version, header,
// body, footer. It is provided so the cmd/replay driver (and tests) can
// round-trip a tape without hand-rolling the byte layout twice.
func WriteTape(w io.Writer, t Tape) error {
	if err := binary.Write(w, binary.BigEndian, tapeMagic); err != nil {
		return errors.Wrap(err, "write tape magic")
	}
	if err := binary.Write(w, binary.BigEndian, tapeVersion); err != nil {
		return errors.Wrap(err, "write tape version")
	}
	if err := binary.Write(w, binary.BigEndian, t.Header.Seed); err != nil {
		return errors.Wrap(err, "write tape seed")
	}
	declared := uint32(len(t.Inputs))
	if err := binary.Write(w, binary.BigEndian, declared); err != nil {
		return errors.Wrap(err, "write declared frame count")
	}
	claimantLen := uint32(len(t.Header.Claimant))
	if err := binary.Write(w, binary.BigEndian, claimantLen); err != nil {
		return errors.Wrap(err, "write claimant length")
	}
	if _, err := w.Write(t.Header.Claimant); err != nil {
		return errors.Wrap(err, "write claimant bytes")
	}
	if _, err := w.Write(t.Inputs); err != nil {
		return errors.Wrap(err, "write tape body")
	}
	if err := binary.Write(w, binary.BigEndian, t.Footer.FinalScore); err != nil {
		return errors.Wrap(err, "write final score")
	}
	if err := binary.Write(w, binary.BigEndian, t.Footer.FinalRNGState); err != nil {
		return errors.Wrap(err, "write final rng state")
	}
	if err := binary.Write(w, binary.BigEndian, t.Footer.RulesDigest); err != nil {
		return errors.Wrap(err, "write rules digest")
	}
	return nil
}

// ReadTape parses the on-disk layout WriteTape produces. It rejects a
// magic/version mismatch and a declared frame count that doesn't match the
// body length it actually managed to read, but otherwise does no gameplay
// validation — that is strict replay's job, not the codec's.
func ReadTape(r io.Reader) (Tape, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return Tape{}, errors.Wrap(err, "read tape magic")
	}
	if magic != tapeMagic {
		return Tape{}, errors.Errorf("bad tape magic: got %#x, want %#x", magic, tapeMagic)
	}

	var version uint16
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return Tape{}, errors.Wrap(err, "read tape version")
	}
	if version != tapeVersion {
		return Tape{}, errors.Errorf("unsupported tape version %d", version)
	}

	var t Tape
	if err := binary.Read(r, binary.BigEndian, &t.Header.Seed); err != nil {
		return Tape{}, errors.Wrap(err, "read tape seed")
	}
	var declared uint32
	if err := binary.Read(r, binary.BigEndian, &declared); err != nil {
		return Tape{}, errors.Wrap(err, "read declared frame count")
	}
	t.Header.DeclaredFrameCount = declared

	var claimantLen uint32
	if err := binary.Read(r, binary.BigEndian, &claimantLen); err != nil {
		return Tape{}, errors.Wrap(err, "read claimant length")
	}
	t.Header.Claimant = make([]byte, claimantLen)
	if _, err := io.ReadFull(r, t.Header.Claimant); err != nil {
		return Tape{}, errors.Wrap(err, "read claimant bytes")
	}

	t.Inputs = make([]byte, declared)
	if _, err := io.ReadFull(r, t.Inputs); err != nil {
		return Tape{}, errors.Wrap(err, "read tape body")
	}
	if uint32(len(t.Inputs)) != t.Header.DeclaredFrameCount {
		return Tape{}, errors.Errorf("tape body length %d does not match declared frame count %d", len(t.Inputs), t.Header.DeclaredFrameCount)
	}

	if err := binary.Read(r, binary.BigEndian, &t.Footer.FinalScore); err != nil {
		return Tape{}, errors.Wrap(err, "read final score")
	}
	if err := binary.Read(r, binary.BigEndian, &t.Footer.FinalRNGState); err != nil {
		return Tape{}, errors.Wrap(err, "read final rng state")
	}
	if err := binary.Read(r, binary.BigEndian, &t.Footer.RulesDigest); err != nil {
		return Tape{}, errors.Wrap(err, "read rules digest")
	}

	return t, nil
}
