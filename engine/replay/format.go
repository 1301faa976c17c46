package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// magic opens every replay stream, followed by a version byte
var magic = [4]byte{'O', 'B', 'R', 'P'}

const version uint8 = 1

// ErrBadHeader means the stream is not a replay this build can read
var ErrBadHeader = errors.New("not an orbital bus replay")

const (
	flagThrust uint8 = 1 << iota
	flagBrake
	flagPrimary
)

// Frame is one simulated tick: the timestep and the controls it ran on
type Frame struct {
	Level   int
	Tick    uint64
	Dt      float64
	Thrust  bool
	Brake   bool
	Primary bool
}

func (f Frame) flags() uint8 {
	var b uint8
	if f.Thrust {
		b |= flagThrust
	}
	if f.Brake {
		b |= flagBrake
	}
	if f.Primary {
		b |= flagPrimary
	}
	return b
}

// Encode writes a frame in little-endian binary
func (f *Frame) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(f.Level)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, f.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, math.Float64bits(f.Dt)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, f.flags())
}

// Decode reads a frame written by Encode. A clean end of stream is io.EOF;
// a frame cut short is io.ErrUnexpectedEOF.
func (f *Frame) Decode(r io.Reader) error {
	var lvl int32
	if err := binary.Read(r, binary.LittleEndian, &lvl); err != nil {
		return err
	}
	var bits uint64
	var flags uint8
	for _, v := range []any{&f.Tick, &bits, &flags} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	f.Level = int(lvl)
	f.Dt = math.Float64frombits(bits)
	f.Thrust = flags&flagThrust != 0
	f.Brake = flags&flagBrake != 0
	f.Primary = flags&flagPrimary != 0
	return nil
}

func writeHeader(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, version)
}

func readHeader(r io.Reader) error {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if [4]byte(hdr[:4]) != magic {
		return ErrBadHeader
	}
	if hdr[4] != version {
		return fmt.Errorf("%w: version %d", ErrBadHeader, hdr[4])
	}
	return nil
}
