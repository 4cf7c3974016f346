package wfb

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Header is the 256-byte WaveFrontFileHeader at the start of every .wfb
// file. Unlike the packed records below it, every field here is a plain
// little-endian integer or fixed-length string, so it round-trips
// through encoding/binary directly rather than the bit packer.
type Header struct {
	SynthName [NameLength]byte
	FileType  [NameLength]byte
	Version   uint16
	ProgramCount uint16
	DrumkitCount uint16
	PatchCount   uint16
	SampleCount  uint16
	EffectsCount uint16

	ProgramOffset uint32
	DrumkitOffset uint32
	PatchOffset   uint32
	SampleOffset  uint32
	EffectsOffset uint32

	MemoryRequired uint32

	EmbeddedSamples int16
	_               int16

	Comment  [MaxComment]byte
	Reserved [headerReservedSize]byte
}

func newHeader(synthName string) Header {
	var h Header
	copy(h.SynthName[:], synthName)
	copy(h.FileType[:], "Bank")
	h.Version = Version
	return h
}

func (h Header) marshal() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func unmarshalHeader(data []byte) (Header, error) {
	var h Header
	if len(data) != headerSize {
		return h, fmt.Errorf("header: expected %d bytes, got %d", headerSize, len(data))
	}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		return h, fmt.Errorf("header: %w", err)
	}
	return h, nil
}

func (h Header) synthNameString() string { return nameFromBytes(h.SynthName[:]) }
func (h Header) fileTypeString() string  { return nameFromBytes(h.FileType[:]) }

func nameFromBytes(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
