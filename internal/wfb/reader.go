package wfb

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Read parses a complete .wfb stream. A version mismatch is advisory
// only (spec.md §4.7): it's recorded in Bank.Warnings rather than
// failing the read.
func Read(r io.ReadSeeker) (*Bank, error) {
	headerBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	h, err := unmarshalHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	b := &Bank{Header: h, Device: h.synthNameString(), Comment: nameFromBytes(h.Comment[:])}
	if h.Version != Version {
		b.Warnings = append(b.Warnings, fmt.Sprintf("version mismatch: file is %d, reader expects %d", h.Version, Version))
	}

	if h.ProgramCount > 0 {
		if _, err := r.Seek(int64(h.ProgramOffset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking to programs: %w", err)
		}
		buf := make([]byte, programSize)
		for i := 0; i < int(h.ProgramCount); i++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("program %d: %w", i, err)
			}
			b.Programs = append(b.Programs, unmarshalProgram(newBitReader(buf)))
		}
	}

	if h.DrumkitCount > 0 {
		if _, err := r.Seek(int64(h.DrumkitOffset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking to drumkit: %w", err)
		}
		buf := make([]byte, drumkitSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("drumkit: %w", err)
		}
		kit := unmarshalDrumkit(newBitReader(buf))
		b.Drumkit = &kit
	}

	if h.PatchCount > 0 {
		if _, err := r.Seek(int64(h.PatchOffset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking to patches: %w", err)
		}
		buf := make([]byte, patchRecordSize)
		for i := 0; i < int(h.PatchCount); i++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("patch %d: %w", i, err)
			}
			b.Patches = append(b.Patches, unmarshalPatch(newBitReader(buf)))
		}
	}

	if h.SampleCount > 0 {
		if _, err := r.Seek(int64(h.SampleOffset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking to samples: %w", err)
		}
		for i := 0; i < int(h.SampleCount); i++ {
			entry, err := readSampleEntry(r)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			b.Samples = append(b.Samples, entry)
		}
	}

	return b, nil
}

// readSampleEntry reads one variable-length sample record, using its own
// dwSize field (the first 4 bytes) to know how many more bytes to pull.
func readSampleEntry(r io.Reader) (SampleEntry, error) {
	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		return SampleEntry{}, fmt.Errorf("reading dwSize: %w", err)
	}
	dwSize := binary.LittleEndian.Uint32(head)
	if dwSize < 4 {
		return SampleEntry{}, fmt.Errorf("implausible dwSize %d", dwSize)
	}

	rest := make([]byte, dwSize-4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return SampleEntry{}, fmt.Errorf("reading %d body bytes: %w", dwSize-4, err)
	}

	full := append(head, rest...)
	return unmarshalSampleEntry(newBitReader(full))
}
