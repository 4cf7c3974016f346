package wfb

import (
	"fmt"
	"io"
)

// Write serializes the bank in one forward pass: header, then programs,
// then the drumkit (if any), then patches, then the sample stream. Every
// offset is computed before any byte is written, matching the original
// format's single-pass writer (spec.md §4.7).
func (b *Bank) Write(w io.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}

	hasDrumkit := b.Drumkit != nil

	programOffset := uint32(headerSize)
	drumkitOffset := programOffset + uint32(len(b.Programs))*uint32(programSize)
	patchOffset := drumkitOffset
	if hasDrumkit {
		patchOffset += uint32(drumkitSize)
	}
	sampleOffset := patchOffset + uint32(len(b.Patches))*uint32(patchRecordSize)

	h := b.Header
	copy(h.SynthName[:], b.Device)
	copy(h.Comment[:], b.Comment)
	h.Version = Version
	h.ProgramCount = uint16(len(b.Programs))
	h.PatchCount = uint16(len(b.Patches))
	h.SampleCount = uint16(len(b.Samples))
	if hasDrumkit {
		h.DrumkitCount = 1
	}
	h.ProgramOffset = programOffset
	h.DrumkitOffset = drumkitOffset
	h.PatchOffset = patchOffset
	h.SampleOffset = sampleOffset
	h.MemoryRequired = b.TotalSampleMemory()
	h.EmbeddedSamples = 1

	if _, err := w.Write(h.marshal()); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	for i, p := range b.Programs {
		bw := &bitWriter{}
		p.marshal(bw)
		if _, err := w.Write(bw.Bytes()); err != nil {
			return fmt.Errorf("program %d: %w", i, err)
		}
	}

	if hasDrumkit {
		bw := &bitWriter{}
		b.Drumkit.marshal(bw)
		if _, err := w.Write(bw.Bytes()); err != nil {
			return fmt.Errorf("drumkit: %w", err)
		}
	}

	for i, p := range b.Patches {
		bw := &bitWriter{}
		p.marshal(bw)
		if _, err := w.Write(bw.Bytes()); err != nil {
			return fmt.Errorf("patch %d: %w", i, err)
		}
	}

	for i, s := range b.Samples {
		bw := &bitWriter{}
		s.marshal(bw)
		if _, err := w.Write(bw.Bytes()); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return nil
}
