package wfb

import (
	"fmt"
	"io"
)

// Bank is the complete in-memory WaveFront bank: header plus the
// program, drumkit, patch and sample tables. It is fully materialized
// before Write ever runs — the writer is single-pass with no seek-back
// (spec.md §3.5).
type Bank struct {
	Header  Header
	Device  string
	Comment string

	Programs []Program
	Drumkit  *Drumkit
	Patches  []Patch
	Samples  []SampleEntry

	// Warnings accumulates advisory messages noticed while reading a
	// bank (e.g. a version mismatch); it is never populated by Write.
	Warnings []string
}

// NewBank creates an empty bank targeting the named device.
func NewBank(device string) (*Bank, error) {
	if !IsValidDevice(device) {
		return nil, fmt.Errorf("unknown device %q", device)
	}
	return &Bank{
		Header: newHeader(device),
		Device: device,
	}, nil
}

// Validate checks the program, patch and sample counts against the device
// limits, that every unmuted layer names an existing patch, and that every
// alias points at an earlier sample. It does not check patch sample numbers,
// muted layers, or memory overage (which the caller warns about instead).
func (b *Bank) Validate() error {
	if len(b.Programs) > MaxPrograms {
		return fmt.Errorf("too many programs: %d > %d", len(b.Programs), MaxPrograms)
	}
	if len(b.Patches) > MaxPatches {
		return fmt.Errorf("too many patches: %d > %d", len(b.Patches), MaxPatches)
	}
	if len(b.Samples) > MaxSamples {
		return fmt.Errorf("too many samples: %d > %d", len(b.Samples), MaxSamples)
	}

	for pi, prog := range b.Programs {
		for _, l := range prog.Layers {
			if l.Unmute && int(l.PatchNumber) >= len(b.Patches) {
				return fmt.Errorf("program %d: layer references out-of-range patch %d", pi, l.PatchNumber)
			}
		}
	}
	for si, s := range b.Samples {
		if s.Kind == KindAlias && int(s.Alias.OriginalSample) >= si {
			return fmt.Errorf("sample %d: alias references non-earlier sample %d", si, s.Alias.OriginalSample)
		}
	}
	return nil
}

// TotalSampleMemory returns the sum of raw PCM bytes across every SAMPLE
// entry (aliases and multisamples hold no PCM of their own).
func (b *Bank) TotalSampleMemory() uint32 {
	var total uint32
	for _, s := range b.Samples {
		if s.Kind == KindSample {
			total += uint32(len(s.PCM)) * 2
		}
	}
	return total
}

// Retarget rewrites the bank's synth name in place, without touching any
// program, patch or sample data. It's the basis for a standalone
// rename/retarget tool that never has to parse past the header.
func Retarget(rw io.ReadWriteSeeker, device string) error {
	if !IsValidDevice(device) {
		return fmt.Errorf("unknown device %q", device)
	}

	headerBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(rw, headerBuf); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	h, err := unmarshalHeader(headerBuf)
	if err != nil {
		return err
	}

	var name [NameLength]byte
	copy(name[:], device)
	h.SynthName = name

	if _, err := rw.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := rw.Write(h.marshal()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// PrintInfo writes a human-readable summary of the bank's header and
// table offsets, the same shape a "-i" style inspection flag would print.
func (b *Bank) PrintInfo(w io.Writer) {
	fmt.Fprintf(w, "synth name:   %s\n", b.Header.synthNameString())
	fmt.Fprintf(w, "file type:    %s\n", b.Header.fileTypeString())
	fmt.Fprintf(w, "version:      %d\n", b.Header.Version)
	fmt.Fprintf(w, "programs:     %d (offset %d)\n", b.Header.ProgramCount, b.Header.ProgramOffset)
	fmt.Fprintf(w, "drumkits:     %d (offset %d)\n", b.Header.DrumkitCount, b.Header.DrumkitOffset)
	fmt.Fprintf(w, "patches:      %d (offset %d)\n", b.Header.PatchCount, b.Header.PatchOffset)
	fmt.Fprintf(w, "samples:      %d (offset %d)\n", b.Header.SampleCount, b.Header.SampleOffset)
	fmt.Fprintf(w, "memory bytes: %d\n", b.Header.MemoryRequired)
	if b.Comment != "" {
		fmt.Fprintf(w, "comment:      %s\n", b.Comment)
	}
	for _, warning := range b.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}
