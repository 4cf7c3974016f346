package wfb

// swapFreqBias reverses the byte order of a 16-bit frequency bias field.
// Every other multi-byte field in this format is little-endian; these
// two (PatchParams.FreqBias, SampleBody.FrequencyBias) are the sole
// Motorola-big-endian holdouts (spec.md §3.4 invariant 6, §9), isolated
// here so the rest of the codec never has to think about endianness.
func swapFreqBias(v int16) int16 {
	u := uint16(v)
	return int16(u<<8 | u>>8)
}

// PatchParams is the bit-packed synthesis descriptor shared by every
// patch: bias/portamento, sample assignment, pitch-bend depth, the
// mono/retrigger/filter-config/reuse/reset-lfo flag byte, two FM sources,
// one AM source, two filter-cutoff modulation sources, a randomizer rate,
// and two envelopes plus two LFOs.
type PatchParams struct {
	FreqBias int16 // cents, host order; swapped to big-endian on disk

	AmpBias      uint8 // 7 bits
	Portamento   uint8 // 7 bits
	SampleNumber uint8
	PitchBend    uint8 // 4 bits
	SampleMSB    bool

	Mono         bool
	Retrigger    bool
	NoHold       bool
	Restart      bool
	FilterConfig uint8 // 2 bits
	Reuse        bool
	ResetLFO     bool

	FMSource2 uint8 // 4 bits
	FMSource1 uint8 // 4 bits
	FMAmount1 int8
	FMAmount2 int8

	AMSource uint8 // 4 bits
	AMAmount int8

	FC1MSource   uint8 // 4 bits
	FC2MSource   uint8 // 4 bits
	FC1MAmount   int8
	FC1KeyScale  int8
	FC1FreqBias  int8
	FC2MAmount   int8
	FC2KeyScale  int8
	FC2FreqBias  int8

	RandomizerRate uint8 // 7 bits

	Envelope1 Envelope
	Envelope2 Envelope
	LFO1      LFO
	LFO2      LFO
}

const patchParamsSize = 2 + 18 + envelopeSize*2 + lfoSize*2

func (p PatchParams) marshal(w *bitWriter) {
	w.writeBits(uint32(uint16(swapFreqBias(p.FreqBias))), 16)

	w.writeBits(uint32(p.AmpBias), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(p.Portamento), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(p.SampleNumber), 8)
	w.writeBits(uint32(p.PitchBend), 4)
	w.writeBits(boolBit(p.SampleMSB), 1)
	w.writeBits(0, 3)
	w.writeBits(boolBit(p.Mono), 1)
	w.writeBits(boolBit(p.Retrigger), 1)
	w.writeBits(boolBit(p.NoHold), 1)
	w.writeBits(boolBit(p.Restart), 1)
	w.writeBits(uint32(p.FilterConfig), 2)
	w.writeBits(boolBit(p.Reuse), 1)
	w.writeBits(boolBit(p.ResetLFO), 1)
	w.writeBits(uint32(p.FMSource2), 4)
	w.writeBits(uint32(p.FMSource1), 4)
	w.writeSigned(int32(p.FMAmount1), 8)
	w.writeSigned(int32(p.FMAmount2), 8)
	w.writeBits(uint32(p.AMSource), 4)
	w.writeBits(0, 4)
	w.writeSigned(int32(p.AMAmount), 8)
	w.writeBits(uint32(p.FC1MSource), 4)
	w.writeBits(uint32(p.FC2MSource), 4)
	w.writeSigned(int32(p.FC1MAmount), 8)
	w.writeSigned(int32(p.FC1KeyScale), 8)
	w.writeSigned(int32(p.FC1FreqBias), 8)
	w.writeSigned(int32(p.FC2MAmount), 8)
	w.writeSigned(int32(p.FC2KeyScale), 8)
	w.writeSigned(int32(p.FC2FreqBias), 8)
	w.writeBits(uint32(p.RandomizerRate), 7)
	w.writeBits(0, 1)

	p.Envelope1.marshal(w)
	p.Envelope2.marshal(w)
	p.LFO1.marshal(w)
	p.LFO2.marshal(w)
}

func unmarshalPatchParams(r *bitReader) PatchParams {
	var p PatchParams
	swapped := uint16(r.readBits(16))
	p.FreqBias = swapFreqBias(int16(swapped))

	p.AmpBias = uint8(r.readBits(7))
	r.readBits(1)
	p.Portamento = uint8(r.readBits(7))
	r.readBits(1)
	p.SampleNumber = uint8(r.readBits(8))
	p.PitchBend = uint8(r.readBits(4))
	p.SampleMSB = r.readBits(1) != 0
	r.readBits(3)
	p.Mono = r.readBits(1) != 0
	p.Retrigger = r.readBits(1) != 0
	p.NoHold = r.readBits(1) != 0
	p.Restart = r.readBits(1) != 0
	p.FilterConfig = uint8(r.readBits(2))
	p.Reuse = r.readBits(1) != 0
	p.ResetLFO = r.readBits(1) != 0
	p.FMSource2 = uint8(r.readBits(4))
	p.FMSource1 = uint8(r.readBits(4))
	p.FMAmount1 = int8(r.readSigned(8))
	p.FMAmount2 = int8(r.readSigned(8))
	p.AMSource = uint8(r.readBits(4))
	r.readBits(4)
	p.AMAmount = int8(r.readSigned(8))
	p.FC1MSource = uint8(r.readBits(4))
	p.FC2MSource = uint8(r.readBits(4))
	p.FC1MAmount = int8(r.readSigned(8))
	p.FC1KeyScale = int8(r.readSigned(8))
	p.FC1FreqBias = int8(r.readSigned(8))
	p.FC2MAmount = int8(r.readSigned(8))
	p.FC2KeyScale = int8(r.readSigned(8))
	p.FC2FreqBias = int8(r.readSigned(8))
	p.RandomizerRate = uint8(r.readBits(7))
	r.readBits(1)

	p.Envelope1 = unmarshalEnvelope(r)
	p.Envelope2 = unmarshalEnvelope(r)
	p.LFO1 = unmarshalLFO(r)
	p.LFO2 = unmarshalLFO(r)
	return p
}

// Patch is a WaveFrontPatch: a numbered, named PatchParams record.
type Patch struct {
	Number int16
	Name   string
	Params PatchParams
}

const patchRecordSize = patchParamsSize + 2 + NameLength

// PatchRecordSize returns a patch record's fixed on-disk byte size, for
// callers (the viability estimator) that need a table-size estimate
// without marshaling anything.
func PatchRecordSize() uint32 { return uint32(patchRecordSize) }

func (p Patch) marshal(w *bitWriter) {
	p.Params.marshal(w)
	w.writeBits(uint32(uint16(p.Number)), 16)
	writeFixedString(w, p.Name, NameLength)
}

func unmarshalPatch(r *bitReader) Patch {
	var p Patch
	p.Params = unmarshalPatchParams(r)
	p.Number = int16(r.readBits(16))
	p.Name = readFixedString(r, NameLength)
	return p
}

func writeFixedString(w *bitWriter, s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	for _, c := range b {
		w.writeBits(uint32(c), 8)
	}
}

func readFixedString(r *bitReader, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.readBits(8))
	}
	end := 0
	for end < len(b) && b[end] != 0 {
		end++
	}
	return string(b[:end])
}
