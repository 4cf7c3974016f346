package wfb

import "fmt"

// SampleOffset is the 24.4 fixed-point position format used throughout
// SAMPLE/ALIAS records: a 20-bit integer sample index plus a 4-bit
// fraction (sixteenths of a sample), with 8 reserved bits.
type SampleOffset struct {
	Integer  uint32 // 20 bits
	Fraction uint8  // 4 bits
}

const sampleOffsetSize = 4

func (o SampleOffset) marshal(w *bitWriter) {
	w.writeBits(uint32(o.Fraction), 4)
	w.writeBits(o.Integer, 20)
	w.writeBits(0, 8)
}

func unmarshalSampleOffset(r *bitReader) SampleOffset {
	var o SampleOffset
	o.Fraction = uint8(r.readBits(4))
	o.Integer = r.readBits(20)
	r.readBits(8)
	return o
}

// SampleBody is the SAMPLE record body: four 24.4 offsets, a frequency
// bias (stored big-endian on disk, like PatchParams.FreqBias), and the
// resolution/loop/direction flags.
type SampleBody struct {
	SampleStart  SampleOffset
	LoopStart    SampleOffset
	LoopEnd      SampleOffset
	SampleEnd    SampleOffset
	FrequencyBias int16

	Resolution   uint8 // 2 bits, SampleFormat
	Loop         bool
	Bidirectional bool
	Reverse      bool
}

const sampleBodySize = sampleOffsetSize*4 + 2 + 1

func (b SampleBody) marshal(w *bitWriter) {
	b.SampleStart.marshal(w)
	b.LoopStart.marshal(w)
	b.LoopEnd.marshal(w)
	b.SampleEnd.marshal(w)
	w.writeBits(uint32(uint16(swapFreqBias(b.FrequencyBias))), 16)
	w.writeBits(uint32(b.Resolution), 2)
	w.writeBits(0, 1)
	w.writeBits(boolBit(b.Loop), 1)
	w.writeBits(boolBit(b.Bidirectional), 1)
	w.writeBits(0, 1)
	w.writeBits(boolBit(b.Reverse), 1)
	w.writeBits(0, 1)
}

func unmarshalSampleBody(r *bitReader) SampleBody {
	var b SampleBody
	b.SampleStart = unmarshalSampleOffset(r)
	b.LoopStart = unmarshalSampleOffset(r)
	b.LoopEnd = unmarshalSampleOffset(r)
	b.SampleEnd = unmarshalSampleOffset(r)
	swapped := uint16(r.readBits(16))
	b.FrequencyBias = swapFreqBias(int16(swapped))
	b.Resolution = uint8(r.readBits(2))
	r.readBits(1)
	b.Loop = r.readBits(1) != 0
	b.Bidirectional = r.readBits(1) != 0
	r.readBits(1)
	b.Reverse = r.readBits(1) != 0
	r.readBits(1)
	return b
}

// MultisampleBody lists, per MIDI key, which sample number plays.
type MultisampleBody struct {
	NumSamples   int16
	SampleNumber [NumMIDIKeys]int16
}

const multisampleBodySize = 2 + NumMIDIKeys*2

func (m MultisampleBody) marshal(w *bitWriter) {
	w.writeBits(uint32(uint16(m.NumSamples)), 16)
	for _, n := range m.SampleNumber {
		w.writeBits(uint32(uint16(n)), 16)
	}
}

func unmarshalMultisampleBody(r *bitReader) MultisampleBody {
	var m MultisampleBody
	m.NumSamples = int16(r.readBits(16))
	for i := range m.SampleNumber {
		m.SampleNumber[i] = int16(r.readBits(16))
	}
	return m
}

// AliasBody references an earlier SAMPLE entry with its own override
// offsets; it carries no PCM of its own (spec.md §3.4 invariant 3:
// aliases may only reference earlier, already-materialized samples).
type AliasBody struct {
	OriginalSample int16
	SampleStart    SampleOffset
	LoopStart      SampleOffset
	SampleEnd      SampleOffset
	LoopEnd        SampleOffset
	FrequencyBias  int16

	Resolution    uint8
	Loop          bool
	Bidirectional bool
	Reverse       bool
}

const aliasBodySize = 2 + sampleOffsetSize*4 + 2 + 1

func (a AliasBody) marshal(w *bitWriter) {
	w.writeBits(uint32(uint16(a.OriginalSample)), 16)
	a.SampleStart.marshal(w)
	a.LoopStart.marshal(w)
	a.SampleEnd.marshal(w)
	a.LoopEnd.marshal(w)
	w.writeBits(uint32(uint16(swapFreqBias(a.FrequencyBias))), 16)
	w.writeBits(uint32(a.Resolution), 2)
	w.writeBits(0, 1)
	w.writeBits(boolBit(a.Loop), 1)
	w.writeBits(boolBit(a.Bidirectional), 1)
	w.writeBits(0, 1)
	w.writeBits(boolBit(a.Reverse), 1)
	w.writeBits(0, 1)
}

func unmarshalAliasBody(r *bitReader) AliasBody {
	var a AliasBody
	a.OriginalSample = int16(r.readBits(16))
	a.SampleStart = unmarshalSampleOffset(r)
	a.LoopStart = unmarshalSampleOffset(r)
	a.SampleEnd = unmarshalSampleOffset(r)
	a.LoopEnd = unmarshalSampleOffset(r)
	swapped := uint16(r.readBits(16))
	a.FrequencyBias = swapFreqBias(int16(swapped))
	a.Resolution = uint8(r.readBits(2))
	r.readBits(1)
	a.Loop = r.readBits(1) != 0
	a.Bidirectional = r.readBits(1) != 0
	r.readBits(1)
	a.Reverse = r.readBits(1) != 0
	r.readBits(1)
	return a
}

// filespec is always this literal, NUL-padded to MaxPathLength, per
// spec.md §4.7 ("bEmbeddedSamples set accordingly... literal 'EMBEDDED'").
const filespecLiteral = "EMBEDDED"

// SampleEntry is one variable-length sample-table record: the
// self-describing info header, a type-specific body, the filespec field,
// and (for Kind==KindSample) the raw embedded PCM.
type SampleEntry struct {
	Kind    SampleKind
	Number  int16
	Name    string
	Rate    uint32
	Channel Channel

	Sample      SampleBody      // valid iff Kind == KindSample
	Multisample MultisampleBody // valid iff Kind == KindMultisample
	Alias       AliasBody       // valid iff Kind == KindAlias

	PCM []int16 // valid iff Kind == KindSample
}

const sampleInfoSize = 4 + 2 + 2 + NameLength + 4 + 4 + 4 + 4 + 62

// Size returns this entry's on-disk dwSize: info + body + filespec, plus
// raw PCM bytes for SAMPLE entries.
func (s SampleEntry) Size() uint32 {
	body := 0
	switch s.Kind {
	case KindSample:
		body = sampleBodySize
	case KindMultisample:
		body = multisampleBodySize
	case KindAlias:
		body = aliasBodySize
	}
	size := uint32(sampleInfoSize + body + MaxPathLength)
	if s.Kind == KindSample {
		size += uint32(len(s.PCM)) * 2
	}
	return size
}

func (s SampleEntry) marshal(w *bitWriter) {
	w.writeBits(s.Size(), 32)
	w.writeBits(uint32(uint16(s.Kind)), 16)
	w.writeBits(uint32(uint16(s.Number)), 16)
	writeFixedString(w, s.Name, NameLength)
	w.writeBits(s.Rate, 32)

	sizeInSamples := uint32(0)
	sizeInBytes := uint32(0)
	if s.Kind == KindSample {
		sizeInSamples = uint32(len(s.PCM))
		sizeInBytes = sizeInSamples * 2
	}
	w.writeBits(sizeInBytes, 32)
	w.writeBits(sizeInSamples, 32)
	w.writeBits(uint32(s.Channel), 32)
	for i := 0; i < 62; i++ {
		w.writeBits(0, 8)
	}

	switch s.Kind {
	case KindSample:
		s.Sample.marshal(w)
	case KindMultisample:
		s.Multisample.marshal(w)
	case KindAlias:
		s.Alias.marshal(w)
	}

	writeFixedString(w, filespecLiteral, MaxPathLength)

	if s.Kind == KindSample {
		for _, v := range s.PCM {
			w.writeBits(uint32(uint16(v)), 16)
		}
	}
}

func unmarshalSampleEntry(r *bitReader) (SampleEntry, error) {
	var s SampleEntry
	_ = r.readBits(32) // dwSize; reader.go uses it for stream bookkeeping
	s.Kind = SampleKind(int16(r.readBits(16)))
	s.Number = int16(r.readBits(16))
	s.Name = readFixedString(r, NameLength)
	s.Rate = r.readBits(32)
	sizeInBytes := r.readBits(32)
	sizeInSamples := r.readBits(32)
	s.Channel = Channel(r.readBits(32))
	for i := 0; i < 62; i++ {
		r.readBits(8)
	}

	switch s.Kind {
	case KindSample:
		s.Sample = unmarshalSampleBody(r)
	case KindMultisample:
		s.Multisample = unmarshalMultisampleBody(r)
	case KindAlias:
		s.Alias = unmarshalAliasBody(r)
	case KindEmpty:
	default:
		return s, fmt.Errorf("sample %d: unknown sample kind %d", s.Number, s.Kind)
	}

	readFixedString(r, MaxPathLength) // filespec, always "EMBEDDED"

	if s.Kind == KindSample {
		if sizeInBytes != sizeInSamples*2 {
			return s, fmt.Errorf("sample %d: dwSizeInBytes/dwSizeInSamples mismatch", s.Number)
		}
		s.PCM = make([]int16, sizeInSamples)
		for i := range s.PCM {
			s.PCM[i] = int16(r.readBits(16))
		}
	}

	return s, nil
}
