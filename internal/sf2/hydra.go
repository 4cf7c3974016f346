package sf2

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Generator identifies one of the SF2 generator operators. The numeric
// values match the SoundFont 2.04 SFGenerator enumeration exactly.
type Generator uint16

const (
	GenStartAddrsOffset       Generator = 0
	GenEndAddrsOffset         Generator = 1
	GenStartloopAddrsOffset   Generator = 2
	GenEndloopAddrsOffset     Generator = 3
	GenStartAddrsCoarseOffset Generator = 4
	GenModLFOToPitch          Generator = 5
	GenVibLFOToPitch          Generator = 6
	GenModEnvToPitch          Generator = 7
	GenInitialFilterFc        Generator = 8
	GenInitialFilterQ         Generator = 9
	GenModLFOToFilterFc       Generator = 10
	GenModEnvToFilterFc       Generator = 11
	GenEndAddrsCoarseOffset   Generator = 12
	GenModLFOToVolume         Generator = 13
	GenChorusEffectsSend      Generator = 15
	GenReverbEffectsSend      Generator = 16
	GenPan                    Generator = 17
	GenDelayModLFO            Generator = 21
	GenFreqModLFO             Generator = 22
	GenDelayVibLFO            Generator = 23
	GenFreqVibLFO             Generator = 24
	GenDelayModEnv            Generator = 25
	GenAttackModEnv           Generator = 26
	GenHoldModEnv             Generator = 27
	GenDecayModEnv            Generator = 28
	GenSustainModEnv          Generator = 29
	GenReleaseModEnv          Generator = 30
	GenKeynumToModEnvHold     Generator = 31
	GenKeynumToModEnvDecay    Generator = 32
	GenDelayVolEnv            Generator = 33
	GenAttackVolEnv           Generator = 34
	GenHoldVolEnv             Generator = 35
	GenDecayVolEnv            Generator = 36
	GenSustainVolEnv          Generator = 37
	GenReleaseVolEnv          Generator = 38
	GenKeynumToVolEnvHold     Generator = 39
	GenKeynumToVolEnvDecay    Generator = 40
	GenInstrument             Generator = 41
	GenKeyRange               Generator = 43
	GenVelRange               Generator = 44
	GenStartloopAddrsCoarse   Generator = 45
	GenKeynum                 Generator = 46
	GenVelocity               Generator = 47
	GenInitialAttenuation     Generator = 48
	GenEndloopAddrsCoarse     Generator = 50
	GenCoarseTune             Generator = 51
	GenFineTune               Generator = 52
	GenSampleID               Generator = 53
	GenSampleModes            Generator = 54
	GenScaleTuning            Generator = 56
	GenExclusiveClass         Generator = 57
	GenOverridingRootKey      Generator = 58
	GenEndOper                Generator = 60
)

// SampleLink mirrors SF2's SFSampleLink enumeration.
type SampleLink uint16

const (
	MonoSample      SampleLink = 1
	RightSample     SampleLink = 2
	LeftSample      SampleLink = 4
	LinkedSample    SampleLink = 8
	RomMonoSample   SampleLink = 0x8001
	RomRightSample  SampleLink = 0x8002
	RomLeftSample   SampleLink = 0x8004
	RomLinkedSample SampleLink = 0x8008
)

// PresetHeader is one phdr record.
type PresetHeader struct {
	Name         [20]byte
	Preset       uint16
	Bank         uint16
	PresetBagNdx uint16
	Library      uint32
	Genre        uint32
	Morphology   uint32
}

func (p PresetHeader) String() string {
	return fmt.Sprintf("Preset(%q bank=%d preset=%d bag=%d)", nameString(p.Name[:]), p.Bank, p.Preset, p.PresetBagNdx)
}

// NameString returns the preset's NUL-terminated name as a Go string.
func (p PresetHeader) NameString() string { return nameString(p.Name[:]) }

// Bag is a zone record: a pair of indices into the owning table's
// generator/modulator lists. Used for both pbag and ibag.
type Bag struct {
	GenNdx uint16
	ModNdx uint16
}

// GeneratorRecord is one pgen/igen record: an operator and its amount.
// Range-valued generators (key range, velocity range) pack lo/hi into
// the low/high byte of Amount; callers decode via Lo()/Hi().
type GeneratorRecord struct {
	Oper   Generator
	Amount int16
}

func (g GeneratorRecord) Lo() uint8 { return uint8(uint16(g.Amount) & 0xff) }
func (g GeneratorRecord) Hi() uint8 { return uint8(uint16(g.Amount) >> 8) }

// ModSource decodes the 7-bit controller-palette encoding SF2 uses for
// modulator sources; only the controller-index bits matter here.
type ModSource uint16

// ModulatorRecord is one pmod/imod record.
type ModulatorRecord struct {
	SrcOper    ModSource
	DestOper   Generator
	Amount     int16
	AmtSrcOper ModSource
	TransOper  uint16
}

// Instrument is one inst record.
type Instrument struct {
	Name       [20]byte
	InstBagNdx uint16
}

func (i Instrument) String() string {
	return fmt.Sprintf("Instrument(%q bag=%d)", nameString(i.Name[:]), i.InstBagNdx)
}

// SampleType mirrors SFSampleLink but as used in the shdr record.
type SampleType uint16

const (
	SampleMono  SampleType = 1
	SampleRight SampleType = 2
	SampleLeft  SampleType = 4
	SampleLinkT SampleType = 8
)

func (t SampleType) String() string {
	switch t &^ 0x8000 {
	case SampleMono:
		return "Mono"
	case SampleRight:
		return "Right"
	case SampleLeft:
		return "Left"
	case SampleLinkT:
		return "Link"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// SampleHeader is one shdr record.
type SampleHeader struct {
	Name            [20]byte
	Start           uint32
	End             uint32
	StartLoop       uint32
	EndLoop         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8
	SampleLink      uint16
	SampleType      SampleType
}

func (s SampleHeader) String() string {
	return fmt.Sprintf("Sample(%q rate=%d start=%d end=%d loop=[%d,%d] type=%v)",
		nameString(s.Name[:]), s.SampleRate, s.Start, s.End, s.StartLoop, s.EndLoop, s.SampleType)
}

// NameString returns the sample's NUL-terminated name as a Go string.
func (s SampleHeader) NameString() string { return nameString(s.Name[:]) }

func nameString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// Hydra holds the nine parallel SF2 indirection tables, sentinel record
// included. All cross-table ranges are half-open: a record's extent runs
// from its own index field to the next record's (or, for the final real
// record, the sentinel's).
type Hydra struct {
	Presets              []PresetHeader
	PresetBags           []Bag
	PresetModulators     []ModulatorRecord
	PresetGenerators     []GeneratorRecord
	Instruments          []Instrument
	InstrumentBags       []Bag
	InstrumentModulators []ModulatorRecord
	InstrumentGenerators []GeneratorRecord
	Samples              []SampleHeader
}

// PresetCount returns the number of usable (non-sentinel) presets.
func (h *Hydra) PresetCount() int { return len(h.Presets) - 1 }

// InstrumentCount returns the number of usable (non-sentinel) instruments.
func (h *Hydra) InstrumentCount() int { return len(h.Instruments) - 1 }

// SampleCount returns the number of usable (non-sentinel) sample headers.
func (h *Hydra) SampleCount() int { return len(h.Samples) - 1 }

// PresetBagRange returns the half-open [start,end) range of preset bags
// owned by preset i.
func (h *Hydra) PresetBagRange(i int) (int, int) {
	return int(h.Presets[i].PresetBagNdx), int(h.Presets[i+1].PresetBagNdx)
}

// PresetGenRange returns the half-open [start,end) range of generators
// owned by preset bag i.
func (h *Hydra) PresetGenRange(i int) (int, int) {
	return int(h.PresetBags[i].GenNdx), int(h.PresetBags[i+1].GenNdx)
}

// PresetModRange returns the half-open [start,end) range of modulators
// owned by preset bag i.
func (h *Hydra) PresetModRange(i int) (int, int) {
	return int(h.PresetBags[i].ModNdx), int(h.PresetBags[i+1].ModNdx)
}

// InstrumentBagRange returns the half-open [start,end) range of
// instrument bags owned by instrument i.
func (h *Hydra) InstrumentBagRange(i int) (int, int) {
	return int(h.Instruments[i].InstBagNdx), int(h.Instruments[i+1].InstBagNdx)
}

// InstrumentGenRange returns the half-open [start,end) range of
// generators owned by instrument bag i.
func (h *Hydra) InstrumentGenRange(i int) (int, int) {
	return int(h.InstrumentBags[i].GenNdx), int(h.InstrumentBags[i+1].GenNdx)
}

// InstrumentModRange returns the half-open [start,end) range of
// modulators owned by instrument bag i.
func (h *Hydra) InstrumentModRange(i int) (int, int) {
	return int(h.InstrumentBags[i].ModNdx), int(h.InstrumentBags[i+1].ModNdx)
}

// FindPreset looks up a preset by (bank, program). Returns -1 if absent.
func (h *Hydra) FindPreset(bank, preset int) int {
	for i := 0; i < h.PresetCount(); i++ {
		if int(h.Presets[i].Bank) == bank && int(h.Presets[i].Preset) == preset {
			return i
		}
	}
	return -1
}

var pdtaChunkSizes = map[string]int{
	"phdr": 38,
	"pbag": 4,
	"pmod": 10,
	"pgen": 4,
	"inst": 22,
	"ibag": 4,
	"imod": 10,
	"igen": 4,
	"shdr": 46,
}

var mandatoryPdtaChunks = []string{"phdr", "pbag", "pgen", "inst", "ibag", "igen", "shdr"}

// readHydra reads every pdta sub-chunk from r, which must be positioned
// at the start of the pdta LIST's payload (after the "pdta" type tag has
// already been consumed).
func readHydra(r io.Reader) (*Hydra, error) {
	h := &Hydra{}
	seen := make(map[string]bool, len(pdtaChunkSizes))

	for {
		var ck chunk
		if err := ck.parse(r); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading pdta sub-chunk: %w", err)
		}

		name := ck.idString()
		recSize, known := pdtaChunkSizes[name]
		if !known {
			// Unknown sub-chunk within pdta: skip per spec.
			continue
		}
		if int(ck.size)%recSize != 0 {
			return nil, fmt.Errorf("%s: size %d not a multiple of record size %d", name, ck.size, recSize)
		}
		seen[name] = true

		cr := ck.newReader()
		count := int(ck.size) / recSize

		switch name {
		case "phdr":
			h.Presets = make([]PresetHeader, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.Presets); err != nil {
				return nil, fmt.Errorf("phdr: %w", err)
			}
		case "pbag":
			h.PresetBags = readBags(ck.data, count)
		case "pmod":
			h.PresetModulators = make([]ModulatorRecord, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.PresetModulators); err != nil {
				return nil, fmt.Errorf("pmod: %w", err)
			}
		case "pgen":
			h.PresetGenerators = make([]GeneratorRecord, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.PresetGenerators); err != nil {
				return nil, fmt.Errorf("pgen: %w", err)
			}
		case "inst":
			h.Instruments = make([]Instrument, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.Instruments); err != nil {
				return nil, fmt.Errorf("inst: %w", err)
			}
		case "ibag":
			h.InstrumentBags = readBags(ck.data, count)
		case "imod":
			h.InstrumentModulators = make([]ModulatorRecord, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.InstrumentModulators); err != nil {
				return nil, fmt.Errorf("imod: %w", err)
			}
		case "igen":
			h.InstrumentGenerators = make([]GeneratorRecord, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.InstrumentGenerators); err != nil {
				return nil, fmt.Errorf("igen: %w", err)
			}
		case "shdr":
			h.Samples = make([]SampleHeader, count)
			if err := binary.Read(cr, binary.LittleEndian, &h.Samples); err != nil {
				return nil, fmt.Errorf("shdr: %w", err)
			}
		}
	}

	for _, name := range mandatoryPdtaChunks {
		if !seen[name] {
			return nil, fmt.Errorf("missing mandatory pdta sub-chunk %q", name)
		}
	}

	return h, nil
}

func readBags(data []byte, count int) []Bag {
	bags := make([]Bag, count)
	for i := 0; i < count; i++ {
		bags[i].GenNdx = uint16(data[4*i]) | uint16(data[4*i+1])<<8
		bags[i].ModNdx = uint16(data[4*i+2]) | uint16(data[4*i+3])<<8
	}
	return bags
}
