package convert

import "github.com/sf2wfb/sf2wfb/internal/sf2"

// hydraBuilder assembles a minimal, valid sf2.Hydra by hand (no RIFF
// parsing involved) so the Zone Resolver / Layer Grouper / Sample Pool /
// Drumkit Builder can be exercised directly against the §8 testable
// properties without round-tripping through a real SF2 file on disk.
type hydraBuilder struct {
	h sf2.Hydra
}

func newHydraBuilder() *hydraBuilder {
	return &hydraBuilder{}
}

// addSample registers a sample header and returns its index.
func (b *hydraBuilder) addSample(sh sf2.SampleHeader) int {
	b.h.Samples = append(b.h.Samples, sh)
	return len(b.h.Samples) - 1
}

// zone is one instrument or preset bag's generator list, as sf2.Generator
// operator/amount pairs; fixture zones carry no modulators.
type zone []sf2.GeneratorRecord

func genRange(op sf2.Generator, lo, hi uint8) sf2.GeneratorRecord {
	return sf2.GeneratorRecord{Oper: op, Amount: int16(uint16(hi)<<8 | uint16(lo))}
}

func gen(op sf2.Generator, amount int16) sf2.GeneratorRecord {
	return sf2.GeneratorRecord{Oper: op, Amount: amount}
}

// addInstrument appends an instrument with the given zones (each zone
// must carry a sampleID generator) and returns its index.
func (b *hydraBuilder) addInstrument(name string, zones ...zone) int {
	var n [20]byte
	copy(n[:], name)
	inst := sf2.Instrument{Name: n, InstBagNdx: uint16(len(b.h.InstrumentBags))}
	for _, z := range zones {
		b.h.InstrumentBags = append(b.h.InstrumentBags, sf2.Bag{
			GenNdx: uint16(len(b.h.InstrumentGenerators)),
			ModNdx: uint16(len(b.h.InstrumentModulators)),
		})
		b.h.InstrumentGenerators = append(b.h.InstrumentGenerators, z...)
	}
	b.h.Instruments = append(b.h.Instruments, inst)
	return len(b.h.Instruments) - 1
}

// addPreset appends a preset at (bank, program) whose zones each carry an
// instrument generator (amount = instrument index).
func (b *hydraBuilder) addPreset(bank, program int, name string, zones ...zone) {
	var n [20]byte
	copy(n[:], name)
	preset := sf2.PresetHeader{Name: n, Bank: uint16(bank), Preset: uint16(program), PresetBagNdx: uint16(len(b.h.PresetBags))}
	for _, z := range zones {
		b.h.PresetBags = append(b.h.PresetBags, sf2.Bag{
			GenNdx: uint16(len(b.h.PresetGenerators)),
			ModNdx: uint16(len(b.h.PresetModulators)),
		})
		b.h.PresetGenerators = append(b.h.PresetGenerators, z...)
	}
	b.h.Presets = append(b.h.Presets, preset)
}

// build closes out every table with its required trailing sentinel
// record (spec.md §3.1 invariant) and returns the finished Hydra.
func (b *hydraBuilder) build() *sf2.Hydra {
	b.h.Presets = append(b.h.Presets, sf2.PresetHeader{PresetBagNdx: uint16(len(b.h.PresetBags))})
	b.h.PresetBags = append(b.h.PresetBags, sf2.Bag{GenNdx: uint16(len(b.h.PresetGenerators)), ModNdx: uint16(len(b.h.PresetModulators))})
	b.h.Instruments = append(b.h.Instruments, sf2.Instrument{InstBagNdx: uint16(len(b.h.InstrumentBags))})
	b.h.InstrumentBags = append(b.h.InstrumentBags, sf2.Bag{GenNdx: uint16(len(b.h.InstrumentGenerators)), ModNdx: uint16(len(b.h.InstrumentModulators))})
	b.h.Samples = append(b.h.Samples, sf2.SampleHeader{})
	h := b.h
	return &h
}

func testBank(h *sf2.Hydra, pcm []int16) *sf2.Bank {
	return &sf2.Bank{Hydra: h, PCM: pcm}
}

func sampleAt(name string, rate, start, end uint32, kind sf2.SampleType, link uint16) sf2.SampleHeader {
	var n [20]byte
	copy(n[:], name)
	return sf2.SampleHeader{Name: n, Start: start, End: end, SampleRate: rate, SampleType: kind, SampleLink: link}
}
