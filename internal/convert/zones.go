package convert

import (
	"github.com/sf2wfb/sf2wfb/internal/parammap"
	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// candidateZone is one fully-resolved (preset-zone × instrument-zone) pair,
// per spec.md §4.4 step 2 — everything the Layer Grouper needs to coalesce
// zones into layers and the Sample Pool needs to materialize PCM.
type candidateZone struct {
	SampleIndex    int
	KeyLo, KeyHi   uint8
	VelLo, VelHi   uint8
	Pan            uint8
	Params         wfb.PatchParams
	Routing        parammap.Routing
	ExclusiveClass int16
}

// resolvePreset walks one preset's bags and returns every candidate zone it
// produces, per spec.md §4.4 steps 1-2.
func resolvePreset(bank *sf2.Bank, presetIdx int) []candidateZone {
	h := bank.Hydra
	lo, hi := h.PresetBagRange(presetIdx)

	globalPresetGens, globalPresetMods, zoneStart := splitGlobalBag(lo, hi,
		func(i int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord) {
			return presetBagRecords(h, i)
		},
		func(gens []sf2.GeneratorRecord) bool { return !hasGenerator(gens, sf2.GenInstrument) },
	)

	var zones []candidateZone
	for bi := zoneStart; bi < hi; bi++ {
		gens, mods := presetBagRecords(h, bi)
		instGen, ok := findGenerator(gens, sf2.GenInstrument)
		if !ok {
			continue // non-leading bag missing INSTRUMENT: invalid, skipped
		}
		instIdx := int(instGen.Amount)
		if instIdx < 0 || instIdx >= h.InstrumentCount() {
			continue
		}

		presetKeyLo, presetKeyHi := keyRangeOf(gens)
		presetVelLo, presetVelHi := velRangeOf(gens)

		zones = append(zones, resolveInstrument(bank, instIdx, presetKeyLo, presetKeyHi, presetVelLo, presetVelHi,
			globalPresetGens, globalPresetMods, gens, mods)...)
	}
	return zones
}

// resolveInstrument walks one instrument's bags, intersecting each
// instrument zone's key/velocity range against the owning preset zone's
// range, and resolves the full generator/modulator stack per spec.md §4.2.
func resolveInstrument(bank *sf2.Bank, instIdx int,
	presetKeyLo, presetKeyHi, presetVelLo, presetVelHi uint8,
	globalPresetGens []sf2.GeneratorRecord, globalPresetMods []sf2.ModulatorRecord,
	zonePresetGens []sf2.GeneratorRecord, zonePresetMods []sf2.ModulatorRecord,
) []candidateZone {
	h := bank.Hydra
	lo, hi := h.InstrumentBagRange(instIdx)

	globalInstGens, globalInstMods, zoneStart := splitGlobalBag(lo, hi,
		func(i int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord) {
			return instrumentBagRecords(h, i)
		},
		func(gens []sf2.GeneratorRecord) bool { return !hasGenerator(gens, sf2.GenSampleID) },
	)

	var zones []candidateZone
	for bi := zoneStart; bi < hi; bi++ {
		gens, mods := instrumentBagRecords(h, bi)
		sampleGen, ok := findGenerator(gens, sf2.GenSampleID)
		if !ok {
			continue // non-leading bag missing SAMPLE_ID: invalid, skipped
		}
		sampleIdx := int(sampleGen.Amount)
		if sampleIdx < 0 || sampleIdx >= h.SampleCount() {
			continue
		}

		instKeyLo, instKeyHi := keyRangeOf(gens)
		instVelLo, instVelHi := velRangeOf(gens)

		keyLo, keyHi := maxU8(presetKeyLo, instKeyLo), minU8(presetKeyHi, instKeyHi)
		velLo, velHi := maxU8(presetVelLo, instVelLo), minU8(presetVelHi, instVelHi)
		if keyLo > keyHi || velLo > velHi {
			continue // empty intersection, discarded per spec.md §4.4 step 2
		}

		state := parammap.Resolve(globalInstGens, gens, globalPresetGens, zonePresetGens)
		params, routing := parammap.Project(state)
		parammap.ApplyModulators(&routing, append(append([]sf2.ModulatorRecord{}, globalInstMods...), mods...),
			append(append([]sf2.ModulatorRecord{}, globalPresetMods...), zonePresetMods...))
		parammap.ApplyRouting(&params, routing)

		zones = append(zones, candidateZone{
			SampleIndex:    sampleIdx,
			KeyLo:          keyLo,
			KeyHi:          keyHi,
			VelLo:          velLo,
			VelHi:          velHi,
			Pan:            parammap.PanToWF(state.Get(sf2.GenPan)),
			Params:         params,
			Routing:        routing,
			ExclusiveClass: state.Get(sf2.GenExclusiveClass),
		})
	}
	return zones
}

// splitGlobalBag detects the leading global bag (one that satisfies isGlobal)
// across bag range [lo, hi) and returns its generators/modulators plus the
// index of the first real zone bag.
func splitGlobalBag(lo, hi int, records func(int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord),
	isGlobal func([]sf2.GeneratorRecord) bool) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord, int) {
	if lo >= hi {
		return nil, nil, lo
	}
	gens, mods := records(lo)
	if isGlobal(gens) {
		return gens, mods, lo + 1
	}
	return nil, nil, lo
}

func presetBagRecords(h *sf2.Hydra, bagIdx int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord) {
	gLo, gHi := h.PresetGenRange(bagIdx)
	mLo, mHi := h.PresetModRange(bagIdx)
	return h.PresetGenerators[gLo:gHi], h.PresetModulators[mLo:mHi]
}

func instrumentBagRecords(h *sf2.Hydra, bagIdx int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord) {
	gLo, gHi := h.InstrumentGenRange(bagIdx)
	mLo, mHi := h.InstrumentModRange(bagIdx)
	return h.InstrumentGenerators[gLo:gHi], h.InstrumentModulators[mLo:mHi]
}

func findGenerator(gens []sf2.GeneratorRecord, op sf2.Generator) (sf2.GeneratorRecord, bool) {
	for _, g := range gens {
		if g.Oper == op {
			return g, true
		}
	}
	return sf2.GeneratorRecord{}, false
}

func hasGenerator(gens []sf2.GeneratorRecord, op sf2.Generator) bool {
	_, ok := findGenerator(gens, op)
	return ok
}

func keyRangeOf(gens []sf2.GeneratorRecord) (lo, hi uint8) {
	if g, ok := findGenerator(gens, sf2.GenKeyRange); ok {
		return g.Lo(), g.Hi()
	}
	return 0, 127
}

func velRangeOf(gens []sf2.GeneratorRecord) (lo, hi uint8) {
	if g, ok := findGenerator(gens, sf2.GenVelRange); ok {
		return g.Lo(), g.Hi()
	}
	return 0, 127
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
