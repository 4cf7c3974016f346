package convert

import (
	"fmt"

	"github.com/sf2wfb/sf2wfb/internal/parammap"
	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// DrumKeyLo and DrumKeyHi bound the GM percussion key range a drum preset
// is mapped over, per spec.md §4.5.
const (
	DrumKeyLo = 35
	DrumKeyHi = 81
)

// BuildDrumkit walks the drum preset's bags and resolves one patch per GM
// percussion key 35..81, per spec.md §4.5.
func BuildDrumkit(bank *sf2.Bank, presetIdx int, pool *SamplePool, patches *PatchTable, report *Report) *wfb.Drumkit {
	h := bank.Hydra
	lo, hi := h.PresetBagRange(presetIdx)

	globalPresetGens, globalPresetMods, zoneStart := splitGlobalBag(lo, hi,
		func(i int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord) { return presetBagRecords(h, i) },
		func(gens []sf2.GeneratorRecord) bool { return !hasGenerator(gens, sf2.GenInstrument) },
	)

	kit := &wfb.Drumkit{}

	for key := DrumKeyLo; key <= DrumKeyHi; key++ {
		presetBag, ok := firstPresetZoneForKey(h, zoneStart, hi, uint8(key))
		if !ok {
			continue
		}
		presetGens, presetMods := presetBagRecords(h, presetBag)
		instGen, ok := findGenerator(presetGens, sf2.GenInstrument)
		if !ok {
			continue
		}
		instIdx := int(instGen.Amount)
		if instIdx < 0 || instIdx >= h.InstrumentCount() {
			continue
		}

		iLo, iHi := h.InstrumentBagRange(instIdx)
		globalInstGens, globalInstMods, instZoneStart := splitGlobalBag(iLo, iHi,
			func(i int) ([]sf2.GeneratorRecord, []sf2.ModulatorRecord) { return instrumentBagRecords(h, i) },
			func(gens []sf2.GeneratorRecord) bool { return !hasGenerator(gens, sf2.GenSampleID) },
		)

		instBag, ok := firstInstrumentZoneForKey(h, instZoneStart, iHi, uint8(key))
		if !ok {
			continue
		}
		instGens, instMods := instrumentBagRecords(h, instBag)
		sampleGen, ok := findGenerator(instGens, sf2.GenSampleID)
		if !ok {
			continue
		}
		sampleIdx := int(sampleGen.Amount)
		if sampleIdx < 0 || sampleIdx >= h.SampleCount() {
			continue
		}

		state := parammap.Resolve(globalInstGens, instGens, globalPresetGens, presetGens)
		params, routing := parammap.Project(state)
		parammap.ApplyModulators(&routing, append(append([]sf2.ModulatorRecord{}, globalInstMods...), instMods...),
			append(append([]sf2.ModulatorRecord{}, globalPresetMods...), presetMods...))
		parammap.ApplyRouting(&params, routing)

		wfIdx, ok := pool.Get(bank, sampleIdx)
		if !ok {
			report.unsupported(fmt.Sprintf("drum key %d: sample pool full or invalid sample", key))
			continue
		}
		applySampleToPatch(&params, wfIdx)

		pn, ok := patches.Add(fmt.Sprintf("Drum_%d", key), params)
		if !ok {
			continue
		}

		exclusiveClass := state.Get(sf2.GenExclusiveClass)
		group := clampI(int(exclusiveClass), 0, 15)

		kit.Drums[key] = wfb.Drum{
			PatchNumber: uint8(pn),
			MixLevel:    parammap.AttenuationToDrumMix(state.Get(sf2.GenInitialAttenuation)),
			Unmute:      true,
			Group:       uint8(group),
			PanAmount:   parammap.PanToWF(state.Get(sf2.GenPan)),
		}
	}

	return kit
}

func firstPresetZoneForKey(h *sf2.Hydra, lo, hi int, key uint8) (int, bool) {
	for bi := lo; bi < hi; bi++ {
		gens, _ := presetBagRecords(h, bi)
		if !hasGenerator(gens, sf2.GenInstrument) {
			continue
		}
		keyLo, keyHi := keyRangeOf(gens)
		if key >= keyLo && key <= keyHi {
			return bi, true
		}
	}
	return 0, false
}

func firstInstrumentZoneForKey(h *sf2.Hydra, lo, hi int, key uint8) (int, bool) {
	for bi := lo; bi < hi; bi++ {
		gens, _ := instrumentBagRecords(h, bi)
		if !hasGenerator(gens, sf2.GenSampleID) {
			continue
		}
		keyLo, keyHi := keyRangeOf(gens)
		if key >= keyLo && key <= keyHi {
			return bi, true
		}
	}
	return 0, false
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
