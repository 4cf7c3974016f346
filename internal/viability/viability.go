// Package viability dry-runs an SF2 bank against the WaveFront Bank
// conversion budget without materializing any of it: a preset/sample
// census, a layer-truncation estimate, and a weighted grade meant to
// warn the user before a real conversion happens.
package viability

import (
	"fmt"

	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

const (
	maxWarnings     = 16
	maxSuggestions  = 8
	maxTopTruncated = 10
)

// TopTruncated records one melodic program's simulated layer loss.
type TopTruncated struct {
	ProgramNum   int
	Name         string
	LayersBefore int
	LayersAfter  int
	LayersLost   int
}

// Report is the complete dry-run assessment of one SF2 file.
type Report struct {
	Filename     string
	SF2SizeBytes int64

	TotalPresets      int
	Bank0Presets      int // melodic: programs 0..127
	Bank128Presets    int // drums
	OtherBankPresets  int // skipped by conversion

	TotalSamplesInSF2      int
	SamplesReferencedByGM  int // before truncation
	SamplesAfterTruncation int // after the 4-layer limit
	SamplesUnused          int

	TotalPrograms          int
	ProgramsWithTruncation int
	AvgLayersBefore        float64
	AvgLayersAfter         float64
	TopTruncated           []TopTruncated

	ProgramsUsingFilterQ int

	EstimatedWFBSize uint64
	SizeReductionPct float64

	Grade       byte
	Warnings    []string
	Suggestions []string
}

func (r *Report) addWarning(format string, args ...any) {
	if len(r.Warnings) >= maxWarnings {
		return
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) addSuggestion(format string, args ...any) {
	if len(r.Suggestions) >= maxSuggestions {
		return
	}
	r.Suggestions = append(r.Suggestions, fmt.Sprintf(format, args...))
}

// Assess runs the full dry-run pipeline over an already-loaded SF2 bank.
func Assess(bank *sf2.Bank, filename string, sf2SizeBytes int64) *Report {
	r := &Report{
		Filename:          filename,
		SF2SizeBytes:      sf2SizeBytes,
		TotalSamplesInSF2: bank.Hydra.SampleCount(),
	}

	analyzePresets(bank, r)

	sampleUsed := make([]bool, r.TotalSamplesInSF2)
	traceSampleReferences(bank, r, sampleUsed)

	usedAfterTruncation := make([]bool, r.TotalSamplesInSF2)
	r.SamplesAfterTruncation = simulateLayerTruncation(bank, r, usedAfterTruncation)

	detectFilterQUsage(bank, r)
	calculateSizeEstimates(bank, r, usedAfterTruncation)

	r.Grade = calculateGrade(r)
	generateSuggestions(r)
	generateWarnings(r)

	return r
}

func analyzePresets(bank *sf2.Bank, r *Report) {
	h := bank.Hydra
	for i := 0; i < h.PresetCount(); i++ {
		p := h.Presets[i]
		bankNum, presetNum := int(p.Bank), int(p.Preset)
		r.TotalPresets++
		switch {
		case bankNum == 0 && presetNum < 128:
			r.Bank0Presets++
		case bankNum == 128:
			r.Bank128Presets++
		default:
			r.OtherBankPresets++
		}
	}
}

// forEachGMPresetInstrumentZone visits the generator list of every zone
// of each instrument that the given preset's bags reference, mirroring the nested preset→instrument walk
// every GM-preset pass in this package repeats independently of
// internal/convert's own (fuller) walk.
func forEachGMPresetInstrumentZone(h *sf2.Hydra, bankNum, presetNum int, visit func(gens []sf2.GeneratorRecord)) {
	idx := h.FindPreset(bankNum, presetNum)
	if idx < 0 {
		return
	}
	lo, hi := h.PresetBagRange(idx)
	for bi := lo; bi < hi; bi++ {
		gLo, gHi := h.PresetGenRange(bi)
		gens := h.PresetGenerators[gLo:gHi]

		instIdx := -1
		for _, g := range gens {
			if g.Oper == sf2.GenInstrument {
				instIdx = int(g.Amount)
				break
			}
		}
		if instIdx < 0 || instIdx >= h.InstrumentCount() {
			continue
		}

		iLo, iHi := h.InstrumentBagRange(instIdx)
		for ib := iLo; ib < iHi; ib++ {
			igLo, igHi := h.InstrumentGenRange(ib)
			visit(h.InstrumentGenerators[igLo:igHi])
		}
	}
}

func traceSampleReferences(bank *sf2.Bank, r *Report, sampleUsed []bool) {
	h := bank.Hydra
	for _, bankNum := range [2]int{0, 128} {
		limit := 128
		if bankNum == 128 {
			limit = 1
		}
		for presetNum := 0; presetNum < limit; presetNum++ {
			forEachGMPresetInstrumentZone(h, bankNum, presetNum, func(gens []sf2.GeneratorRecord) {
				for _, g := range gens {
					if g.Oper == sf2.GenSampleID {
						if idx := int(g.Amount); idx >= 0 && idx < len(sampleUsed) {
							sampleUsed[idx] = true
						}
						break
					}
				}
			})
		}
	}

	referenced := 0
	for _, used := range sampleUsed {
		if used {
			referenced++
		}
	}
	r.SamplesReferencedByGM = referenced
	r.SamplesUnused = r.TotalSamplesInSF2 - referenced
}

// simulateLayerTruncation approximates the Layer Grouper's 4-layer cap by
// counting instrument zones per melodic program as if each were its own
// layer — cheaper than a real grouping pass, and the same simplification
// the original viability estimator makes.
func simulateLayerTruncation(bank *sf2.Bank, r *Report, usedAfterTruncation []bool) int {
	h := bank.Hydra

	totalBefore, totalAfter, analyzed := 0, 0, 0
	r.ProgramsWithTruncation = 0
	r.TopTruncated = nil

	for progNum := 0; progNum < 128; progNum++ {
		idx := h.FindPreset(0, progNum)
		if idx < 0 {
			continue
		}
		analyzed++

		var sampleIndices []int
		forEachGMPresetInstrumentZone(h, 0, progNum, func(gens []sf2.GeneratorRecord) {
			for _, g := range gens {
				if g.Oper == sf2.GenSampleID {
					if idx := int(g.Amount); idx >= 0 && idx < len(usedAfterTruncation) {
						sampleIndices = append(sampleIndices, idx)
					}
					break
				}
			}
		})

		layersBefore := len(sampleIndices)
		layersAfter := layersBefore
		if layersAfter > wfb.NumLayers {
			layersAfter = wfb.NumLayers
		}
		totalBefore += layersBefore
		totalAfter += layersAfter

		keep := layersBefore
		if keep > wfb.NumLayers {
			keep = wfb.NumLayers
		}
		for _, si := range sampleIndices[:keep] {
			usedAfterTruncation[si] = true
		}

		if layersBefore > wfb.NumLayers {
			r.ProgramsWithTruncation++
			if len(r.TopTruncated) < maxTopTruncated {
				r.TopTruncated = append(r.TopTruncated, TopTruncated{
					ProgramNum:   progNum,
					Name:         h.Presets[idx].NameString(),
					LayersBefore: layersBefore,
					LayersAfter:  layersAfter,
					LayersLost:   layersBefore - layersAfter,
				})
			}
		}
	}

	if analyzed > 0 {
		r.AvgLayersBefore = float64(totalBefore) / float64(analyzed)
		r.AvgLayersAfter = float64(totalAfter) / float64(analyzed)
	}
	r.TotalPrograms = analyzed

	used := 0
	for _, u := range usedAfterTruncation {
		if u {
			used++
		}
	}
	return used
}

func detectFilterQUsage(bank *sf2.Bank, r *Report) {
	h := bank.Hydra
	var usingQ [128]bool

	for progNum := 0; progNum < 128; progNum++ {
		forEachGMPresetInstrumentZone(h, 0, progNum, func(gens []sf2.GeneratorRecord) {
			for _, g := range gens {
				if g.Oper == sf2.GenInitialFilterQ && int16(g.Amount) > 0 {
					usingQ[progNum] = true
				}
			}
		})
	}

	count := 0
	for _, v := range usingQ {
		if v {
			count++
		}
	}
	r.ProgramsUsingFilterQ = count
}

func calculateSizeEstimates(bank *sf2.Bank, r *Report, usedAfterTruncation []bool) {
	header := uint64(256)
	patchTable := uint64(wfb.MaxPatches) * uint64(wfb.PatchRecordSize())
	sampleOverhead := wfb.SampleEntry{Kind: wfb.KindSample}.Size()
	sampleTable := uint64(r.SamplesAfterTruncation) * uint64(sampleOverhead)

	var pcm uint64
	for i, used := range usedAfterTruncation {
		if !used {
			continue
		}
		s := bank.Hydra.Samples[i]
		pcm += uint64(s.End-s.Start) * 2
	}

	r.EstimatedWFBSize = header + patchTable + sampleTable + pcm
	if r.SF2SizeBytes > 0 {
		r.SizeReductionPct = 100.0 * (1.0 - float64(r.EstimatedWFBSize)/float64(r.SF2SizeBytes))
	}
}

// calculateGrade is the weighted A-F score of spec.md §4.6: preset
// coverage 30%, sample-budget headroom 25%, layer retention 30%,
// feature compatibility 15%, with an automatic F if the uncapped count of
// samples the GM presets reference overflows the device table or too few melodic presets
// exist to be worth converting.
func calculateGrade(r *Report) byte {
	// SamplesAfterTruncation is bounded by construction (MaxPrograms *
	// NumLayers == MaxSamples), so it can never itself overflow the
	// table; SamplesReferencedByGM is the uncapped count and is what
	// actually catches a bank referencing more distinct samples than
	// the device can ever hold, layer cap notwithstanding.
	if r.SamplesReferencedByGM > wfb.MaxSamples {
		return 'F'
	}
	if r.Bank0Presets < 32 {
		return 'F'
	}

	score := 0

	presetPct := 100.0 * float64(r.Bank0Presets) / 128.0
	score += int(presetPct * 0.3)

	samplePct := 100.0 * float64(wfb.MaxSamples-r.SamplesAfterTruncation) / float64(wfb.MaxSamples)
	score += int(samplePct * 0.25)

	layerPct := 100.0
	if r.AvgLayersBefore > 0 {
		layerPct = (r.AvgLayersAfter / r.AvgLayersBefore) * 100.0
	}
	score += int(layerPct * 0.3)

	compat := 15 - r.ProgramsUsingFilterQ/10
	if compat < 0 {
		compat = 0
	}
	score += compat

	switch {
	case score >= 90:
		return 'A'
	case score >= 75:
		return 'B'
	case score >= 60:
		return 'C'
	case score >= 40:
		return 'D'
	default:
		return 'F'
	}
}

func generateSuggestions(r *Report) {
	if r.SamplesReferencedByGM > wfb.MaxSamples {
		overflow := r.SamplesReferencedByGM - wfb.MaxSamples
		r.addSuggestion("CRITICAL: Exceeds %d sample limit by %d samples", wfb.MaxSamples, overflow)
		r.addSuggestion("Use a smaller GM bank or drop programs to fit")

		programsToDrop := overflow/3 + 1
		if programsToDrop < r.TotalPrograms {
			r.addSuggestion("Estimate: Drop ~%d programs to fit within limit", programsToDrop)
		}
	}

	if r.ProgramsWithTruncation > 10 {
		r.addSuggestion("%d programs will lose velocity layers (>%d layer limit)", r.ProgramsWithTruncation, wfb.NumLayers)
		if len(r.TopTruncated) > 0 {
			t := r.TopTruncated[0]
			r.addSuggestion("Most affected: %s (loses %d/%d layers)", t.Name, t.LayersLost, t.LayersBefore)
		}
		r.addSuggestion("Pre-edit SF2 to merge layers, or accept reduced expression")
	}

	if r.ProgramsUsingFilterQ > 20 {
		r.addSuggestion("%d programs use filter resonance (unsupported on WaveFront)", r.ProgramsUsingFilterQ)
		r.addSuggestion("Timbral character may change without resonance control")
	}

	switch r.Grade {
	case 'A':
		r.addSuggestion("Excellent conversion candidate!")
		r.addSuggestion("High fidelity expected with minimal quality loss")
	case 'B':
		r.addSuggestion("Good conversion candidate with minor compromises")
	case 'C', 'D':
		r.addSuggestion("Conversion possible but quality will be reduced")
		r.addSuggestion("Test critical programs on hardware before deployment")
	}

	const mib = 1024 * 1024
	switch {
	case r.EstimatedWFBSize > 8*mib:
		r.addSuggestion("WARNING: Exceeds 8MB limit (largest WaveFront card)")
	case r.EstimatedWFBSize > 4*mib:
		r.addSuggestion("Requires 8MB WaveFront card (Tropez/Maui)")
		r.addSuggestion("Will NOT fit on 4MB cards (Rio)")
	case r.EstimatedWFBSize > 3*mib:
		r.addSuggestion("Will fit on 4MB card but with little headroom")
	}
}

func generateWarnings(r *Report) {
	if r.SamplesReferencedByGM > wfb.MaxSamples {
		r.addWarning("Exceeds %d sample limit by %d samples", wfb.MaxSamples, r.SamplesReferencedByGM-wfb.MaxSamples)
	}
	if r.ProgramsWithTruncation > 5 {
		r.addWarning("%d programs will have layers truncated (%d-layer limit)", r.ProgramsWithTruncation, wfb.NumLayers)
	}
	if r.ProgramsWithTruncation > 0 && len(r.TopTruncated) > 0 {
		t := r.TopTruncated[0]
		lossPct := 0
		if t.LayersBefore > 0 {
			lossPct = t.LayersLost * 100 / t.LayersBefore
		}
		r.addWarning("%s loses %d/%d layers (%d%% reduction)", t.Name, t.LayersLost, t.LayersBefore, lossPct)
	}
	if r.ProgramsUsingFilterQ > 10 {
		r.addWarning("%d programs use filter Q (will be ignored)", r.ProgramsUsingFilterQ)
	}
	if r.OtherBankPresets > 0 {
		r.addWarning("%d presets in other banks will be skipped", r.OtherBankPresets)
	}
}
