package viability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sf2wfb/sf2wfb/internal/sf2"
)

// buildHydra assembles presetCount bank-0 presets (program numbers
// 0..presetCount-1), each owning its own instrument with zonesPerPreset
// zones, each zone pointing at a distinct sample header. No round-trip
// through RIFF bytes involved, same approach internal/convert's tests
// use to drive the resolver directly.
func buildHydra(presetCount, zonesPerPreset int) *sf2.Hydra {
	h := &sf2.Hydra{}

	for p := 0; p < presetCount; p++ {
		instIdx := len(h.Instruments)
		h.Instruments = append(h.Instruments, sf2.Instrument{InstBagNdx: uint16(len(h.InstrumentBags))})
		for z := 0; z < zonesPerPreset; z++ {
			sIdx := len(h.Samples)
			h.Samples = append(h.Samples, sf2.SampleHeader{SampleRate: 44100, Start: 0, End: 100})

			h.InstrumentBags = append(h.InstrumentBags, sf2.Bag{GenNdx: uint16(len(h.InstrumentGenerators))})
			h.InstrumentGenerators = append(h.InstrumentGenerators, sf2.GeneratorRecord{
				Oper: sf2.GenSampleID, Amount: int16(sIdx),
			})
		}

		h.Presets = append(h.Presets, sf2.PresetHeader{Bank: 0, Preset: uint16(p), PresetBagNdx: uint16(len(h.PresetBags))})
		h.PresetBags = append(h.PresetBags, sf2.Bag{GenNdx: uint16(len(h.PresetGenerators))})
		h.PresetGenerators = append(h.PresetGenerators, sf2.GeneratorRecord{
			Oper: sf2.GenInstrument, Amount: int16(instIdx),
		})
	}

	h.Presets = append(h.Presets, sf2.PresetHeader{PresetBagNdx: uint16(len(h.PresetBags))})
	h.PresetBags = append(h.PresetBags, sf2.Bag{GenNdx: uint16(len(h.PresetGenerators))})
	h.Instruments = append(h.Instruments, sf2.Instrument{InstBagNdx: uint16(len(h.InstrumentBags))})
	h.InstrumentBags = append(h.InstrumentBags, sf2.Bag{GenNdx: uint16(len(h.InstrumentGenerators))})
	h.Samples = append(h.Samples, sf2.SampleHeader{})
	return h
}

func bankWith(h *sf2.Hydra) *sf2.Bank {
	pcmLen := 0
	for _, s := range h.Samples {
		if int(s.End) > pcmLen {
			pcmLen = int(s.End)
		}
	}
	return &sf2.Bank{Hydra: h, PCM: make([]int16, pcmLen)}
}

// Testable property 8 (spec.md §8): a synthetic bank referencing 640
// distinct samples across 40 bank-0 presets (well above the 512 cap, and
// well above the 32-preset minimum so that branch doesn't mask this one)
// grades 'F' with the overflow suggestion.
func TestAssessGradeFOnSampleOverflow(t *testing.T) {
	h := buildHydra(40, 16) // 40 * 16 = 640 distinct samples referenced
	bank := bankWith(h)

	r := Assess(bank, "huge.sf2", 1<<20)
	require.EqualValues(t, 'F', r.Grade)
	require.Greater(t, r.SamplesReferencedByGM, 512)

	found := false
	for _, s := range r.Suggestions {
		if strings.Contains(s, "CRITICAL: Exceeds 512 sample limit") {
			found = true
		}
	}
	require.True(t, found, "expected overflow suggestion, got %v", r.Suggestions)
}

// Too few melodic presets is its own automatic-F path, independent of
// the sample budget.
func TestAssessGradeFOnTooFewPresets(t *testing.T) {
	h := buildHydra(5, 1)
	bank := bankWith(h)

	r := Assess(bank, "sparse.sf2", 1024)
	require.EqualValues(t, 'F', r.Grade)
	require.Less(t, r.Bank0Presets, 32)
}

func TestAssessCountsPresetsAndSamples(t *testing.T) {
	h := buildHydra(40, 2)
	bank := bankWith(h)

	r := Assess(bank, "ok.sf2", 2048)
	require.Equal(t, 40, r.TotalPresets)
	require.Equal(t, 40, r.Bank0Presets)
	require.Equal(t, 0, r.Bank128Presets)
	require.Equal(t, 80, r.TotalSamplesInSF2)
	require.Equal(t, 80, r.SamplesReferencedByGM)
	require.Equal(t, 0, r.SamplesUnused)
	require.LessOrEqual(t, r.SamplesAfterTruncation, 80)
}

func TestPromptProceedDefaultsYesOnEmptyInput(t *testing.T) {
	r := &Report{Warnings: []string{"something to flag"}}
	var out bytes.Buffer
	ok := PromptProceed(r, strings.NewReader("\n"), &out)
	require.True(t, ok)
	require.Contains(t, out.String(), "Proceed with conversion?")
}

func TestPromptProceedNoSkipsOnNoWarnings(t *testing.T) {
	r := &Report{}
	var out bytes.Buffer
	ok := PromptProceed(r, strings.NewReader("n\n"), &out)
	require.True(t, ok, "no warnings means no prompt, always proceed")
	require.Empty(t, out.String())
}

func TestPromptProceedDeclinesOnNo(t *testing.T) {
	r := &Report{Warnings: []string{"something to flag"}}
	var out bytes.Buffer
	ok := PromptProceed(r, strings.NewReader("n\n"), &out)
	require.False(t, ok)
}

func TestPrintSummaryIncludesGradeAndBudget(t *testing.T) {
	h := buildHydra(40, 2)
	r := Assess(bankWith(h), "ok.sf2", 2048)

	var out bytes.Buffer
	r.PrintSummary(&out)
	s := out.String()
	require.Contains(t, s, "grade:")
	require.Contains(t, s, "sample budget:")
}
