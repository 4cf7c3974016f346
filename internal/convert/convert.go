package convert

import (
	"fmt"

	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// ProgramOverride is one `--patch <file>:<id>` substitution: program
// (or, for ID 128, the drumkit) is pulled from a different SF2 image
// instead of the primary bank being converted.
type ProgramOverride struct {
	ID     int
	Source *sf2.Bank
}

// Options configures one Convert call.
type Options struct {
	Device string

	// Drums, if set, supplies the drum preset from a separate SF2 file
	// (--drums) instead of looking for bank 128 / bank-0-program-128
	// inside the primary bank.
	Drums *sf2.Bank

	Overrides []ProgramOverride
}

// Convert runs the full SF2 Hydra walk → parameter resolution → layer
// grouping → sample pooling → drumkit build pipeline and assembles the
// resulting WFB bank, per spec.md §2's control flow.
func Convert(bank *sf2.Bank, opts Options) (*wfb.Bank, *Report, error) {
	report := &Report{}
	pool := NewSamplePool(report)
	patches := NewPatchTable(report)

	wfBank, err := wfb.NewBank(opts.Device)
	if err != nil {
		return nil, report, err
	}

	wfBank.Drumkit = buildDrumkitForConvert(bank, opts, pool, patches, report)

	programs := make([]wfb.Program, 0, 128)
	for prog := 0; prog < 128; prog++ {
		source := bank
		if ov, ok := overrideFor(opts.Overrides, prog); ok {
			source = ov.Source
		}

		presetIdx := source.Hydra.FindPreset(0, prog)
		if presetIdx < 0 {
			continue
		}

		zones := resolvePreset(source, presetIdx)
		name := source.Hydra.Presets[presetIdx].NameString()
		programs = append(programs, BuildProgram(source, pool, patches, int16(prog), name, zones, report))
	}

	wfBank.Programs = programs
	wfBank.Patches = patches.Patches
	wfBank.Samples = pool.Entries
	report.Programs = len(programs)

	if limit, ok := wfb.DeviceMemoryLimit(opts.Device); ok {
		if mem := wfBank.TotalSampleMemory(); mem > limit {
			report.warn(fmt.Sprintf("sample memory %d bytes exceeds %s's %d byte limit", mem, opts.Device, limit))
		}
	}

	if err := wfBank.Validate(); err != nil {
		return wfBank, report, err
	}
	return wfBank, report, nil
}

func overrideFor(overrides []ProgramOverride, id int) (ProgramOverride, bool) {
	for _, ov := range overrides {
		if ov.ID == id {
			return ov, true
		}
	}
	return ProgramOverride{}, false
}

// buildDrumkitForConvert resolves the drum preset source in priority
// order: an explicit ID-128 --patch override, an explicit --drums file,
// then the primary bank's own bank 128 (falling back to the
// bank-0-program-128 convention, per spec.md §4.4 step 7 / §4.5).
func buildDrumkitForConvert(bank *sf2.Bank, opts Options, pool *SamplePool, patches *PatchTable, report *Report) *wfb.Drumkit {
	if ov, ok := overrideFor(opts.Overrides, 128); ok {
		if idx := ov.Source.Hydra.FindPreset(128, 0); idx >= 0 {
			return BuildDrumkit(ov.Source, idx, pool, patches, report)
		}
		return nil
	}

	source := bank
	if opts.Drums != nil {
		source = opts.Drums
	}

	if idx := source.Hydra.FindPreset(128, 0); idx >= 0 {
		return BuildDrumkit(source, idx, pool, patches, report)
	}
	if idx := source.Hydra.FindPreset(0, 128); idx >= 0 {
		report.warn("bank 0 program 128 interpreted as drumkit (no bank 128 preset present)")
		return BuildDrumkit(source, idx, pool, patches, report)
	}
	return nil
}
