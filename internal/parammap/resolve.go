package parammap

import "github.com/sf2wfb/sf2wfb/internal/sf2"

// Resolve implements spec.md §4.2's two-level generator stack:
//  1. start from SF2 defaults
//  2. apply the instrument's global zone, absolute
//  3. apply the current instrument zone, absolute
//  4. apply the preset's global zone, additive
//  5. apply the current preset zone, additive
//
// Any of the four generator lists may be nil (no global zone, or the
// zone carries no generators).
func Resolve(globalInst, zoneInst, globalPreset, zonePreset []sf2.GeneratorRecord) GeneratorState {
	s := NewGeneratorState()
	s.ApplyAbsolute(globalInst)
	s.ApplyAbsolute(zoneInst)
	s.ApplyAdditive(globalPreset)
	s.ApplyAdditive(zonePreset)
	return s
}
