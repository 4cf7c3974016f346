package parammap

import "github.com/sf2wfb/sf2wfb/internal/sf2"

// WFB modulation-source enumeration values, per spec.md §4.2's source
// decoding table.
const (
	wfSrcVelocity        = 6
	wfSrcKeyNumber        = 4
	wfSrcChannelPressure  = 9
	wfSrcModWheel         = 10
	wfSrcBreath           = 11
	wfSrcFoot             = 12
	wfSrcVolume           = 13
	wfSrcPan              = 14
	wfSrcExpression       = 15
)

const ccFlagBit = 0x0080

// decodeModSource maps an SF2 modulator source word to the WFB source
// enumeration. ok is false for any source this format can't express —
// the caller must drop the modulator entirely.
func decodeModSource(ms sf2.ModSource) (wf uint8, ok bool) {
	index := uint16(ms) & 0x7F
	isCC := uint16(ms)&ccFlagBit != 0

	if !isCC {
		switch index {
		case 2: // note-on velocity
			return wfSrcVelocity, true
		case 3: // note-on key number
			return wfSrcKeyNumber, true
		case 13: // channel pressure (general-controller palette)
			return wfSrcChannelPressure, true
		}
		return 0, false
	}

	switch index {
	case 1:
		return wfSrcModWheel, true
	case 2:
		return wfSrcBreath, true
	case 4:
		return wfSrcFoot, true
	case 7:
		return wfSrcVolume, true
	case 10:
		return wfSrcPan, true
	case 11:
		return wfSrcExpression, true
	}
	return 0, false
}

// modDestKind classifies a modulator destination generator into the
// lane it routes to.
type modDestKind int

const (
	destNone modDestKind = iota
	destAM
	destFC1
	destPitch
)

func classifyDest(dest sf2.Generator) modDestKind {
	switch dest {
	case sf2.GenInitialAttenuation:
		return destAM
	case sf2.GenInitialFilterFc, sf2.GenModLFOToFilterFc, sf2.GenModEnvToFilterFc:
		return destFC1
	case sf2.GenFineTune, sf2.GenCoarseTune, sf2.GenModLFOToPitch, sf2.GenVibLFOToPitch, sf2.GenModEnvToPitch:
		return destPitch
	}
	return destNone
}

// Routing collects the modulator-derived source/amount assignments for
// the FM1/FM2/AM/FC1 lanes, applied on top of whatever the generator
// bullet-list projection (Project) already claimed. A lane with
// Used==false was left untouched by the generator projection and is
// still available to a modulator.
type Routing struct {
	FM1Source uint8
	FM1Amount int8
	FM1Used   bool
	FM2Source uint8
	FM2Amount int8
	FM2Used   bool
	AMSource  uint8
	AMAmount  int8
	AMUsed    bool
	FC1Source uint8
	FC1Amount int8
	FC1Used   bool
}

// ApplyModulators walks the instrument-then-preset modulator lists
// (spec.md §4.2) and fills any lane left empty by the generator
// projection. Unsupported sources are dropped silently (UnsupportedFeature
// per spec.md §7; the caller tallies these for the viability/summary
// report).
func ApplyModulators(r *Routing, instMods, presetMods []sf2.ModulatorRecord) {
	for _, lists := range [][]sf2.ModulatorRecord{instMods, presetMods} {
		for _, m := range lists {
			wf, ok := decodeModSource(m.SrcOper)
			if !ok {
				continue
			}
			amount := int8(clampI(int(m.Amount)/5, -127, 127))

			switch classifyDest(m.DestOper) {
			case destAM:
				if !r.AMUsed {
					r.AMSource, r.AMAmount, r.AMUsed = wf, amount, true
				}
			case destFC1:
				if !r.FC1Used {
					r.FC1Source, r.FC1Amount, r.FC1Used = wf, amount, true
				}
			case destPitch:
				pitchAmount := int8(clampI(int(m.Amount)/10, -127, 127))
				if !r.FM1Used {
					r.FM1Source, r.FM1Amount, r.FM1Used = wf, pitchAmount, true
				} else if !r.FM2Used {
					r.FM2Source, r.FM2Amount, r.FM2Used = wf, pitchAmount, true
				}
			}
		}
	}
}
