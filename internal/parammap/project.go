package parammap

import (
	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// fm source identifiers for the generator-derived routing step, per
// spec.md §9 "first-wins FM routing": vibrato LFO is 0, mod LFO is 1,
// mod envelope is 2.
const (
	fmSrcVibLFO  = 0
	fmSrcModLFO  = 1
	fmSrcModEnv  = 2
	amSrcModLFO  = 1
	fc1SrcModEnv = 2
	fc1SrcModLFO = 1
)

// Project converts a resolved GeneratorState into a WFB PatchParams,
// following spec.md §4.2's generator→patch projection bullet list. The
// returned Routing records which FM1/FM2/AM/FC1 lanes the generator step
// claimed, so ApplyModulators knows which lanes are still free.
func Project(s GeneratorState) (wfb.PatchParams, Routing) {
	var p wfb.PatchParams
	var r Routing

	// Volume envelope (amplitude) -> Envelope2.
	p.Envelope2 = buildEnvelope(s, sf2.GenDelayVolEnv, sf2.GenAttackVolEnv, sf2.GenHoldVolEnv, sf2.GenDecayVolEnv, sf2.GenReleaseVolEnv)
	sustainLevel := CentibelsToLevel(s.Get(sf2.GenSustainVolEnv))
	p.Envelope2.Decay2Level = sustainLevel
	p.Envelope2.SustainLevel = sustainLevel

	// Modulation envelope -> Envelope1.
	p.Envelope1 = buildEnvelope(s, sf2.GenDelayModEnv, sf2.GenAttackModEnv, sf2.GenHoldModEnv, sf2.GenDecayModEnv, sf2.GenReleaseModEnv)
	modSustainLevel := ModEnvSustainToLevel(s.Get(sf2.GenSustainModEnv))
	p.Envelope1.Decay2Level = modSustainLevel
	p.Envelope1.SustainLevel = modSustainLevel

	p.AmpBias = AmplitudeBias(s.Get(sf2.GenInitialAttenuation))

	pitchCents := int(s.Get(sf2.GenCoarseTune))*100 + int(s.Get(sf2.GenFineTune))
	p.FreqBias = int16(pitchCents)

	p.FC1FreqBias = FilterCutoffBias(s.Get(sf2.GenInitialFilterFc))

	// LFO1 = vibrato source, LFO2 = modulation source (lfo.go).
	p.LFO1.Frequency = HzToLFORateIndex(CentsToHz(s.Get(sf2.GenFreqVibLFO)))
	p.LFO1.DelayTime = SecondsToTimeIndex(TimecentsToSeconds(s.Get(sf2.GenDelayVibLFO)))
	p.LFO2.Frequency = HzToLFORateIndex(CentsToHz(s.Get(sf2.GenFreqModLFO)))
	p.LFO2.DelayTime = SecondsToTimeIndex(TimecentsToSeconds(s.Get(sf2.GenDelayModLFO)))

	// First-wins FM routing: vib_lfo, then mod_lfo, then mod_env.
	if v := s.Get(sf2.GenVibLFOToPitch); v != 0 {
		p.FMSource1, p.FMAmount1 = fmSrcVibLFO, CentsToAmount(int(v), 10)
		r.FM1Source, r.FM1Amount, r.FM1Used = p.FMSource1, p.FMAmount1, true
	}
	if v := s.Get(sf2.GenModLFOToPitch); v != 0 {
		if !r.FM1Used {
			p.FMSource1, p.FMAmount1 = fmSrcModLFO, CentsToAmount(int(v), 10)
			r.FM1Source, r.FM1Amount, r.FM1Used = p.FMSource1, p.FMAmount1, true
		} else {
			p.FMSource2, p.FMAmount2 = fmSrcModLFO, CentsToAmount(int(v), 10)
			r.FM2Source, r.FM2Amount, r.FM2Used = p.FMSource2, p.FMAmount2, true
		}
	}
	if v := s.Get(sf2.GenModEnvToPitch); v != 0 {
		if !r.FM1Used {
			p.FMSource1, p.FMAmount1 = fmSrcModEnv, CentsToAmount(int(v), 10)
			r.FM1Source, r.FM1Amount, r.FM1Used = p.FMSource1, p.FMAmount1, true
		} else if !r.FM2Used {
			p.FMSource2, p.FMAmount2 = fmSrcModEnv, CentsToAmount(int(v), 10)
			r.FM2Source, r.FM2Amount, r.FM2Used = p.FMSource2, p.FMAmount2, true
		}
	}

	if v := s.Get(sf2.GenModLFOToVolume); v != 0 {
		p.AMSource, p.AMAmount = amSrcModLFO, CentsToAmount(int(v), 5)
		r.AMSource, r.AMAmount, r.AMUsed = p.AMSource, p.AMAmount, true
	}

	if v := s.Get(sf2.GenModEnvToFilterFc); v != 0 {
		p.FC1MSource, p.FC1MAmount = fc1SrcModEnv, CentsToAmount(int(v), 100)
		r.FC1Source, r.FC1Amount, r.FC1Used = p.FC1MSource, p.FC1MAmount, true
	} else if v := s.Get(sf2.GenModLFOToFilterFc); v != 0 {
		p.FC1MSource, p.FC1MAmount = fc1SrcModLFO, CentsToAmount(int(v), 100)
		r.FC1Source, r.FC1Amount, r.FC1Used = p.FC1MSource, p.FC1MAmount, true
	}

	if s.Get(sf2.GenExclusiveClass) > 0 {
		p.Reuse = true
	}

	return p, r
}

// buildEnvelope sums delay+attack into a single attack time (WFB has no
// separate delay stage) and converts hold/decay/release as the
// decay1/decay2/release time fields, per spec.md §4.2.
func buildEnvelope(s GeneratorState, delay, attack, hold, decay, release sf2.Generator) wfb.Envelope {
	attackSeconds := TimecentsToSeconds(s.Get(delay)) + TimecentsToSeconds(s.Get(attack))
	var e wfb.Envelope
	e.AttackTime = SecondsToTimeIndex(attackSeconds)
	e.Decay1Time = SecondsToTimeIndex(TimecentsToSeconds(s.Get(hold)))
	e.Decay2Time = SecondsToTimeIndex(TimecentsToSeconds(s.Get(decay)))
	e.ReleaseTime = SecondsToTimeIndex(TimecentsToSeconds(s.Get(release)))
	return e
}

// ApplyRouting copies a finalized Routing into a PatchParams's FM/AM/FC1
// lanes, used after ApplyModulators has had a chance to fill any lane the
// generator projection left empty.
func ApplyRouting(p *wfb.PatchParams, r Routing) {
	if r.FM1Used {
		p.FMSource1, p.FMAmount1 = r.FM1Source, r.FM1Amount
	}
	if r.FM2Used {
		p.FMSource2, p.FMAmount2 = r.FM2Source, r.FM2Amount
	}
	if r.AMUsed {
		p.AMSource, p.AMAmount = r.AMSource, r.AMAmount
	}
	if r.FC1Used {
		p.FC1MSource, p.FC1MAmount = r.FC1Source, r.FC1Amount
	}
}
