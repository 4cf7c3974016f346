package parammap

import "github.com/sf2wfb/sf2wfb/internal/sf2"

// numGenerators is one past the highest defined SFGenerator value
// (sf2.GenEndOper == 60); GeneratorState is indexed directly by operator
// number so resolution never needs a name-to-field switch.
const numGenerators = 61

// GeneratorState is the SF2 "resolved generator state" of spec.md §3.2:
// one signed 16-bit amount per operator, seeded from the SF2 1.x
// defaults and mutated in place as each layer of the two-level stack is
// applied. Structural generators (sampleID, instrument, key/vel range)
// are excluded from this table — the Zone Resolver reads those directly
// off the bag, since they govern zone membership rather than synthesis
// parameters.
type GeneratorState struct {
	Amount [numGenerators]int16
}

// structural generators carry zone membership/identity, not a tunable
// synthesis amount, and are never folded into GeneratorState.
func isStructural(op sf2.Generator) bool {
	switch op {
	case sf2.GenInstrument, sf2.GenSampleID, sf2.GenKeyRange, sf2.GenVelRange:
		return true
	}
	return false
}

// NewGeneratorState returns the state pre-seeded with the SF2 1.x
// specification's documented defaults (section 8.1.3 of the SF2.04
// spec): the handful of generators whose "no generator present" value
// is not zero.
func NewGeneratorState() GeneratorState {
	var s GeneratorState
	s.Amount[sf2.GenInitialFilterFc] = 13500
	s.Amount[sf2.GenDelayModLFO] = -12000
	s.Amount[sf2.GenDelayVibLFO] = -12000
	s.Amount[sf2.GenDelayModEnv] = -12000
	s.Amount[sf2.GenDelayVolEnv] = -12000
	s.Amount[sf2.GenScaleTuning] = 100
	s.Amount[sf2.GenOverridingRootKey] = -1
	return s
}

// ApplyAbsolute overwrites state entries with each generator's amount
// (instrument scope: global zone then local zone, per spec.md §4.2 step
// 2-3).
func (s *GeneratorState) ApplyAbsolute(gens []sf2.GeneratorRecord) {
	for _, g := range gens {
		if isStructural(g.Oper) || int(g.Oper) >= numGenerators {
			continue
		}
		s.Amount[g.Oper] = g.Amount
	}
}

// ApplyAdditive adds each generator's amount to the existing state
// (preset scope: global zone then local zone, per spec.md §4.2 step 4-5).
func (s *GeneratorState) ApplyAdditive(gens []sf2.GeneratorRecord) {
	for _, g := range gens {
		if isStructural(g.Oper) || int(g.Oper) >= numGenerators {
			continue
		}
		s.Amount[g.Oper] += g.Amount
	}
}

// Get returns the resolved amount for a generator operator.
func (s GeneratorState) Get(op sf2.Generator) int16 {
	if int(op) >= numGenerators {
		return 0
	}
	return s.Amount[op]
}
