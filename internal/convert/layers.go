package convert

import (
	"fmt"

	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// groupKey is spec.md §4.4 step 3's coalescing key: zones with identical
// synthesis parameters, pan, and velocity range fold into one group.
type groupKey struct {
	Params       wfb.PatchParams
	Pan          uint8
	VelLo, VelHi uint8
}

// group is one coalesced set of candidate zones sharing a groupKey, each
// contributing its own key range to the group's 128-key sample map.
type group struct {
	groupKey
	zones []candidateZone
}

func groupZones(zones []candidateZone) []*group {
	var groups []*group
	index := make(map[groupKey]*group)
	for _, z := range zones {
		key := groupKey{Params: z.Params, Pan: z.Pan, VelLo: z.VelLo, VelHi: z.VelHi}
		g, ok := index[key]
		if !ok {
			g = &group{groupKey: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.zones = append(g.zones, z)
	}
	return groups
}

// BuildProgram runs the Layer Grouper (spec.md §4.4 steps 3-6) over one
// preset's candidate zones, materializing patches and samples as it goes.
func BuildProgram(bank *sf2.Bank, pool *SamplePool, patches *PatchTable, number int16, name string, zones []candidateZone, report *Report) wfb.Program {
	groups := groupZones(zones)

	var layers []wfb.Layer
	dropped := 0
	for _, g := range groups {
		if len(layers) >= wfb.NumLayers {
			dropped++
			continue
		}
		built := buildLayersForGroup(bank, pool, patches, g, name, report)
		if len(built) == 0 {
			continue
		}
		layers = append(layers, built[0])
		if len(built) > 1 && len(layers) < wfb.NumLayers {
			layers = append(layers, built[1])
		}
		// A second stereo channel that didn't fit is silently dropped per
		// spec.md §4.4 step 6 — no warning, unlike a whole group dropped
		// past the cap below.
	}

	if dropped > 0 {
		report.DroppedZones += dropped
		report.warn(fmt.Sprintf("program %q: dropped %d layer group(s) past the 4-layer cap", name, dropped))
	}

	var prog wfb.Program
	prog.Number = number
	prog.Name = name
	for i := 0; i < wfb.NumLayers && i < len(layers); i++ {
		prog.Layers[i] = layers[i]
	}
	return prog
}

// buildLayersForGroup resolves one group's per-key sample map into either a
// direct-sample layer, a stereo pair of layers, or a multisample layer.
func buildLayersForGroup(bank *sf2.Bank, pool *SamplePool, patches *PatchTable, g *group, progName string, report *Report) []wfb.Layer {
	var keyToSF [wfb.NumMIDIKeys]int
	for i := range keyToSF {
		keyToSF[i] = -1
	}
	keyLo, keyHi := uint8(127), uint8(0)
	for _, z := range g.zones {
		if z.KeyLo < keyLo {
			keyLo = z.KeyLo
		}
		if z.KeyHi > keyHi {
			keyHi = z.KeyHi
		}
		for k := int(z.KeyLo); k <= int(z.KeyHi); k++ {
			keyToSF[k] = z.SampleIndex
		}
	}

	distinct := make(map[int]bool)
	coversAll := true
	for _, v := range keyToSF {
		if v < 0 {
			coversAll = false
			continue
		}
		distinct[v] = true
	}

	splitPoint, splitDir, splitType := encodeGroupSplit(g.groupKey, keyLo, keyHi)

	if len(distinct) == 1 && coversAll {
		var sfIdx int
		for k := range distinct {
			sfIdx = k
		}

		if partner, ok := findStereoPartner(bank, sfIdx); ok {
			left, okL := materializeLayer(bank, pool, patches, g, sfIdx, progName+"_L", 0, splitPoint, splitDir, splitType)
			right, okR := materializeLayer(bank, pool, patches, g, partner, progName+"_R", 7, splitPoint, splitDir, splitType)
			if okL && okR {
				return []wfb.Layer{left, right}
			}
		}

		layer, ok := materializeLayer(bank, pool, patches, g, sfIdx, progName, g.Pan, splitPoint, splitDir, splitType)
		if !ok {
			return nil
		}
		return []wfb.Layer{layer}
	}

	var multi wfb.MultisampleBody
	for k := range multi.SampleNumber {
		multi.SampleNumber[k] = -1
	}
	for k, sfIdx := range keyToSF {
		if sfIdx < 0 {
			continue
		}
		wfIdx, ok := pool.Get(bank, sfIdx)
		if !ok {
			continue
		}
		multi.SampleNumber[k] = wfIdx
	}
	multi.NumSamples = int16(len(distinct))

	if len(pool.Entries) >= wfb.MaxSamples {
		report.DroppedSamples++
		return nil
	}
	msEntry := wfb.SampleEntry{
		Kind:        wfb.KindMultisample,
		Number:      int16(len(pool.Entries)),
		Name:        progName,
		Multisample: multi,
	}
	pool.Entries = append(pool.Entries, msEntry)
	msIdx := msEntry.Number

	params := g.Params
	applySampleToPatch(&params, msIdx)
	pn, ok := patches.Add(progName, params)
	if !ok {
		return nil
	}
	return []wfb.Layer{{
		PatchNumber: uint8(pn),
		MixLevel:    127,
		Unmute:      true,
		SplitPoint:  splitPoint,
		SplitDir:    splitDir,
		SplitType:   splitType,
		Pan:         g.Pan,
	}}
}

func materializeLayer(bank *sf2.Bank, pool *SamplePool, patches *PatchTable, g *group, sfIdx int, name string, pan uint8, splitPoint, splitDir, splitType uint8) (wfb.Layer, bool) {
	wfIdx, ok := pool.Get(bank, sfIdx)
	if !ok {
		return wfb.Layer{}, false
	}

	params := g.Params
	applySampleToPatch(&params, wfIdx)
	pn, ok := patches.Add(name, params)
	if !ok {
		return wfb.Layer{}, false
	}

	return wfb.Layer{
		PatchNumber: uint8(pn),
		MixLevel:    127,
		Unmute:      true,
		SplitPoint:  splitPoint,
		SplitDir:    splitDir,
		SplitType:   splitType,
		Pan:         pan,
	}, true
}

func applySampleToPatch(p *wfb.PatchParams, sampleNumber int16) {
	p.SampleNumber = uint8(sampleNumber & 0xff)
	p.SampleMSB = sampleNumber > 0xff
}

// encodeGroupSplit picks key-range or velocity-range encoding per spec.md
// §4.4's "Layer split encoding" paragraph: a restricted velocity range
// takes priority (it's uniform across the whole group, unlike key range,
// which a multi-zone group only has a union of).
func encodeGroupSplit(k groupKey, keyLo, keyHi uint8) (point, dir, splitType uint8) {
	if k.VelLo > 0 || k.VelHi < 127 {
		p, d := encodeSplit(k.VelLo, k.VelHi)
		return p, d, 1
	}
	p, d := encodeSplit(keyLo, keyHi)
	return p, d, 0
}

func encodeSplit(lo, hi uint8) (point, dir uint8) {
	switch {
	case lo > 0 && hi == 127:
		return lo, 0
	case lo == 0 && hi < 127:
		return hi, 1
	default:
		return lo, 0 // full range, or partial on both sides: upper bound is lost
	}
}
