package convert

import (
	"fmt"
	"hash/fnv"

	"github.com/sf2wfb/sf2wfb/internal/resample"
	"github.com/sf2wfb/sf2wfb/internal/sf2"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// SamplePool materializes SF2 sample headers into WFB SAMPLE/ALIAS entries,
// per spec.md §4.3: extraction, resample-above-44100, FNV-1a dedup, stereo
// channel tagging, and the 512-entry hard cap.
type SamplePool struct {
	Entries []wfb.SampleEntry

	bySFIndex map[int]int16
	report    *Report
}

// NewSamplePool creates an empty pool that reports overflow/resample/dedup
// events onto r.
func NewSamplePool(r *Report) *SamplePool {
	return &SamplePool{bySFIndex: make(map[int]int16), report: r}
}

// Get returns the WFB sample index materialized for SF2 sample header
// sfIndex, extracting and deduplicating it on first reference. ok is false
// if the index is out of range or the pool is already full.
func (p *SamplePool) Get(bank *sf2.Bank, sfIndex int) (int16, bool) {
	if idx, cached := p.bySFIndex[sfIndex]; cached {
		return idx, true
	}
	idx, ok := p.add(bank, sfIndex)
	if ok {
		p.bySFIndex[sfIndex] = idx
	}
	return idx, ok
}

func (p *SamplePool) add(bank *sf2.Bank, sfIndex int) (int16, bool) {
	if sfIndex < 0 || sfIndex >= bank.Hydra.SampleCount() {
		return 0, false
	}
	if len(p.Entries) >= wfb.MaxSamples {
		p.report.DroppedSamples++
		return 0, false
	}

	sh := bank.Hydra.Samples[sfIndex]
	if sh.End > uint32(len(bank.PCM)) || sh.Start > sh.End {
		p.report.unsupported(fmt.Sprintf("sample %q: start/end out of range of PCM pool", sf2Name(sh)))
		return 0, false
	}

	raw := bank.PCM[sh.Start:sh.End]
	pcm := append([]int16(nil), raw...)
	rate := sh.SampleRate

	loopValid := sh.StartLoop < sh.EndLoop && sh.StartLoop >= sh.Start && sh.EndLoop <= sh.End
	var loopStart, loopEnd uint32
	if loopValid {
		loopStart = sh.StartLoop - sh.Start
		loopEnd = sh.EndLoop - sh.Start
	}

	if rate > 44100 {
		pcm = resample.Linear(pcm, rate, 44100)
		if loopValid {
			loopStart = resample.ScaleLoopPoint(loopStart, rate, 44100)
			loopEnd = resample.ScaleLoopPoint(loopEnd, rate, 44100)
		}
		p.report.Resampled++
		p.report.warn(fmt.Sprintf("sample %q resampled from %d Hz to 44100 Hz", sf2Name(sh), rate))
		rate = 44100
	}

	channel := wfb.ChannelMono
	switch sh.SampleType &^ 0x8000 {
	case sf2.SampleLeft:
		channel = wfb.ChannelLeft
	case sf2.SampleRight:
		channel = wfb.ChannelRight
	}

	hash := hashPCM(pcm)

	body := wfb.SampleBody{
		SampleStart:   offsetOf(0),
		SampleEnd:     offsetOf(uint32(len(pcm))),
		FrequencyBias: int16(sh.PitchCorrection),
		Resolution:    uint8(wfb.Linear16Bit),
	}
	if loopValid {
		body.LoopStart = offsetOf(loopStart)
		body.LoopEnd = offsetOf(loopEnd)
		body.Loop = true
	}

	if i, ok := p.findDuplicate(rate, channel, hash, body, pcm); ok {
		alias := wfb.SampleEntry{
			Kind:    wfb.KindAlias,
			Number:  int16(len(p.Entries)),
			Name:    sf2Name(sh),
			Rate:    rate,
			Channel: channel,
			Alias: wfb.AliasBody{
				OriginalSample: int16(i),
				SampleStart:    body.SampleStart,
				LoopStart:      body.LoopStart,
				SampleEnd:      body.SampleEnd,
				LoopEnd:        body.LoopEnd,
				FrequencyBias:  body.FrequencyBias,
				Resolution:     body.Resolution,
				Loop:           body.Loop,
				Bidirectional:  body.Bidirectional,
				Reverse:        body.Reverse,
			},
		}
		p.Entries = append(p.Entries, alias)
		p.report.DedupAliases++
		return int16(len(p.Entries) - 1), true
	}

	entry := wfb.SampleEntry{
		Kind:    wfb.KindSample,
		Number:  int16(len(p.Entries)),
		Name:    sf2Name(sh),
		Rate:    rate,
		Channel: channel,
		Sample:  body,
		PCM:     pcm,
	}
	p.Entries = append(p.Entries, entry)
	p.report.Samples++
	return int16(len(p.Entries) - 1), true
}

// findDuplicate scans for a prior SAMPLE entry matching spec.md §4.3's dedup
// key: identical rate, channel, hash, offsets, and byte-exact PCM (the hash
// narrows the search; equality still gets checked sample-by-sample to rule
// out a collision).
func (p *SamplePool) findDuplicate(rate uint32, channel wfb.Channel, hash uint64, body wfb.SampleBody, pcm []int16) (int, bool) {
	for i, e := range p.Entries {
		if e.Kind != wfb.KindSample {
			continue
		}
		if e.Rate != rate || e.Channel != channel {
			continue
		}
		if e.Sample != body {
			continue
		}
		if hashPCM(e.PCM) != hash {
			continue
		}
		if !samePCM(e.PCM, pcm) {
			continue
		}
		return i, true
	}
	return 0, false
}

func samePCM(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hashPCM(pcm []int16) uint64 {
	h := fnv.New64a()
	b := make([]byte, 2)
	for _, v := range pcm {
		b[0] = byte(uint16(v))
		b[1] = byte(uint16(v) >> 8)
		h.Write(b)
	}
	return h.Sum64()
}

func offsetOf(v uint32) wfb.SampleOffset {
	integer, fraction := resample.SetSampleOffset(float64(v))
	return wfb.SampleOffset{Integer: integer, Fraction: fraction}
}

func sf2Name(sh sf2.SampleHeader) string {
	return sh.NameString()
}

// findStereoPartner reports whether SF2 sample sfIdx is one half of a valid
// stereo pair per spec.md §4.3: opposite LEFT/RIGHT type, wSampleLink
// pointing at each other, identical length and rate.
func findStereoPartner(bank *sf2.Bank, sfIdx int) (int, bool) {
	sh := bank.Hydra.Samples[sfIdx]
	t := sh.SampleType &^ 0x8000
	if t != sf2.SampleLeft && t != sf2.SampleRight {
		return 0, false
	}

	link := int(sh.SampleLink)
	if link < 0 || link >= bank.Hydra.SampleCount() || link == sfIdx {
		return 0, false
	}

	partner := bank.Hydra.Samples[link]
	wantType := sf2.SampleRight
	if t == sf2.SampleRight {
		wantType = sf2.SampleLeft
	}
	if partner.SampleType&^0x8000 != wantType {
		return 0, false
	}
	if int(partner.SampleLink) != sfIdx {
		return 0, false
	}
	if partner.SampleRate != sh.SampleRate {
		return 0, false
	}
	if (partner.End - partner.Start) != (sh.End - sh.Start) {
		return 0, false
	}
	return link, true
}
