package wfb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleOffsetRoundTrip(t *testing.T) {
	cases := []SampleOffset{
		{Integer: 0, Fraction: 0},
		{Integer: 1, Fraction: 15},
		{Integer: 0xFFFFF, Fraction: 0xF}, // max 20-bit integer, max 4-bit fraction
		{Integer: 1000000 & 0xFFFFF, Fraction: 4},
	}
	for _, c := range cases {
		w := &bitWriter{}
		c.marshal(w)
		require.Len(t, w.Bytes(), sampleOffsetSize)
		got := unmarshalSampleOffset(newBitReader(w.Bytes()))
		require.Equal(t, c, got)
	}
}

func TestFreqBiasByteSwapIsInvolution(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 256, -256, 12345, -12345} {
		require.Equal(t, v, swapFreqBias(swapFreqBias(v)))
	}
}

func TestFreqBiasByteSwapActuallySwapsBytes(t *testing.T) {
	require.EqualValues(t, 0x3412, uint16(swapFreqBias(0x1234)))
}

func TestSampleEntrySizeIncludesPCM(t *testing.T) {
	s := SampleEntry{
		Kind: KindSample,
		Name: "piano",
		PCM:  make([]int16, 100),
	}
	want := uint32(sampleInfoSize+sampleBodySize+MaxPathLength) + 200
	require.Equal(t, want, s.Size())
}

func TestSampleEntryRoundTripSample(t *testing.T) {
	s := SampleEntry{
		Kind:    KindSample,
		Number:  3,
		Name:    "sine",
		Rate:    44100,
		Channel: ChannelMono,
		Sample: SampleBody{
			SampleStart:   SampleOffset{Integer: 0},
			LoopStart:     SampleOffset{Integer: 10},
			LoopEnd:       SampleOffset{Integer: 90},
			SampleEnd:     SampleOffset{Integer: 100},
			FrequencyBias: 440,
			Resolution:    uint8(Linear16Bit),
			Loop:          true,
		},
		PCM: []int16{0, 1, -1, 32767, -32768},
	}

	w := &bitWriter{}
	s.marshal(w)
	require.Len(t, w.Bytes(), int(s.Size()))

	got, err := unmarshalSampleEntry(newBitReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, s.Kind, got.Kind)
	require.Equal(t, s.Number, got.Number)
	require.Equal(t, s.Name, got.Name)
	require.Equal(t, s.Rate, got.Rate)
	require.Equal(t, s.Channel, got.Channel)
	require.Equal(t, s.Sample, got.Sample)
	require.Equal(t, s.PCM, got.PCM)
}

func TestSampleEntryRoundTripAlias(t *testing.T) {
	s := SampleEntry{
		Kind:   KindAlias,
		Number: 4,
		Name:   "sine-alias",
		Alias: AliasBody{
			OriginalSample: 3,
			FrequencyBias:  220,
			Loop:           true,
		},
	}
	w := &bitWriter{}
	s.marshal(w)
	got, err := unmarshalSampleEntry(newBitReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, s.Alias, got.Alias)
	require.Nil(t, got.PCM)
}

func TestSampleEntryRoundTripMultisample(t *testing.T) {
	s := SampleEntry{
		Kind:   KindMultisample,
		Number: 5,
		Name:   "keyboard-split",
		Multisample: MultisampleBody{
			NumSamples: 2,
		},
	}
	s.Multisample.SampleNumber[60] = 3
	s.Multisample.SampleNumber[61] = 4

	w := &bitWriter{}
	s.marshal(w)
	got, err := unmarshalSampleEntry(newBitReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, s.Multisample, got.Multisample)
}
