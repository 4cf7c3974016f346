package wfb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchParamsRoundTrip(t *testing.T) {
	p := PatchParams{
		FreqBias:     -1200,
		AmpBias:      100,
		Portamento:   10,
		SampleNumber: 7,
		PitchBend:    2,
		SampleMSB:    true,
		Mono:         true,
		FilterConfig: 3,
		FMAmount1:    -64,
		FMAmount2:    63,
		AMAmount:     -1,
		Envelope1: Envelope{
			AttackTime: 10, AttackLevel: 100, SustainLevel: 50, KeyScale: 5,
		},
		LFO1: LFO{Frequency: 20, FMAmount: -10, WaveRestart: true},
	}

	w := &bitWriter{}
	p.marshal(w)
	require.Len(t, w.Bytes(), patchParamsSize)

	got := unmarshalPatchParams(newBitReader(w.Bytes()))
	require.Equal(t, p, got)
}

func TestPatchRecordRoundTrip(t *testing.T) {
	p := Patch{Number: 42, Name: "Lead Synth", Params: PatchParams{FreqBias: 256}}
	w := &bitWriter{}
	p.marshal(w)
	require.Len(t, w.Bytes(), patchRecordSize)

	got := unmarshalPatch(newBitReader(w.Bytes()))
	require.Equal(t, p, got)
}

func TestFixedStringTruncatesAndPads(t *testing.T) {
	w := &bitWriter{}
	writeFixedString(w, "hello", 8)
	require.Len(t, w.Bytes(), 8)

	got := readFixedString(newBitReader(w.Bytes()), 8)
	require.Equal(t, "hello", got)
}

func TestFixedStringOverlong(t *testing.T) {
	w := &bitWriter{}
	writeFixedString(w, "this name is way too long for the field", NameLength)
	got := readFixedString(newBitReader(w.Bytes()), NameLength)
	require.Len(t, got, NameLength)
	require.Equal(t, "this name is way too long for th", got)
}
