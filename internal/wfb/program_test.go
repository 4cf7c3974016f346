package wfb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayerRoundTrip(t *testing.T) {
	l := Layer{
		PatchNumber:  5,
		MixLevel:     127,
		Unmute:       true,
		SplitPoint:   60,
		SplitDir:     1,
		PanModSource: 2,
		PanModulated: true,
		Pan:          8,
		SplitType:    1,
	}
	w := &bitWriter{}
	l.marshal(w)
	require.Len(t, w.Bytes(), layerSize)
	require.Equal(t, l, unmarshalLayer(newBitReader(w.Bytes())))
}

func TestProgramRoundTrip(t *testing.T) {
	p := Program{Number: 10, Name: "Strings"}
	p.Layers[0] = Layer{PatchNumber: 1, Unmute: true, MixLevel: 100}
	p.Layers[1] = Layer{PatchNumber: 2, Unmute: true, MixLevel: 80, SplitPoint: 64, SplitDir: 1}

	w := &bitWriter{}
	p.marshal(w)
	require.Len(t, w.Bytes(), programSize)
	require.Equal(t, p, unmarshalProgram(newBitReader(w.Bytes())))
}

func TestDrumAndDrumkitRoundTrip(t *testing.T) {
	d := Drum{PatchNumber: 9, MixLevel: 127, Unmute: true, Group: 3, PanModSource: 1, PanModulated: true, PanAmount: 7}
	w := &bitWriter{}
	d.marshal(w)
	require.Len(t, w.Bytes(), drumSize)
	require.Equal(t, d, unmarshalDrum(newBitReader(w.Bytes())))

	var kit Drumkit
	kit.Drums[36] = d // kick drum key
	wk := &bitWriter{}
	kit.marshal(wk)
	require.Len(t, wk.Bytes(), drumkitSize)
	gotKit := unmarshalDrumkit(newBitReader(wk.Bytes()))
	require.Equal(t, kit, gotKit)
}

func TestEnvelopeAndLFORoundTrip(t *testing.T) {
	e := Envelope{
		AttackTime: 20, Decay1Time: 10, Decay2Time: 5, SustainTime: 40,
		ReleaseTime: 60, Release2Time: 30,
		AttackLevel: 100, Decay1Level: 80, Decay2Level: -20,
		SustainLevel: 50, ReleaseLevel: -128,
		AttackVelocity: 64, VolumeVelocity: 32, KeyScale: 10,
	}
	w := &bitWriter{}
	e.marshal(w)
	require.Len(t, w.Bytes(), envelopeSize)
	require.Equal(t, e, unmarshalEnvelope(newBitReader(w.Bytes())))

	l := LFO{
		SampleNumber: 200, Frequency: 100, AMSource: 5, FMSource: 6,
		FMAmount: -50, AMAmount: 50, StartLevel: -128, EndLevel: 127,
		DelayTime: 90, WaveRestart: true, RampTime: 42,
	}
	lw := &bitWriter{}
	l.marshal(lw)
	require.Len(t, lw.Bytes(), lfoSize)
	require.Equal(t, l, unmarshalLFO(newBitReader(lw.Bytes())))
}
