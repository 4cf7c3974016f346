package resample

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetSampleOffsetBasic(t *testing.T) {
	integer, fraction := SetSampleOffset(1.5)
	require.EqualValues(t, 1, integer)
	require.EqualValues(t, 8, fraction)
}

func TestSetSampleOffsetCarries(t *testing.T) {
	integer, fraction := SetSampleOffset(0.9999)
	require.EqualValues(t, 1, integer)
	require.EqualValues(t, 0, fraction)
}

func TestSetSampleOffsetZero(t *testing.T) {
	integer, fraction := SetSampleOffset(0)
	require.EqualValues(t, 0, integer)
	require.EqualValues(t, 0, fraction)
}

func TestLinearNoOpWhenRatesMatch(t *testing.T) {
	pcm := []int16{1, 2, 3, 4}
	out := Linear(pcm, 44100, 44100)
	require.Equal(t, pcm, out)
}

func TestLinearDownsamplesHalves(t *testing.T) {
	pcm := make([]int16, 100)
	for i := range pcm {
		pcm[i] = int16(i)
	}
	out := Linear(pcm, 88200, 44100)
	require.Len(t, out, 50)
	require.InDelta(t, 0, out[0], 1)
}

func TestLinearInterpolatesBetweenSamples(t *testing.T) {
	pcm := []int16{0, 100}
	out := Linear(pcm, 3, 2)
	require.NotEmpty(t, out)
	for _, v := range out {
		require.GreaterOrEqual(t, v, int16(0))
		require.LessOrEqual(t, v, int16(100))
	}
}

func TestScaleLoopPoint(t *testing.T) {
	require.EqualValues(t, 50, ScaleLoopPoint(100, 88200, 44100))
	require.EqualValues(t, 100, ScaleLoopPoint(100, 44100, 44100))
}
