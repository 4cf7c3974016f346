package parammap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimecentQuantizationMonotonic(t *testing.T) {
	for t1 := -12000; t1 < 8000; t1 += 137 {
		t2 := t1 + 1
		idx1 := SecondsToTimeIndex(TimecentsToSeconds(int16(t1)))
		idx2 := SecondsToTimeIndex(TimecentsToSeconds(int16(t2)))
		require.LessOrEqual(t, idx1, idx2, "t1=%d t2=%d", t1, t2)
	}
}

func TestCentsToAmountClamps(t *testing.T) {
	require.EqualValues(t, 127, CentsToAmount(20000, 10))
	require.EqualValues(t, -127, CentsToAmount(-20000, 10))
}

func TestTimecentsToSecondsSentinel(t *testing.T) {
	require.Zero(t, TimecentsToSeconds(-32768))
	require.Zero(t, TimecentsToSeconds(math.MinInt16))
}

func TestCentibelsToLevel(t *testing.T) {
	require.EqualValues(t, 127, CentibelsToLevel(0))
	require.EqualValues(t, -128, CentibelsToLevel(10000))
}

func TestModEnvSustainToLevelClampsToPositiveRange(t *testing.T) {
	require.EqualValues(t, 127, ModEnvSustainToLevel(-500))
	require.EqualValues(t, 2, ModEnvSustainToLevel(2000))
}

func TestPanToWF(t *testing.T) {
	require.EqualValues(t, 0, PanToWF(-500))
	require.EqualValues(t, 7, PanToWF(500))
	require.EqualValues(t, 4, PanToWF(0))
}

func TestAttenuationToDrumMix(t *testing.T) {
	require.EqualValues(t, 127, AttenuationToDrumMix(0))
	require.EqualValues(t, 0, AttenuationToDrumMix(1000))
}

func TestSecondsToTimeIndexTableBounds(t *testing.T) {
	require.EqualValues(t, 0, SecondsToTimeIndex(0))
	require.EqualValues(t, 127, SecondsToTimeIndex(200))
}

func TestHzToLFORateIndexTableBounds(t *testing.T) {
	require.EqualValues(t, 0, HzToLFORateIndex(0))
	require.EqualValues(t, 127, HzToLFORateIndex(100))
}
