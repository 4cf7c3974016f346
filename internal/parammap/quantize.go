// Package parammap converts SF2's continuous parameter spaces (timecents,
// centibels, cents) into the WaveFront format's quantized fields, and
// resolves the two-level SF2 generator/modulator stack into a single
// flattened synthesis state.
package parammap

import "math"

// timeTable is the 128-entry nearest-neighbour lookup table backing
// SecondsToTimeIndex, 0s .. ~99s with finer granularity near zero. No
// pack example or original source carries WaveFront's own published
// table, so this one is original data built to satisfy the documented
// range and the monotonicity property it must uphold.
var timeTable = [128]float64{
	0.0, 0.0011, 0.0012, 0.0013, 0.0014, 0.0016, 0.0017, 0.0019,
	0.0021, 0.0023, 0.0025, 0.0027, 0.003, 0.0032, 0.0036, 0.0039,
	0.0043, 0.0047, 0.0051, 0.0056, 0.0061, 0.0067, 0.0073, 0.008,
	0.0088, 0.0096, 0.0105, 0.0115, 0.0126, 0.0138, 0.0151, 0.0166,
	0.0181, 0.0199, 0.0217, 0.0238, 0.0261, 0.0285, 0.0312, 0.0342,
	0.0374, 0.041, 0.0449, 0.0491, 0.0538, 0.0589, 0.0645, 0.0706,
	0.0773, 0.0846, 0.0926, 0.1014, 0.111, 0.1216, 0.1331, 0.1457,
	0.1595, 0.1746, 0.1912, 0.2093, 0.2292, 0.2509, 0.2747, 0.3007,
	0.3292, 0.3604, 0.3946, 0.432, 0.473, 0.5178, 0.5669, 0.6206,
	0.6795, 0.7439, 0.8144, 0.8916, 0.9761, 1.0687, 1.17, 1.2809,
	1.4024, 1.5353, 1.6808, 1.8402, 2.0147, 2.2056, 2.4147, 2.6437,
	2.8943, 3.1687, 3.4691, 3.798, 4.158, 4.5522, 4.9838, 5.4562,
	5.9735, 6.5398, 7.1598, 7.8385, 8.5817, 9.3952, 10.2859, 11.261,
	12.3286, 13.4974, 14.777, 16.1779, 17.7116, 19.3907, 21.2289, 23.2415,
	25.4448, 27.8571, 30.498, 33.3893, 36.5546, 40.0201, 43.8141, 47.9678,
	52.5152, 57.4938, 62.9443, 68.9116, 75.4446, 82.5969, 90.4273, 99.0,
}

// lfoRateTable is the 128-entry nearest-neighbour lookup table backing
// HzToLFORateIndex, 0 .. ~31 Hz.
var lfoRateTable = [128]float64{
	0.0, 0.0526, 0.0553, 0.0582, 0.0612, 0.0644, 0.0677, 0.0713,
	0.075, 0.0789, 0.083, 0.0873, 0.0918, 0.0966, 0.1016, 0.1069,
	0.1124, 0.1182, 0.1244, 0.1308, 0.1376, 0.1448, 0.1523, 0.1602,
	0.1685, 0.1773, 0.1865, 0.1962, 0.2064, 0.2171, 0.2283, 0.2402,
	0.2527, 0.2658, 0.2796, 0.2941, 0.3094, 0.3255, 0.3424, 0.3601,
	0.3788, 0.3985, 0.4192, 0.441, 0.4639, 0.488, 0.5133, 0.54,
	0.568, 0.5975, 0.6285, 0.6612, 0.6955, 0.7316, 0.7696, 0.8096,
	0.8516, 0.8959, 0.9424, 0.9913, 1.0428, 1.097, 1.1539, 1.2139,
	1.2769, 1.3432, 1.413, 1.4864, 1.5635, 1.6447, 1.7301, 1.82,
	1.9145, 2.0139, 2.1185, 2.2285, 2.3443, 2.466, 2.5941, 2.7288,
	2.8705, 3.0196, 3.1764, 3.3413, 3.5148, 3.6974, 3.8894, 4.0914,
	4.3038, 4.5273, 4.7624, 5.0098, 5.2699, 5.5436, 5.8315, 6.1343,
	6.4529, 6.788, 7.1405, 7.5113, 7.9014, 8.3117, 8.7434, 9.1974,
	9.675, 10.1775, 10.706, 11.262, 11.8468, 12.4621, 13.1092, 13.79,
	14.5061, 15.2595, 16.0519, 16.8855, 17.7624, 18.6848, 19.6551, 20.6758,
	21.7496, 22.879, 24.0672, 25.317, 26.6317, 28.0148, 29.4696, 31.0,
}

// TimecentsToSeconds converts an SF2 timecent value to seconds.
// timecents <= -32768 is SF2's "unset/none" sentinel and maps to 0.
func TimecentsToSeconds(timecents int16) float64 {
	if timecents <= -32768 {
		return 0
	}
	return math.Exp2(float64(timecents) / 1200)
}

// CentsToHz converts an SF2 absolute cents value to Hz (used for LFO
// frequency generators, which are expressed relative to 8.176 Hz).
func CentsToHz(cents int16) float64 {
	return 8.176 * math.Exp2(float64(cents)/1200)
}

// nearestIndex returns the index of the table entry closest to v, using
// the table's monotonic order (binary search then compare neighbours).
func nearestIndex(table [128]float64, v float64) uint8 {
	lo, hi := 0, len(table)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if table[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo > 0 && math.Abs(table[lo-1]-v) <= math.Abs(table[lo]-v) {
		return uint8(lo - 1)
	}
	return uint8(lo)
}

// SecondsToTimeIndex quantizes a duration in seconds to the nearest
// 7-bit WFB time-table index.
func SecondsToTimeIndex(seconds float64) uint8 {
	return nearestIndex(timeTable, seconds)
}

// HzToLFORateIndex quantizes a frequency in Hz to the nearest 7-bit WFB
// LFO-rate-table index.
func HzToLFORateIndex(hz float64) uint8 {
	return nearestIndex(lfoRateTable, hz)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CentibelsToLevel implements the standard attenuation-to-level mapping:
// level = clamp(127 - centibels/8, -128, 127).
func CentibelsToLevel(centibels int16) int8 {
	return int8(clampF(127-float64(centibels)/8, -128, 127))
}

// ModEnvSustainToLevel implements the modulation-envelope sustain special
// case: centibels are clamped to [0,1000] before the 127-centibels/8
// mapping, and the result is clamped to [0,127] instead of [-128,127].
func ModEnvSustainToLevel(centibels int16) int8 {
	c := clampF(float64(centibels), 0, 1000)
	return int8(clampF(127-c/8, 0, 127))
}

// PanToWF maps SF2 pan (-500..+500) to a 3-bit WFB pan value (0..7).
func PanToWF(pan int16) uint8 {
	p := clampF(float64(pan), -500, 500)
	return uint8(math.Round((p + 500) * 7 / 1000))
}

// AttenuationToDrumMix maps attenuation centibels to a drum-kit mix
// level: clamp(127 - centibels/5, 0, 127).
func AttenuationToDrumMix(centibels int16) uint8 {
	return uint8(clampF(127-float64(centibels)/5, 0, 127))
}

// CentsToAmount maps a cents value to a signed WFB bias/amount using an
// operator-dependent scale: clamp(cents/scale, -127, 127).
func CentsToAmount(cents int, scale int) int8 {
	return int8(clampI(cents/scale, -127, 127))
}

// FilterCutoffBias implements GenInitialFilterFc's projection:
// clamp((fc - 13500)/100, -127, 127).
func FilterCutoffBias(fc int16) int8 {
	return int8(clampI((int(fc)-13500)/100, -127, 127))
}

// AmplitudeBias implements GenInitialAttenuation's projection:
// clamp(127 - attenuation/5, 0, 127).
func AmplitudeBias(attenuationCentibels int16) uint8 {
	return uint8(clampI(127-int(attenuationCentibels)/5, 0, 127))
}
