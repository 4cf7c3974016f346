// Package wfb implements the on-disk WaveFront Bank (.wfb) binary format
// targeted at the ICS2115-family sample-playback ASICs (Maui, Rio,
// Tropez, Tropez+): fixed-capacity program/patch/sample tables, LSB-first
// bit-packed envelope/LFO/patch descriptors, and a content-addressed
// embedded sample pool.
package wfb

const (
	NumLayers     = 4
	NumMIDIKeys   = 128
	NameLength    = 32
	MaxComment    = 64
	MaxPathLength = 260

	Version = 120 // 1.20

	MaxPrograms = 128
	MaxPatches  = 256
	MaxSamples  = 512

	headerReservedSize = 88 // pads WaveFrontFileHeader to the canonical 256 bytes
	headerSize         = 256
)

// Channel identifies which half of a stereo pair (if any) a sample entry
// carries.
type Channel uint32

const (
	ChannelMono Channel = iota
	ChannelLeft
	ChannelRight
)

// SampleKind is the sample-entry discriminator (nSampleType on disk).
type SampleKind int16

const (
	KindSample      SampleKind = 0
	KindMultisample SampleKind = 1
	KindAlias       SampleKind = 2
	KindEmpty       SampleKind = 127
)

// SampleFormat is the on-device PCM encoding. This implementation only
// ever emits Linear16Bit; the others are recognized for completeness of
// the type but never produced (no SF3/compressed-sample support).
type SampleFormat uint8

const (
	Linear16Bit SampleFormat = 0
	WhiteNoise  SampleFormat = 1
	Linear8Bit  SampleFormat = 2
	Mulaw8Bit   SampleFormat = 3
)

// Device names and their sample-memory budgets in bytes.
const (
	DeviceMaui      = "Maui"
	DeviceRio       = "Rio"
	DeviceTropez    = "Tropez"
	DeviceTropezPlus = "TropezPlus"
)

var deviceMemoryLimits = map[string]uint32{
	DeviceMaui:       8650752,
	DeviceRio:        4 * 1024 * 1024,
	DeviceTropez:     8650752,
	DeviceTropezPlus: 12845056,
}

// DeviceMemoryLimit returns the sample-RAM budget for a device name, and
// whether the name was recognized.
func DeviceMemoryLimit(name string) (uint32, bool) {
	limit, ok := deviceMemoryLimits[name]
	return limit, ok
}

// IsValidDevice reports whether name is one of the four known targets.
func IsValidDevice(name string) bool {
	_, ok := deviceMemoryLimits[name]
	return ok
}
