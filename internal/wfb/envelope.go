package wfb

// Envelope is the five-stage ADR+release2 envelope shared by a Patch's
// modulation (envelope1) and amplitude (envelope2) stages. Time fields
// are 7-bit WaveFront time-table indices (§ parammap); level fields are
// signed 8-bit WaveFront levels.
type Envelope struct {
	AttackTime   uint8 // 7 bits
	Decay1Time   uint8 // 7 bits
	Decay2Time   uint8 // 7 bits
	SustainTime  uint8 // 7 bits
	ReleaseTime  uint8 // 7 bits
	Release2Time uint8 // 7 bits

	AttackLevel  int8
	Decay1Level  int8
	Decay2Level  int8
	SustainLevel int8
	ReleaseLevel int8

	AttackVelocity uint8 // 7 bits
	VolumeVelocity uint8 // 7 bits
	KeyScale       uint8 // 7 bits
}

const envelopeSize = 14

func (e Envelope) marshal(w *bitWriter) {
	w.writeBits(uint32(e.AttackTime), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.Decay1Time), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.Decay2Time), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.SustainTime), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.ReleaseTime), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.Release2Time), 7)
	w.writeBits(0, 1)
	w.writeSigned(int32(e.AttackLevel), 8)
	w.writeSigned(int32(e.Decay1Level), 8)
	w.writeSigned(int32(e.Decay2Level), 8)
	w.writeSigned(int32(e.SustainLevel), 8)
	w.writeSigned(int32(e.ReleaseLevel), 8)
	w.writeBits(uint32(e.AttackVelocity), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.VolumeVelocity), 7)
	w.writeBits(0, 1)
	w.writeBits(uint32(e.KeyScale), 7)
	w.writeBits(0, 1)
}

func unmarshalEnvelope(r *bitReader) Envelope {
	var e Envelope
	e.AttackTime = uint8(r.readBits(7))
	r.readBits(1)
	e.Decay1Time = uint8(r.readBits(7))
	r.readBits(1)
	e.Decay2Time = uint8(r.readBits(7))
	r.readBits(1)
	e.SustainTime = uint8(r.readBits(7))
	r.readBits(1)
	e.ReleaseTime = uint8(r.readBits(7))
	r.readBits(1)
	e.Release2Time = uint8(r.readBits(7))
	r.readBits(1)
	e.AttackLevel = int8(r.readSigned(8))
	e.Decay1Level = int8(r.readSigned(8))
	e.Decay2Level = int8(r.readSigned(8))
	e.SustainLevel = int8(r.readSigned(8))
	e.ReleaseLevel = int8(r.readSigned(8))
	e.AttackVelocity = uint8(r.readBits(7))
	r.readBits(1)
	e.VolumeVelocity = uint8(r.readBits(7))
	r.readBits(1)
	e.KeyScale = uint8(r.readBits(7))
	r.readBits(1)
	return e
}
