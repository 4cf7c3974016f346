package sf2

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalSF2 constructs the smallest valid SF2 stream the package
// can load: one preset, one instrument, one mono sample, no INFO chunk.
func buildMinimalSF2(t *testing.T, pcm []int16) []byte {
	t.Helper()

	sdta := new(bytes.Buffer)
	smplBuf := new(bytes.Buffer)
	for _, s := range pcm {
		binary.Write(smplBuf, binary.LittleEndian, s)
	}
	writeChunk(sdta, "smpl", smplBuf.Bytes())

	pdta := new(bytes.Buffer)

	phdr := new(bytes.Buffer)
	writePresetHeader(phdr, "TestPreset", 0, 0, 0)
	writePresetHeader(phdr, "EOP", 0, 0, 1)
	writeChunk(pdta, "phdr", phdr.Bytes())

	pbag := new(bytes.Buffer)
	writeBag(pbag, 0, 0)
	writeBag(pbag, 1, 0)
	writeChunk(pdta, "pbag", pbag.Bytes())

	pmod := new(bytes.Buffer)
	writeChunk(pdta, "pmod", pmod.Bytes())

	pgen := new(bytes.Buffer)
	writeGen(pgen, uint16(GenInstrument), 0)
	writeGen(pgen, uint16(GenEndOper), 0)
	writeChunk(pdta, "pgen", pgen.Bytes())

	inst := new(bytes.Buffer)
	writeInstrument(inst, "TestInst", 0)
	writeInstrument(inst, "EOI", 1)
	writeChunk(pdta, "inst", inst.Bytes())

	ibag := new(bytes.Buffer)
	writeBag(ibag, 0, 0)
	writeBag(ibag, 1, 0)
	writeChunk(pdta, "ibag", ibag.Bytes())

	imod := new(bytes.Buffer)
	writeChunk(pdta, "imod", imod.Bytes())

	igen := new(bytes.Buffer)
	writeGen(igen, uint16(GenSampleID), 0)
	writeGen(igen, uint16(GenEndOper), 0)
	writeChunk(pdta, "igen", igen.Bytes())

	shdr := new(bytes.Buffer)
	writeSampleHeader(shdr, "TestSample", 0, uint32(len(pcm)), 0, 0, 22050)
	writeSampleHeader(shdr, "EOS", 0, 0, 0, 0, 0)
	writeChunk(pdta, "shdr", shdr.Bytes())

	body := new(bytes.Buffer)
	body.WriteString("sfbk")
	writeListChunk(body, "sdta", sdta.Bytes())
	writeListChunk(body, "pdta", pdta.Bytes())

	out := new(bytes.Buffer)
	writeChunk(out, "RIFF", body.Bytes())
	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, id string, data []byte) {
	w.WriteString(id)
	binary.Write(w, binary.LittleEndian, uint32(len(data)))
	w.Write(data)
	if len(data)%2 == 1 {
		w.WriteByte(0)
	}
}

func writeListChunk(w *bytes.Buffer, listType string, payload []byte) {
	inner := new(bytes.Buffer)
	inner.WriteString(listType)
	inner.Write(payload)
	writeChunk(w, "LIST", inner.Bytes())
}

func fixedName(name string) [20]byte {
	var b [20]byte
	copy(b[:], name)
	return b
}

func writePresetHeader(w *bytes.Buffer, name string, preset, bank uint16, bagNdx uint16) {
	n := fixedName(name)
	w.Write(n[:])
	binary.Write(w, binary.LittleEndian, preset)
	binary.Write(w, binary.LittleEndian, bank)
	binary.Write(w, binary.LittleEndian, bagNdx)
	binary.Write(w, binary.LittleEndian, uint32(0))
	binary.Write(w, binary.LittleEndian, uint32(0))
	binary.Write(w, binary.LittleEndian, uint32(0))
}

func writeBag(w *bytes.Buffer, genNdx, modNdx uint16) {
	binary.Write(w, binary.LittleEndian, genNdx)
	binary.Write(w, binary.LittleEndian, modNdx)
}

func writeGen(w *bytes.Buffer, oper uint16, amount int16) {
	binary.Write(w, binary.LittleEndian, oper)
	binary.Write(w, binary.LittleEndian, amount)
}

func writeInstrument(w *bytes.Buffer, name string, bagNdx uint16) {
	n := fixedName(name)
	w.Write(n[:])
	binary.Write(w, binary.LittleEndian, bagNdx)
}

func writeSampleHeader(w *bytes.Buffer, name string, start, end, startLoop, endLoop, rate uint32) {
	n := fixedName(name)
	w.Write(n[:])
	binary.Write(w, binary.LittleEndian, start)
	binary.Write(w, binary.LittleEndian, end)
	binary.Write(w, binary.LittleEndian, startLoop)
	binary.Write(w, binary.LittleEndian, endLoop)
	binary.Write(w, binary.LittleEndian, rate)
	w.WriteByte(60)            // OriginalPitch
	w.WriteByte(0)             // PitchCorrection
	binary.Write(w, binary.LittleEndian, uint16(0)) // SampleLink
	binary.Write(w, binary.LittleEndian, uint16(1)) // SampleType = mono
}

func TestLoadMinimalSF2(t *testing.T) {
	pcm := []int16{100, -200, 300, -400, 32767, -32768}
	data := buildMinimalSF2(t, pcm)

	bank, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, bank.Hydra.PresetCount())
	require.Equal(t, 1, bank.Hydra.InstrumentCount())
	require.Len(t, bank.Hydra.Samples, 2) // 1 real + sentinel
	require.Equal(t, pcm, bank.PCM)
}

func TestLoadRejectsNonRIFF(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not a riff file at all")))
	require.Error(t, err)
}

func TestHydraRanges(t *testing.T) {
	pcm := []int16{1, 2, 3}
	data := buildMinimalSF2(t, pcm)
	bank, err := Load(bytes.NewReader(data))
	require.NoError(t, err)

	start, end := bank.Hydra.PresetBagRange(0)
	require.Equal(t, 0, start)
	require.Equal(t, 1, end)

	gstart, gend := bank.Hydra.PresetGenRange(0)
	require.Equal(t, 0, gstart)
	require.Equal(t, 1, gend)
}
