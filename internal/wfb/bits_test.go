package wfb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWriterReaderRoundTrip(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(5, 3)
	w.writeBits(1, 1)
	w.writeBits(0x1ABCD, 20) // crosses several byte boundaries
	w.writeSigned(-1, 8)
	w.writeSigned(-100, 8)
	w.writeBits(0xFF, 8)

	r := newBitReader(w.Bytes())
	require.EqualValues(t, 5, r.readBits(3))
	require.EqualValues(t, 1, r.readBits(1))
	require.EqualValues(t, 0x1ABCD, r.readBits(20))
	require.EqualValues(t, -1, r.readSigned(8))
	require.EqualValues(t, -100, r.readSigned(8))
	require.EqualValues(t, 0xFF, r.readBits(8))
}

func TestBitWriterByteAlignedWholeBytes(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0x12, 8)
	w.writeBits(0x34, 8)
	require.Equal(t, []byte{0x12, 0x34}, w.Bytes())
}

func TestSignExtend(t *testing.T) {
	require.EqualValues(t, -1, signExtend(0xF, 4))
	require.EqualValues(t, 7, signExtend(0x7, 4))
	require.EqualValues(t, -8, signExtend(0x8, 4))
}
