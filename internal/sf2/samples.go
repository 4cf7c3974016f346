package sf2

import "io"

// readSampleData reads the smpl sub-chunk (and tolerates a following sm24
// chunk, which this package ignores — no SF3/24-bit support per Non-goals)
// from r, positioned at the start of the sdta LIST's payload.
func readSampleData(r io.Reader) ([]int16, error) {
	var ck chunk
	if err := ck.expect(r, chunkID("smpl")); err != nil {
		return nil, err
	}

	n := len(ck.data) / 2
	pcm := make([]int16, n)
	for i := 0; i < n; i++ {
		pcm[i] = int16(uint16(ck.data[2*i]) | uint16(ck.data[2*i+1])<<8)
	}

	// Discard any trailing sm24/other sdta sub-chunks; they don't affect
	// 16-bit PCM extraction and are out of scope.
	var rest chunk
	for {
		if err := rest.parse(r); err != nil {
			break
		}
	}

	return pcm, nil
}
