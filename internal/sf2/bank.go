package sf2

import (
	"bytes"
	"fmt"
	"io"
)

// Info holds the handful of INFO-list fields worth surfacing (everything
// else in INFO is cosmetic and ignored per spec). Reading it is optional:
// its absence is not an error.
type Info struct {
	Engine  string
	Name    string
	Product string
	Comment string
	Creator string
}

// Bank is the fully loaded in-memory image of one SF2 file: its Hydra
// tables, its PCM pool, and whatever INFO metadata it carried. It exists
// for the lifetime of one conversion; nothing in Bank is retained once
// convert has copied out what it needs.
type Bank struct {
	Info  Info
	PCM   []int16
	Hydra *Hydra
}

var (
	riffID = chunkID("RIFF")
	listID = chunkID("LIST")
)

// Load parses a complete SF2 (RIFF/sfbk) stream.
func Load(r io.Reader) (*Bank, error) {
	var riff chunk
	if err := riff.expect(r, riffID); err != nil {
		return nil, fmt.Errorf("not a RIFF file: %w", err)
	}

	body := riff.newReader()

	var form [4]byte
	if _, err := io.ReadFull(body, form[:]); err != nil {
		return nil, fmt.Errorf("reading RIFF form type: %w", err)
	}
	if string(form[:]) != "sfbk" {
		return nil, fmt.Errorf("not an SF2 file: form type is %q, want \"sfbk\"", form)
	}

	bank := &Bank{}
	var sawSdta, sawPdta bool

	for {
		var ck chunk
		if err := ck.parse(body); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading top-level chunk: %w", err)
		}

		if ck.id != listID {
			// Unrecognized top-level chunk: skip, per spec.md §4.1.
			continue
		}
		if len(ck.data) < 4 {
			return nil, fmt.Errorf("LIST chunk too short for a type tag")
		}
		listType := string(ck.data[0:4])
		payload := bytes.NewReader(ck.data[4:])

		switch listType {
		case "INFO":
			bank.Info = readInfo(payload)
		case "sdta":
			pcm, err := readSampleData(payload)
			if err != nil {
				return nil, fmt.Errorf("sdta: %w", err)
			}
			bank.PCM = pcm
			sawSdta = true
		case "pdta":
			h, err := readHydra(payload)
			if err != nil {
				return nil, fmt.Errorf("pdta: %w", err)
			}
			bank.Hydra = h
			sawPdta = true
		}
	}

	if !sawPdta {
		return nil, fmt.Errorf("missing required 'pdta' LIST chunk")
	}
	if !sawSdta && bank.Hydra.PresetCount() > 0 {
		return nil, fmt.Errorf("missing required 'sdta' LIST chunk in a non-trivial bank")
	}

	return bank, nil
}

func readInfo(r io.Reader) Info {
	var info Info
	for {
		var ck chunk
		if err := ck.parse(r); err != nil {
			break
		}
		text := nameString(ck.data)
		switch ck.idString() {
		case "isng":
			info.Engine = text
		case "INAM":
			info.Name = text
		case "iprd":
			info.Product = text
		case "ICMT":
			info.Comment = text
		case "ICRD", "IENG":
			if info.Creator == "" {
				info.Creator = text
			}
		}
	}
	return info
}

// DebugDump writes a human-readable summary of the loaded bank's table
// sizes and INFO fields, mirroring the diagnostic dumps the original C
// tool printed (sf2_debug.c is not part of the distilled spec, but the
// information costs nothing to retain since Load already parsed it).
func (b *Bank) DebugDump(w io.Writer) {
	fmt.Fprintf(w, "presets=%d instruments=%d samples=%d pcm=%d engine=%q name=%q\n",
		b.Hydra.PresetCount(), b.Hydra.InstrumentCount(), len(b.Hydra.Samples), len(b.PCM),
		b.Info.Engine, b.Info.Name)
}
