// Command sf2wfb converts SoundFont 2 instrument banks into WaveFront
// Bank (.wfb) files targeting the ICS2115-family sample-playback ASICs
// (Maui, Rio, Tropez, Tropez+). See spec.md §6 for the external CLI
// surface this implements.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("sf2wfb", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: sf2wfb [flags] <input.sf2...>")
		fs.PrintDefaults()
	}

	device := fs.StringP("device", "d", wfb.DeviceMaui, "target device: Maui, Rio, Tropez, TropezPlus")
	drums := fs.StringP("drums", "D", "", "load the drum preset from a separate SF2 file instead of the primary bank")
	patches := fs.StringArrayP("patch", "p", nil, "substitute program/drumkit <id> from <file> (repeatable, file:id)")
	output := fs.StringP("output", "o", "", "output .wfb path (single input only; default mirrors the input name)")
	verbose := fs.BoolP("verbose", "v", false, "print warnings and per-file detail")
	yes := fs.BoolP("yes", "y", false, "skip the viability proceed prompt, always continue")
	noAssess := fs.Bool("no-assess", false, "skip the viability pre-flight entirely")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 1
	}

	inputs, err := expandInputs(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "sf2wfb:", err)
		return 1
	}
	if len(inputs) == 0 {
		fs.Usage()
		return 1
	}
	if *output != "" && len(inputs) > 1 {
		fmt.Fprintln(os.Stderr, "sf2wfb: --output requires exactly one input file")
		return 1
	}

	overrides, err := parsePatchFlags(*patches)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sf2wfb:", err)
		return 1
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	opts := runOptions{
		device:        *device,
		deviceSet:     fs.Changed("device"),
		drumsPath:     *drums,
		patchOverride: overrides,
		output:        *output,
		verbose:       *verbose,
		yes:           *yes,
		noAssess:      *noAssess,
	}

	exit := 0
	for _, in := range inputs {
		if err := processFile(in, opts, log); err != nil {
			log.Error().Err(err).Str("file", in).Msg("conversion failed")
			exit = 1
		}
	}
	return exit
}

// expandInputs glob-expands every positional argument (spec.md §6: glob
// expansion is an out-of-scope collaborator concern, so stdlib's
// path/filepath.Glob is the whole implementation). A pattern matching
// nothing is kept verbatim so a plain non-existent path still surfaces
// the expected "no such file" error later instead of vanishing silently.
func expandInputs(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		matches, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", a, err)
		}
		if len(matches) == 0 {
			out = append(out, a)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}

// outputName implements spec.md §6's naming rule: replace the .sf2
// extension with .wfb, mirroring the input's case pattern character by
// character (SF2->WFB, sf2->wfb, Sf2->Wfb, sF2->wFb, ...).
func outputName(input string) string {
	ext := filepath.Ext(input)
	if len(ext) != 4 || !strings.EqualFold(ext, ".sf2") {
		return strings.TrimSuffix(input, ext) + ".wfb"
	}
	base := input[:len(input)-len(ext)]
	src := ext[1:]
	const dst = "wfb"
	out := make([]byte, 3)
	for i := 0; i < 3; i++ {
		if src[i] >= 'A' && src[i] <= 'Z' {
			out[i] = dst[i] - 'a' + 'A'
		} else {
			out[i] = dst[i]
		}
	}
	return base + "." + string(out)
}
