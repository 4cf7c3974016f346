package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sf2wfb/sf2wfb/internal/convert"
	"github.com/sf2wfb/sf2wfb/internal/viability"
	"github.com/sf2wfb/sf2wfb/internal/wfb"
)

// runOptions collects the flags of one sf2wfb invocation that apply to
// every input file it converts.
type runOptions struct {
	device        string
	deviceSet     bool
	drumsPath     string
	patchOverride []convert.ProgramOverride
	output        string
	verbose       bool
	yes           bool
	noAssess      bool
}

// processFile dispatches on the input's extension, per original_source's
// process_file: .sf2 runs the full conversion pipeline; .wfb enters
// retarget mode (when --device was given explicitly) or verification
// mode (print the header/offset info and nothing else). Anything else
// is an unknown file type.
func processFile(path string, opts runOptions, log zerolog.Logger) error {
	switch ext := filepath.Ext(path); {
	case strings.EqualFold(ext, ".sf2"):
		return convertFile(path, opts, log)
	case strings.EqualFold(ext, ".wfb"):
		return handleWFBFile(path, opts)
	default:
		return &convert.FormatError{Detail: fmt.Sprintf("unknown file type %q (expected .sf2 or .wfb)", path)}
	}
}

// handleWFBFile implements the original's "verification or modification
// mode" branch: retarget szSynthName in place when --device is set
// explicitly, otherwise just print the bank's header/offset info.
func handleWFBFile(path string, opts runOptions) error {
	if opts.deviceSet {
		f, err := os.OpenFile(path, os.O_RDWR, 0)
		if err != nil {
			return &convert.IoError{Path: path, Err: err}
		}
		defer f.Close()

		if err := wfb.Retarget(f, opts.device); err != nil {
			return &convert.FormatError{Detail: "retargeting " + path, Err: err}
		}
		fmt.Printf("%s: retargeted to %s\n", path, opts.device)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return &convert.IoError{Path: path, Err: err}
	}
	defer f.Close()

	bank, err := wfb.Read(f)
	if err != nil {
		return &convert.FormatError{Detail: "reading " + path, Err: err}
	}
	bank.PrintInfo(os.Stdout)
	return nil
}

// convertFile runs the full pipeline for one .sf2 input: load, optional
// viability pre-flight, convert, write. Errors are wrapped in the typed
// hierarchy of internal/convert/errors.go so the caller can log and move
// on to the next file, per spec.md §7 ("fatal to the current file").
func convertFile(path string, opts runOptions, log zerolog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return &convert.IoError{Path: path, Err: err}
	}

	bank, err := loadSF2(path)
	if err != nil {
		return err
	}

	if !opts.noAssess {
		report := viability.Assess(bank, path, info.Size())
		if opts.verbose {
			report.PrintVerbose(os.Stdout)
		} else {
			report.PrintSummary(os.Stdout)
		}
		if !opts.yes && !viability.PromptProceed(report, os.Stdin, os.Stdout) {
			log.Info().Str("file", path).Msg("conversion skipped by user")
			return nil
		}
	}

	convOpts := convert.Options{
		Device:    opts.device,
		Overrides: opts.patchOverride,
	}
	if opts.drumsPath != "" {
		drumsBank, err := loadSF2(opts.drumsPath)
		if err != nil {
			return err
		}
		convOpts.Drums = drumsBank
	}

	wfBank, report, err := convert.Convert(bank, convOpts)
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		log.Debug().Str("file", path).Msg(w.Detail)
	}
	for _, u := range report.UnsupportedFeatures {
		log.Debug().Str("file", path).Msg(u.Detail)
	}

	outPath := opts.output
	if outPath == "" {
		outPath = outputName(path)
	}
	if err := writeWFB(outPath, wfBank); err != nil {
		return err
	}

	fmt.Printf("%s -> %s: %d programs, %d patches, %d samples (%d dedup aliases, %d resampled, %d zones dropped)\n",
		path, outPath, report.Programs, len(wfBank.Patches), len(wfBank.Samples),
		report.DedupAliases, report.Resampled, report.DroppedZones)
	return nil
}

func writeWFB(path string, bank *wfb.Bank) error {
	f, err := os.Create(path)
	if err != nil {
		return &convert.IoError{Path: path, Err: err}
	}
	defer f.Close()

	if err := bank.Write(f); err != nil {
		return &convert.IoError{Path: path, Err: err}
	}
	return nil
}
