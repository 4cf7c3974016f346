package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sf2wfb/sf2wfb/internal/convert"
	"github.com/sf2wfb/sf2wfb/internal/sf2"
)

// parsePatchFlags parses each repeated --patch file:id argument and
// loads the named SF2 file, producing one convert.ProgramOverride per
// flag. This is SPEC_FULL.md §3.5's supplemented patch-substitution
// feature, recovered from original_source/src/main.c's --patch handling.
func parsePatchFlags(specs []string) ([]convert.ProgramOverride, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	// Avoid opening the same source file twice when --patch is given
	// multiple times against the same donor bank.
	cache := map[string]*sf2.Bank{}
	overrides := make([]convert.ProgramOverride, 0, len(specs))

	for _, spec := range specs {
		path, idStr, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("--patch %q: expected file:id", spec)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil || id < 0 || id > 128 {
			return nil, fmt.Errorf("--patch %q: id must be 0..128", spec)
		}

		bank, ok := cache[path]
		if !ok {
			bank, err = loadSF2(path)
			if err != nil {
				return nil, fmt.Errorf("--patch %q: %w", spec, err)
			}
			cache[path] = bank
		}

		overrides = append(overrides, convert.ProgramOverride{ID: id, Source: bank})
	}
	return overrides, nil
}

func loadSF2(path string) (*sf2.Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &convert.IoError{Path: path, Err: err}
	}
	defer f.Close()

	bank, err := sf2.Load(f)
	if err != nil {
		return nil, &convert.FormatError{Detail: "loading " + path, Err: err}
	}
	return bank, nil
}
