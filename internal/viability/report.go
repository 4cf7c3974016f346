package viability

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var gradeDescription = map[byte]string{
	'A': "Excellent - minimal loss",
	'B': "Good with minor compromises",
	'C': "Acceptable with quality loss",
	'D': "Poor - significant quality loss",
	'F': "Not recommended",
}

// PrintSummary writes the headline assessment: grade, preset/sample
// budget, layer truncation, size estimate, warnings and suggestions.
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "SF2 conversion assessment: %s\n", r.Filename)
	fmt.Fprintf(w, "grade:              %c (%s)\n", r.Grade, gradeDescription[r.Grade])
	fmt.Fprintf(w, "bank 0 presets:     %d / 128\n", r.Bank0Presets)
	fmt.Fprintf(w, "bank 128 presets:   %d / 1\n", r.Bank128Presets)
	if r.OtherBankPresets > 0 {
		fmt.Fprintf(w, "unused presets:     %d from other banks\n", r.OtherBankPresets)
	}
	fmt.Fprintf(w, "sample budget:      %d / 512\n", r.SamplesAfterTruncation)
	if r.ProgramsWithTruncation > 0 {
		fmt.Fprintf(w, "layer truncation:   %d programs affected (avg %.1f -> %.1f layers)\n",
			r.ProgramsWithTruncation, r.AvgLayersBefore, r.AvgLayersAfter)
	}
	fmt.Fprintf(w, "estimated size:     %.2f MiB (%.0f%% smaller than input)\n",
		float64(r.EstimatedWFBSize)/(1024*1024), r.SizeReductionPct)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nwarnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintln(w, "\nsuggestions:")
		for _, msg := range r.Suggestions {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

// PrintVerbose prints the summary plus the per-program truncation table
// and sample-analysis breakdown.
func (r *Report) PrintVerbose(w io.Writer) {
	r.PrintSummary(w)

	if len(r.TopTruncated) > 0 {
		fmt.Fprintln(w, "\nlayer truncation detail:")
		for _, t := range r.TopTruncated {
			fmt.Fprintf(w, "  %-3d %-16s %2d -> %d (-%d)\n", t.ProgramNum, t.Name, t.LayersBefore, t.LayersAfter, t.LayersLost)
		}
	}

	fmt.Fprintln(w, "\nsample analysis:")
	fmt.Fprintf(w, "  total in SF2:            %d\n", r.TotalSamplesInSF2)
	fmt.Fprintf(w, "  referenced by bank 0/128: %d\n", r.SamplesReferencedByGM)
	fmt.Fprintf(w, "  unused:                  %d\n", r.SamplesUnused)
	fmt.Fprintf(w, "  after layer truncation:  %d / 512\n", r.SamplesAfterTruncation)
}

// PromptProceed asks the user whether to continue past a non-empty
// warning list. No warnings proceeds automatically; bare Enter and any
// unrecognized input also default to yes, matching the original tool's
// permissive prompt.
func PromptProceed(r *Report, in io.Reader, out io.Writer) bool {
	if len(r.Warnings) == 0 {
		return true
	}

	fmt.Fprint(out, "Proceed with conversion? [Y/n]: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	response := strings.TrimSpace(scanner.Text())
	if response == "" {
		return true
	}
	switch response[0] {
	case 'n', 'N':
		return false
	default:
		return true
	}
}
