package convert

// Report accumulates the per-conversion counters spec.md §7 calls for:
// programs, patches, samples, dedup aliases, resampled samples, dropped
// zones, plus every UnsupportedFeature/SemanticWarning encountered along
// the way. One Report is produced per input file.
type Report struct {
	Programs        int
	Patches         int
	Samples         int
	DedupAliases    int
	Resampled       int
	DroppedZones    int
	DroppedPatches  int
	DroppedSamples  int

	UnsupportedFeatures []UnsupportedFeature
	Warnings            []SemanticWarning
}

func (r *Report) warn(detail string) {
	r.Warnings = append(r.Warnings, SemanticWarning{Detail: detail})
}

func (r *Report) unsupported(detail string) {
	r.UnsupportedFeatures = append(r.UnsupportedFeatures, UnsupportedFeature{Detail: detail})
}
