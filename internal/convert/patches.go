package convert

import "github.com/sf2wfb/sf2wfb/internal/wfb"

// PatchTable accumulates a bank-wide patch list, enforcing the 256-entry
// cap (spec.md §3.4 invariant 1) across both the drumkit and melodic
// programs. Processing the drumkit first is what gives it its 47-slot
// reservation (spec.md §4.4 step 7) — nothing more than ordering.
type PatchTable struct {
	Patches []wfb.Patch
	report  *Report
}

// NewPatchTable creates an empty table that reports overflow onto r.
func NewPatchTable(r *Report) *PatchTable {
	return &PatchTable{report: r}
}

// Add appends a new patch and returns its index. ok is false if the table
// is already at capacity, in which case the caller must drop whatever
// layer/drum slot would have referenced it.
func (t *PatchTable) Add(name string, params wfb.PatchParams) (int16, bool) {
	if len(t.Patches) >= wfb.MaxPatches {
		t.report.DroppedPatches++
		return 0, false
	}
	number := int16(len(t.Patches))
	t.Patches = append(t.Patches, wfb.Patch{Number: number, Name: name, Params: params})
	t.report.Patches++
	return number, true
}
