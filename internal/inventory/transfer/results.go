package transfer

// Result reports the outcome of one imported record. An import always yields
// exactly one Result per candidate, in input order.
type Result struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Error   string `json:"error,omitempty"`
}

// Summary aggregates the results of one import operation.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize counts successes and failures. Pure aggregation, no other state.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Total returns the number of processed records.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}

// NothingImported reports whether no record made it into the inventory.
// Callers use this to raise a warning instead of a success notice.
func (s Summary) NothingImported() bool {
	return s.Succeeded == 0
}

// Partial reports whether the batch had both successes and failures.
func (s Summary) Partial() bool {
	return s.Succeeded > 0 && s.Failed > 0
}
