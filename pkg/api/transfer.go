package api

// ImportResult reports the outcome of one imported record.
type ImportResult struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Error   string `json:"error,omitempty"`
}

// ImportResponse is returned by the import endpoint: one result per candidate
// record, in input order, plus aggregate counts.
type ImportResponse struct {
	Results   []ImportResult `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}
