package schema

import "anchor/internal/model"

// Progress reports required-field completion for one section. Binary
// presence per field, no partial credit.
type Progress struct {
	MissingFields  []string `json:"missingFields"`
	CompletedCount int      `json:"completedCount"`
	TotalRequired  int      `json:"totalRequired"`
	CanSubmit      bool     `json:"canSubmit"`
}

// Evaluate is a pure function of the record snapshot: the same input
// always yields the same output, with no I/O.
func Evaluate(s Section, l *model.CareLog) Progress {
	req := Required(s)
	p := Progress{MissingFields: []string{}, TotalRequired: len(req)}
	for _, f := range req {
		if f.Present(l) {
			p.CompletedCount++
		} else {
			p.MissingFields = append(p.MissingFields, f.Label)
		}
	}
	p.CanSubmit = len(p.MissingFields) == 0
	return p
}

// CompletionPercentage is the share of the day's sections present in
// completedSections, rounded to the nearest integer.
func CompletionPercentage(l *model.CareLog) int {
	if l == nil || len(l.CompletedSections) == 0 {
		return 0
	}
	return (len(l.CompletedSections)*100 + TotalSections/2) / TotalSections
}
