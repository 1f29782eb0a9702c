package schema

import "anchor/internal/model"

func strp(s string) *string { return &s }

// PatchFor builds the partial update a section's save carries: only the
// fields the section owns, and only those with a value. Empty sub-objects
// are omitted so a PATCH never clears another section's data.
func PatchFor(s Section, l *model.CareLog) model.CareLogPatch {
	var p model.CareLogPatch
	switch s {
	case Morning:
		if l.WakeTime != "" {
			p.WakeTime = strp(l.WakeTime)
		}
		if l.Mood != "" {
			p.Mood = strp(l.Mood)
		}
		if l.Meals != nil && l.Meals.Breakfast != nil {
			p.Meals = &model.Meals{Breakfast: l.Meals.Breakfast}
		}
		if l.NightSleep != nil {
			p.NightSleep = l.NightSleep
		}
		if len(l.Medications) > 0 {
			ms := l.Medications
			p.Medications = &ms
		}
	case Afternoon:
		if l.Meals != nil && l.Meals.Lunch != nil {
			p.Meals = &model.Meals{Lunch: l.Meals.Lunch}
		}
		if l.Toileting != nil {
			p.Toileting = l.Toileting
		}
		if l.Vitals != nil {
			p.Vitals = l.Vitals
		}
		if len(l.Falls) > 0 {
			fs := l.Falls
			p.Falls = &fs
		}
	case Evening:
		if l.DinnerTime != "" {
			p.DinnerTime = strp(l.DinnerTime)
		}
		if l.BedTime != "" {
			p.BedTime = strp(l.BedTime)
		}
		if l.Meals != nil && l.Meals.Dinner != nil {
			p.Meals = &model.Meals{Dinner: l.Meals.Dinner}
		}
		if l.SafetyChecks != nil {
			p.SafetyChecks = l.SafetyChecks
		}
	case DailySummary:
		if l.DaySummary != "" {
			p.DaySummary = strp(l.DaySummary)
		}
		if l.ConcernsNoted != "" {
			p.ConcernsNoted = strp(l.ConcernsNoted)
		}
		if l.HospitalBag != nil {
			p.HospitalBag = l.HospitalBag
		}
	}
	return p
}
