// Package schema declares the per-section form fields of a daily care log.
// Both the client-side progress evaluator and the server-side
// submit-section validation consume the same declarations, so the two
// notions of "complete" cannot drift.
package schema

import "anchor/internal/model"

type Section string

const (
	Morning      Section = "morning"
	Afternoon    Section = "afternoon"
	Evening      Section = "evening"
	DailySummary Section = "dailySummary"
)

// Sections in day order. TotalSections feeds the completion percentage.
var Sections = []Section{Morning, Afternoon, Evening, DailySummary}

const TotalSections = 4

func Valid(s Section) bool {
	for _, v := range Sections {
		if v == s {
			return true
		}
	}
	return false
}

// Field is one editable input. Present decides binary completeness for a
// snapshot of the record: non-empty string, non-empty slice, or a per-field
// nested presence check. Apply writes a typed value into the draft.
type Field struct {
	Key     string
	Label   string
	Present func(*model.CareLog) bool
	Apply   func(*model.CareLog, any) bool
}

func str(get func(*model.CareLog) *string) (func(*model.CareLog) bool, func(*model.CareLog, any) bool) {
	present := func(l *model.CareLog) bool { return *get(l) != "" }
	apply := func(l *model.CareLog, v any) bool {
		s, ok := v.(string)
		if ok {
			*get(l) = s
		}
		return ok
	}
	return present, apply
}

func mealPresent(get func(*model.Meals) *model.MealEntry) func(*model.CareLog) bool {
	return func(l *model.CareLog) bool {
		if l.Meals == nil {
			return false
		}
		m := get(l.Meals)
		return m != nil && (m.Description != "" || m.Time != "")
	}
}

func mealApply(set func(*model.Meals, *model.MealEntry)) func(*model.CareLog, any) bool {
	return func(l *model.CareLog, v any) bool {
		m, ok := v.(model.MealEntry)
		if !ok {
			if p, pok := v.(*model.MealEntry); pok && p != nil {
				m, ok = *p, true
			}
		}
		if !ok {
			return false
		}
		if l.Meals == nil {
			l.Meals = &model.Meals{}
		}
		set(l.Meals, &m)
		return true
	}
}

var fields = map[string]Field{}

func register(f Field) Field {
	fields[f.Key] = f
	return f
}

func field(key, label string, present func(*model.CareLog) bool, apply func(*model.CareLog, any) bool) Field {
	return register(Field{Key: key, Label: label, Present: present, Apply: apply})
}

func strField(key, label string, get func(*model.CareLog) *string) Field {
	present, apply := str(get)
	return field(key, label, present, apply)
}

var (
	wakeTime   = strField("wakeTime", "Wake Time", func(l *model.CareLog) *string { return &l.WakeTime })
	mood       = strField("mood", "Mood", func(l *model.CareLog) *string { return &l.Mood })
	dinnerTime = strField("dinnerTime", "Dinner Time", func(l *model.CareLog) *string { return &l.DinnerTime })
	bedTime    = strField("bedTime", "Bed Time", func(l *model.CareLog) *string { return &l.BedTime })
	daySummary = strField("daySummary", "Day Summary", func(l *model.CareLog) *string { return &l.DaySummary })
	concerns   = strField("concernsNoted", "Concerns Noted", func(l *model.CareLog) *string { return &l.ConcernsNoted })

	breakfast = field("meals.breakfast", "Breakfast",
		mealPresent(func(m *model.Meals) *model.MealEntry { return m.Breakfast }),
		mealApply(func(m *model.Meals, e *model.MealEntry) { m.Breakfast = e }))
	lunch = field("meals.lunch", "Lunch",
		mealPresent(func(m *model.Meals) *model.MealEntry { return m.Lunch }),
		mealApply(func(m *model.Meals, e *model.MealEntry) { m.Lunch = e }))
	dinner = field("meals.dinner", "Dinner",
		mealPresent(func(m *model.Meals) *model.MealEntry { return m.Dinner }),
		mealApply(func(m *model.Meals, e *model.MealEntry) { m.Dinner = e }))

	nightSleep = field("nightSleep", "Night Sleep",
		func(l *model.CareLog) bool { return l.NightSleep != nil && l.NightSleep.Quality != "" },
		func(l *model.CareLog, v any) bool {
			s, ok := v.(model.NightSleep)
			if ok {
				l.NightSleep = &s
			}
			return ok
		})
	medications = field("medications", "Medications",
		func(l *model.CareLog) bool { return len(l.Medications) > 0 },
		func(l *model.CareLog, v any) bool {
			ms, ok := v.([]model.Medication)
			if ok {
				l.Medications = ms
			}
			return ok
		})
	vitals = field("vitals", "Vitals",
		func(l *model.CareLog) bool { return l.Vitals != nil && l.Vitals.RecordedAt != "" },
		func(l *model.CareLog, v any) bool {
			s, ok := v.(model.Vitals)
			if ok {
				l.Vitals = &s
			}
			return ok
		})
	toileting = field("toileting", "Toileting",
		func(l *model.CareLog) bool { return l.Toileting != nil },
		func(l *model.CareLog, v any) bool {
			s, ok := v.(model.Toileting)
			if ok {
				l.Toileting = &s
			}
			return ok
		})
	falls = field("falls", "Falls",
		func(l *model.CareLog) bool { return len(l.Falls) > 0 },
		func(l *model.CareLog, v any) bool {
			fs, ok := v.([]model.FallEvent)
			if ok {
				l.Falls = fs
			}
			return ok
		})
	safetyChecks = field("safetyChecks", "Safety Checks",
		func(l *model.CareLog) bool { return l.SafetyChecks != nil && l.SafetyChecks.CheckedAt != "" },
		func(l *model.CareLog, v any) bool {
			s, ok := v.(model.SafetyChecks)
			if ok {
				l.SafetyChecks = &s
			}
			return ok
		})
	hospitalBag = field("hospitalBag", "Hospital Bag",
		func(l *model.CareLog) bool { return l.HospitalBag != nil && l.HospitalBag.CheckedAt != "" },
		func(l *model.CareLog, v any) bool {
			s, ok := v.(model.HospitalBag)
			if ok {
				l.HospitalBag = &s
			}
			return ok
		})
)

// required gates the submit action. owned is everything a section's PATCH
// carries, required fields included.
type sectionSpec struct {
	required []Field
	owned    []Field
}

var specs = map[Section]sectionSpec{
	Morning: {
		required: []Field{wakeTime, mood},
		owned:    []Field{wakeTime, mood, breakfast, nightSleep, medications},
	},
	Afternoon: {
		required: []Field{lunch, toileting},
		owned:    []Field{lunch, toileting, vitals, falls},
	},
	Evening: {
		required: []Field{dinnerTime},
		owned:    []Field{dinnerTime, bedTime, dinner, safetyChecks},
	},
	DailySummary: {
		required: []Field{daySummary},
		owned:    []Field{daySummary, concerns, hospitalBag},
	},
}

// Required returns the fixed required-field list for a section.
func Required(s Section) []Field { return specs[s].required }

// Owned returns every field a section edits and persists.
func Owned(s Section) []Field { return specs[s].owned }

// Lookup finds a field by its key, e.g. "meals.lunch".
func Lookup(key string) (Field, bool) {
	f, ok := fields[key]
	return f, ok
}
