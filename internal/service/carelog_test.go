package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"anchor/internal/model"
	"anchor/internal/schema"
	"anchor/internal/store"
	"anchor/internal/store/memory"
)

func newCareLogService() (*CareLogService, *store.Stores) {
	stores := memory.New()
	return NewCareLogService(stores.CareLogs, stores.Audit), stores
}

func TestCreateOrGetDedupesOnNaturalKey(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()

	first, created, err := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "rec-1", first.CareRecipientID)

	second, created, err := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	history, err := svc.History(ctx, first.ID)
	assert.NoError(t, err)
	if assert.Len(t, history, 1) {
		assert.Equal(t, model.EventCreated, history[0].EventType)
	}
}

func TestCreateOrGetDefaultsToToday(t *testing.T) {
	svc, _ := newCareLogService()
	l, _, err := svc.CreateOrGet(context.Background(), "rec-1", "", "maria")
	assert.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), l.LogDate)
}

func TestPatchLeavesOmittedFieldsUntouched(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()
	l, _, _ := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")

	wake := "07:30"
	mood := "calm"
	_, err := svc.Patch(ctx, l.ID, model.CareLogPatch{WakeTime: &wake, Mood: &mood}, "maria")
	assert.NoError(t, err)

	dinner := "18:30"
	updated, err := svc.Patch(ctx, l.ID, model.CareLogPatch{DinnerTime: &dinner}, "maria")
	assert.NoError(t, err)
	assert.Equal(t, "07:30", updated.WakeTime, "earlier fields survive later patches")
	assert.Equal(t, "calm", updated.Mood)
	assert.Equal(t, "18:30", updated.DinnerTime)
}

func TestPatchMergesMealsPerEntry(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()
	l, _, _ := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")

	_, err := svc.Patch(ctx, l.ID, model.CareLogPatch{
		Meals: &model.Meals{Breakfast: &model.MealEntry{Description: "porridge"}},
	}, "maria")
	assert.NoError(t, err)

	updated, err := svc.Patch(ctx, l.ID, model.CareLogPatch{
		Meals: &model.Meals{Lunch: &model.MealEntry{Description: "soup"}},
	}, "maria")
	assert.NoError(t, err)
	if assert.NotNil(t, updated.Meals.Breakfast) {
		assert.Equal(t, "porridge", updated.Meals.Breakfast.Description)
	}
	if assert.NotNil(t, updated.Meals.Lunch) {
		assert.Equal(t, "soup", updated.Meals.Lunch.Description)
	}
}

func TestPatchUnknownRecord(t *testing.T) {
	svc, _ := newCareLogService()
	_, err := svc.Patch(context.Background(), "nope", model.CareLogPatch{}, "maria")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitSectionValidatesRequiredFields(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()
	l, _, _ := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")

	_, err := svc.SubmitSection(ctx, l.ID, schema.Evening, "maria")
	var incomplete *ErrSectionIncomplete
	if assert.ErrorAs(t, err, &incomplete) {
		assert.Equal(t, []string{"Dinner Time"}, incomplete.Missing)
	}

	dinner := "18:30"
	_, err = svc.Patch(ctx, l.ID, model.CareLogPatch{DinnerTime: &dinner}, "maria")
	assert.NoError(t, err)

	updated, err := svc.SubmitSection(ctx, l.ID, schema.Evening, "maria")
	assert.NoError(t, err)
	sub, ok := updated.CompletedSections["evening"]
	assert.True(t, ok)
	assert.Equal(t, "maria", sub.SubmittedBy)
	assert.False(t, sub.SubmittedAt.IsZero())
}

func TestSubmitSectionUnknownSection(t *testing.T) {
	svc, _ := newCareLogService()
	l, _, _ := svc.CreateOrGet(context.Background(), "rec-1", "2026-08-23", "maria")
	_, err := svc.SubmitSection(context.Background(), l.ID, "midnight", "maria")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestResubmissionAdvancesTimestampAndAppendsAudit(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()
	l, _, _ := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")

	wake, mood := "07:30", "calm"
	_, err := svc.Patch(ctx, l.ID, model.CareLogPatch{WakeTime: &wake, Mood: &mood}, "maria")
	assert.NoError(t, err)

	first, err := svc.SubmitSection(ctx, l.ID, schema.Morning, "maria")
	assert.NoError(t, err)
	firstAt := first.CompletedSections["morning"].SubmittedAt

	time.Sleep(5 * time.Millisecond)
	second, err := svc.SubmitSection(ctx, l.ID, schema.Morning, "maria")
	assert.NoError(t, err)
	secondAt := second.CompletedSections["morning"].SubmittedAt

	assert.True(t, secondAt.After(firstAt), "re-submission must advance submittedAt")
	assert.Len(t, second.CompletedSections, 1, "the key stays single")

	history, err := svc.History(ctx, l.ID)
	assert.NoError(t, err)
	var submits int
	for _, e := range history {
		if e.EventType == model.EventSectionSubmitted {
			submits++
			assert.Equal(t, "morning", e.Section)
		}
	}
	assert.Equal(t, 2, submits, "every submit gets its own audit entry")
}

func TestHistoryChronologicalAscending(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()
	l, _, _ := svc.CreateOrGet(ctx, "rec-1", "2026-08-23", "maria")

	wake := "07:30"
	svc.Patch(ctx, l.ID, model.CareLogPatch{WakeTime: &wake}, "maria")
	mood := "calm"
	svc.Patch(ctx, l.ID, model.CareLogPatch{Mood: &mood}, "maria")

	history, err := svc.History(ctx, l.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, model.EventCreated, history[0].EventType)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt))
	}
}

func TestHistoryUnknownRecord(t *testing.T) {
	svc, _ := newCareLogService()
	_, err := svc.History(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTodayMissingIsNotFound(t *testing.T) {
	svc, _ := newCareLogService()
	_, err := svc.Today(context.Background(), "rec-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWeekPadsMissingDays(t *testing.T) {
	svc, _ := newCareLogService()
	ctx := context.Background()

	// Three of seven days have records.
	for _, date := range []string{"2026-08-17", "2026-08-19", "2026-08-23"} {
		_, _, err := svc.CreateOrGet(ctx, "rec-1", date, "maria")
		assert.NoError(t, err)
	}

	days, err := svc.Week(ctx, "rec-1", "2026-08-23")
	assert.NoError(t, err)
	assert.Len(t, days, 7)
	assert.Equal(t, "2026-08-17", days[0].Date)
	assert.Equal(t, "2026-08-23", days[6].Date)

	var present int
	for _, d := range days {
		if d.Log != nil {
			present++
		}
	}
	assert.Equal(t, 3, present)
	assert.Nil(t, days[1].Log, "missing day is a nil point, not an error")
}
