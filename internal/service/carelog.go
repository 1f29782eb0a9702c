package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"anchor/internal/logger"
	"anchor/internal/model"
	"anchor/internal/schema"
	"anchor/internal/store"
)

// ErrSectionIncomplete is returned when a submit-section request fails
// required-field validation against the stored record.
type ErrSectionIncomplete struct {
	Section string
	Missing []string
}

func (e *ErrSectionIncomplete) Error() string {
	return fmt.Sprintf("section %s incomplete: missing %s", e.Section, strings.Join(e.Missing, ", "))
}

var ErrUnknownSection = errors.New("unknown section")

type CareLogService struct {
	logs  store.CareLogStore
	audit store.AuditStore
}

func NewCareLogService(logs store.CareLogStore, audit store.AuditStore) *CareLogService {
	return &CareLogService{logs: logs, audit: audit}
}

// CreateOrGet returns the record for (recipient, date), creating it when
// absent. The (recipient, date) pair is the natural key: a second create
// for the same day hands back the existing row instead of failing.
func (s *CareLogService) CreateOrGet(ctx context.Context, recipientID, date, actor string) (*model.CareLog, bool, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	existing, err := s.logs.ByRecipientAndDate(ctx, recipientID, date)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("query care log: %w", err)
	}

	l := &model.CareLog{
		ID:              uuid.NewString(),
		CareRecipientID: recipientID,
		LogDate:         date,
	}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, false, fmt.Errorf("insert care log: %w", err)
	}
	s.appendAudit(ctx, l.ID, model.EventCreated, "", actor)
	return l, true, nil
}

// Patch applies a partial update: nil patch fields leave the stored value
// untouched. Within meals, the breakfast/lunch/dinner/snacks sub-entries
// merge individually so one section's save never clears another's meal.
// Last write wins; there is no version check.
func (s *CareLogService) Patch(ctx context.Context, id string, p model.CareLogPatch, actor string) (*model.CareLog, error) {
	l, err := s.logs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(l, p)
	if err := s.logs.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save care log: %w", err)
	}
	s.appendAudit(ctx, l.ID, model.EventUpdated, "", actor)
	return l, nil
}

func applyPatch(l *model.CareLog, p model.CareLogPatch) {
	if p.WakeTime != nil {
		l.WakeTime = *p.WakeTime
	}
	if p.Mood != nil {
		l.Mood = *p.Mood
	}
	if p.DinnerTime != nil {
		l.DinnerTime = *p.DinnerTime
	}
	if p.BedTime != nil {
		l.BedTime = *p.BedTime
	}
	if p.DaySummary != nil {
		l.DaySummary = *p.DaySummary
	}
	if p.ConcernsNoted != nil {
		l.ConcernsNoted = *p.ConcernsNoted
	}
	if p.Meals != nil {
		if l.Meals == nil {
			l.Meals = &model.Meals{}
		}
		if p.Meals.Breakfast != nil {
			l.Meals.Breakfast = p.Meals.Breakfast
		}
		if p.Meals.Lunch != nil {
			l.Meals.Lunch = p.Meals.Lunch
		}
		if p.Meals.Dinner != nil {
			l.Meals.Dinner = p.Meals.Dinner
		}
		if len(p.Meals.Snacks) > 0 {
			l.Meals.Snacks = p.Meals.Snacks
		}
	}
	if p.NightSleep != nil {
		l.NightSleep = p.NightSleep
	}
	if p.Medications != nil {
		l.Medications = *p.Medications
	}
	if p.Vitals != nil {
		l.Vitals = p.Vitals
	}
	if p.Toileting != nil {
		l.Toileting = p.Toileting
	}
	if p.Falls != nil {
		l.Falls = *p.Falls
	}
	if p.SafetyChecks != nil {
		l.SafetyChecks = p.SafetyChecks
	}
	if p.HospitalBag != nil {
		l.HospitalBag = p.HospitalBag
	}
}

// SubmitSection validates the section's required fields against the stored
// record, then marks it submitted. Re-submission overwrites submittedAt and
// submittedBy but the completedSections key stays present either way. Every
// call appends its own section_submitted audit entry.
func (s *CareLogService) SubmitSection(ctx context.Context, id string, section schema.Section, actor string) (*model.CareLog, error) {
	if !schema.Valid(section) {
		return nil, ErrUnknownSection
	}

	l, err := s.logs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	progress := schema.Evaluate(section, l)
	if !progress.CanSubmit {
		return nil, &ErrSectionIncomplete{Section: string(section), Missing: progress.MissingFields}
	}

	if l.CompletedSections == nil {
		l.CompletedSections = map[string]model.SectionSubmission{}
	}
	l.CompletedSections[string(section)] = model.SectionSubmission{
		SubmittedAt: time.Now().UTC(),
		SubmittedBy: actor,
	}
	if err := s.logs.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save care log: %w", err)
	}
	s.appendAudit(ctx, l.ID, model.EventSectionSubmitted, string(section), actor)
	return l, nil
}

// Today returns the recipient's record for the current date, or
// store.ErrNotFound — an expected state, not a failure.
func (s *CareLogService) Today(ctx context.Context, recipientID string) (*model.CareLog, error) {
	return s.logs.ByRecipientAndDate(ctx, recipientID, time.Now().Format("2006-01-02"))
}

// Week returns exactly seven points ending at endDate (today when empty).
// Days without a record carry a nil Log.
func (s *CareLogService) Week(ctx context.Context, recipientID, endDate string) ([]model.WeekDay, error) {
	end, err := time.Parse("2006-01-02", endDate)
	if endDate == "" || err != nil {
		end = time.Now()
	}
	start := end.AddDate(0, 0, -6)

	logs, err := s.logs.ByRecipientRange(ctx, recipientID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query week: %w", err)
	}

	byDate := make(map[string]*model.CareLog, len(logs))
	for i := range logs {
		byDate[logs[i].LogDate] = &logs[i]
	}

	days := make([]model.WeekDay, 0, 7)
	for d := 0; d < 7; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		days = append(days, model.WeekDay{Date: date, Log: byDate[date]})
	}
	return days, nil
}

// History returns the record's audit entries, oldest first.
func (s *CareLogService) History(ctx context.Context, id string) ([]model.AuditEntry, error) {
	if _, err := s.logs.ByID(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.audit.ByCareLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	return entries, nil
}

// Audit failures never fail the mutation they describe.
func (s *CareLogService) appendAudit(ctx context.Context, careLogID, eventType, section, actor string) {
	err := s.audit.Append(ctx, &model.AuditEntry{
		ID:        uuid.NewString(),
		CareLogID: careLogID,
		EventType: eventType,
		Section:   section,
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("audit append failed", "care_log_id", careLogID, "event", eventType, "err", err)
	}
}
