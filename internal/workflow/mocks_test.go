package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"anchor/internal/model"
	"anchor/internal/schema"
)

// Compile-time checks that the fakes satisfy the API slices.
var (
	_ RecordAPI    = (*fakeRecordAPI)(nil)
	_ HistoryAPI   = (*fakeHistoryAPI)(nil)
	_ DashboardAPI = (*fakeDashboardAPI)(nil)
)

// fakeRecordAPI records every call in order and keeps a single remote
// CareLog, mimicking the record store's merge semantics closely enough
// for controller tests.
type fakeRecordAPI struct {
	mu      sync.Mutex
	calls   []string
	patches []model.CareLogPatch
	remote  *model.CareLog

	createErr error
	todayErr  error
	updateErr error
	submitErr error
}

func (f *fakeRecordAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRecordAPI) Patches() []model.CareLogPatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CareLogPatch(nil), f.patches...)
}

func (f *fakeRecordAPI) CreateCareLog(_ context.Context, recipientID, date string) (*model.CareLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.remote == nil {
		f.remote = &model.CareLog{ID: uuid.NewString(), CareRecipientID: recipientID, LogDate: date}
	}
	out := *f.remote
	return &out, nil
}

func (f *fakeRecordAPI) TodayForRecipient(_ context.Context, _ string) (*model.CareLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "today")
	if f.todayErr != nil {
		return nil, f.todayErr
	}
	out := *f.remote
	return &out, nil
}

func (f *fakeRecordAPI) UpdateCareLog(_ context.Context, _ string, patch model.CareLogPatch) (*model.CareLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "patch")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.patches = append(f.patches, patch)
	if patch.WakeTime != nil {
		f.remote.WakeTime = *patch.WakeTime
	}
	if patch.Mood != nil {
		f.remote.Mood = *patch.Mood
	}
	if patch.DinnerTime != nil {
		f.remote.DinnerTime = *patch.DinnerTime
	}
	out := *f.remote
	return &out, nil
}

func (f *fakeRecordAPI) SubmitSection(_ context.Context, _ string, section schema.Section) (*model.CareLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "submit")
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.remote.CompletedSections == nil {
		f.remote.CompletedSections = map[string]model.SectionSubmission{}
	}
	f.remote.CompletedSections[string(section)] = model.SectionSubmission{SubmittedBy: "maria"}
	out := *f.remote
	return &out, nil
}

type fakeHistoryAPI struct {
	entries []model.AuditEntry
	err     error
}

func (f *fakeHistoryAPI) History(context.Context, string) ([]model.AuditEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.AuditEntry(nil), f.entries...), nil
}

type fakeDashboardAPI struct {
	recipient    *model.CareRecipient
	recipientErr error
	today        *model.CareLog
	todayErr     error
	week         []model.WeekDay
	weekErr      error
}

func (f *fakeDashboardAPI) Recipient(context.Context, string) (*model.CareRecipient, error) {
	return f.recipient, f.recipientErr
}

func (f *fakeDashboardAPI) TodayForRecipient(context.Context, string) (*model.CareLog, error) {
	if f.todayErr != nil {
		return nil, f.todayErr
	}
	return f.today, nil
}

func (f *fakeDashboardAPI) WeekForRecipient(context.Context, string) ([]model.WeekDay, error) {
	if f.weekErr != nil {
		return nil, f.weekErr
	}
	return f.week, nil
}
