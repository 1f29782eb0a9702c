package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"anchor/internal/client"
	"anchor/internal/model"
	"anchor/internal/schema"
	"anchor/internal/store/memory"
	"anchor/internal/workflow"
)

// testEnv is a full stack: real router and services over in-memory
// stores, exercised through the REST client and workflow packages.
type testEnv struct {
	srv         *httptest.Server
	family      *client.Client
	caregiver   *client.Client
	familyToken string
	recipientID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(NewRouter(memory.New()))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	family := client.New(srv.URL)
	signup, err := family.Signup(ctx, "ana@example.com", "correct horse battery", "Ana")
	assert.NoError(t, err)

	rec, err := family.CreateRecipient(ctx, "Rosa", "1941-03-15")
	assert.NoError(t, err)

	created, err := family.CreateCaregiver(ctx, "Maria", "maria", rec.ID)
	assert.NoError(t, err)
	assert.Len(t, created.PIN, 6)

	caregiver := client.New(srv.URL)
	login, err := caregiver.CaregiverLogin(ctx, "maria", created.PIN)
	assert.NoError(t, err)
	assert.Equal(t, rec.ID, login.Caregiver.CareRecipientID)

	return &testEnv{
		srv:         srv,
		family:      family,
		caregiver:   caregiver,
		familyToken: signup.Token,
		recipientID: rec.ID,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.familyToken)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func TestMorningEditAutosaveRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ctrl := workflow.NewSectionController(env.caregiver, schema.Morning, env.recipientID,
		workflow.WithDebounce(30*time.Millisecond))
	ctrl.Load(ctx)
	assert.False(t, ctrl.Submitted())

	assert.NoError(t, ctrl.SetField("wakeTime", "07:30"))
	assert.NoError(t, ctrl.SetField("mood", "calm"))
	time.Sleep(150 * time.Millisecond)

	// One debounced burst produces exactly one PATCH: the record shows a
	// created event plus a single updated event.
	today, err := env.family.TodayForRecipient(ctx, env.recipientID)
	assert.NoError(t, err)
	assert.Equal(t, "07:30", today.WakeTime)
	assert.Equal(t, "calm", today.Mood)

	history, err := env.family.History(ctx, today.ID)
	assert.NoError(t, err)
	var updates int
	for _, e := range history {
		if e.EventType == model.EventUpdated {
			updates++
		}
	}
	assert.Equal(t, 1, updates)
}

func TestSaveReloadReproducesEveryFieldType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	morning := workflow.NewSectionController(env.caregiver, schema.Morning, env.recipientID,
		workflow.WithDebounce(time.Hour))
	morning.Load(ctx)
	assert.NoError(t, morning.SetField("wakeTime", "07:30"))
	assert.NoError(t, morning.SetField("mood", "calm"))
	assert.NoError(t, morning.SetField("nightSleep", model.NightSleep{Quality: "good", WakeUps: 2, Notes: "one bathroom trip"}))
	assert.NoError(t, morning.SetField("medications", []model.Medication{
		{Name: "donepezil", Dose: "10mg", Time: "08:00", Given: true},
		{Name: "lisinopril", Dose: "5mg", Time: "08:00", Given: false},
	}))
	assert.NoError(t, morning.SetField("meals.breakfast", model.MealEntry{Time: "08:15", Description: "porridge", AmountEaten: "all"}))
	assert.NoError(t, morning.Save(ctx))

	afternoon := workflow.NewSectionController(env.caregiver, schema.Afternoon, env.recipientID,
		workflow.WithDebounce(time.Hour))
	afternoon.Load(ctx)
	assert.NoError(t, afternoon.SetField("toileting", model.Toileting{BowelMovements: 1, UrinationNormal: true}))
	assert.NoError(t, afternoon.SetField("vitals", model.Vitals{Temperature: 36.8, SystolicBP: 128, DiastolicBP: 82, HeartRate: 71, OxygenSat: 97, RecordedAt: "14:00"}))
	assert.NoError(t, afternoon.SetField("falls", []model.FallEvent{{OccurredAt: "13:20", Location: "garden", Injured: false}}))
	assert.NoError(t, afternoon.Save(ctx))

	reloaded := workflow.NewSectionController(env.caregiver, schema.Morning, env.recipientID,
		workflow.WithDebounce(time.Hour))
	reloaded.Load(ctx)
	snap := reloaded.Snapshot()

	assert.Equal(t, "07:30", snap.WakeTime)
	assert.Equal(t, "calm", snap.Mood)
	if assert.NotNil(t, snap.NightSleep) {
		assert.Equal(t, 2, snap.NightSleep.WakeUps)
		assert.Equal(t, "good", snap.NightSleep.Quality)
	}
	if assert.Len(t, snap.Medications, 2) {
		assert.True(t, snap.Medications[0].Given)
		assert.False(t, snap.Medications[1].Given)
	}
	if assert.NotNil(t, snap.Meals) && assert.NotNil(t, snap.Meals.Breakfast) {
		assert.Equal(t, "porridge", snap.Meals.Breakfast.Description)
	}
	// The afternoon save did not clobber morning data, and vice versa.
	if assert.NotNil(t, snap.Vitals) {
		assert.Equal(t, 36.8, snap.Vitals.Temperature)
	}
	if assert.Len(t, snap.Falls, 1) {
		assert.Equal(t, "garden", snap.Falls[0].Location)
	}
}

func TestSubmitThenResubmitAdvancesAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ctrl := workflow.NewSectionController(env.caregiver, schema.Morning, env.recipientID,
		workflow.WithDebounce(time.Hour))
	ctrl.Load(ctx)
	assert.NoError(t, ctrl.SetField("wakeTime", "07:30"))
	assert.NoError(t, ctrl.SetField("mood", "calm"))
	assert.NoError(t, ctrl.SubmitSection(ctx))
	assert.True(t, ctrl.Submitted())

	today, err := env.family.TodayForRecipient(ctx, env.recipientID)
	assert.NoError(t, err)
	first, ok := today.CompletedSections["morning"]
	assert.True(t, ok)
	assert.Equal(t, "Maria", first.SubmittedBy)

	before, err := workflow.NewHistoryReader(env.family).Read(ctx, today.ID)
	assert.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.NoError(t, ctrl.SetField("wakeTime", "08:00"))
	assert.True(t, ctrl.Submitted(), "post-submit edit keeps the flag")
	assert.NoError(t, ctrl.SubmitSection(ctx))

	today, err = env.family.TodayForRecipient(ctx, env.recipientID)
	assert.NoError(t, err)
	assert.Equal(t, "08:00", today.WakeTime)
	second := today.CompletedSections["morning"]
	assert.True(t, second.SubmittedAt.After(first.SubmittedAt))
	assert.Len(t, today.CompletedSections, 1)

	after, err := workflow.NewHistoryReader(env.family).Read(ctx, today.ID)
	assert.NoError(t, err)
	var newSubmits int
	for _, e := range after[len(before):] {
		if e.EventType == model.EventSectionSubmitted {
			newSubmits++
			assert.Equal(t, "morning", e.Section)
		}
	}
	assert.Equal(t, 1, newSubmits, "re-submission appends exactly one section_submitted entry")
}

func TestSubmitIncompleteSectionRejectedServerSide(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l, err := env.caregiver.CreateCareLog(ctx, env.recipientID, "")
	assert.NoError(t, err)

	_, err = env.caregiver.SubmitSection(ctx, l.ID, schema.Evening)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "Dinner Time")
}

func TestTodayMissingRecordIs404(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.family.TodayForRecipient(context.Background(), env.recipientID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	_, err = env.caregiver.TodayForCaregiver(context.Background())
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestWeekViewSparseDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	today := time.Now()
	for _, back := range []int{0, 2, 5} {
		date := today.AddDate(0, 0, -back).Format("2006-01-02")
		_, err := env.caregiver.CreateCareLog(ctx, env.recipientID, date)
		assert.NoError(t, err)
	}

	points, err := workflow.NewDashboardAggregator(env.family).WeekView(ctx, env.recipientID)
	assert.NoError(t, err)
	assert.Len(t, points, 7)

	var present int
	for _, p := range points {
		if p.Log != nil {
			present++
		}
	}
	assert.Equal(t, 3, present, "missing days render as empty points, not errors")
}

func TestDayViewEndpointAndAggregator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ctrl := workflow.NewSectionController(env.caregiver, schema.Evening, env.recipientID,
		workflow.WithDebounce(time.Hour))
	ctrl.Load(ctx)
	assert.NoError(t, ctrl.SetField("dinnerTime", "18:30"))
	assert.NoError(t, ctrl.SubmitSection(ctx))

	view, err := workflow.NewDashboardAggregator(env.family).DayView(ctx, env.recipientID, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Rosa", view.CareRecipient.Name)
	assert.Equal(t, 25, view.CompletionPercentage)

	resp, body := env.do(t, "GET", "/api/dashboard/recipient/"+env.recipientID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var served model.DayView
	assert.NoError(t, json.Unmarshal(body, &served))
	assert.Equal(t, view.CompletionPercentage, served.CompletionPercentage)
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	anon := client.New(env.srv.URL)
	_, err := anon.TodayForRecipient(context.Background(), env.recipientID)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestCreateCareLogDedupe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.caregiver.CreateCareLog(ctx, env.recipientID, "2026-08-23")
	assert.NoError(t, err)
	second, err := env.caregiver.CreateCareLog(ctx, env.recipientID, "2026-08-23")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "one record per recipient per date")
}

func TestPackListsAndFamilyMembers(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/pack-lists", model.CreatePackListRequest{
		CareRecipientID: env.recipientID,
		Name:            "Hospital bag",
		Items:           []string{"medication list", "insurance card", "pajamas"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var list model.PackList
	assert.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 3)

	resp, body = env.do(t, "PATCH",
		fmt.Sprintf("/api/pack-lists/%s/items/%s", list.ID, list.Items[0].ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var item model.PackItem
	assert.NoError(t, json.Unmarshal(body, &item))
	assert.True(t, item.Packed)

	resp, body = env.do(t, "GET", "/api/pack-lists?recipient_id="+env.recipientID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var lists []model.PackList
	assert.NoError(t, json.Unmarshal(body, &lists))
	assert.Len(t, lists, 1)

	resp, _ = env.do(t, "POST", "/api/family-members", model.CreateFamilyMemberRequest{
		Name: "Tomas", Email: "tomas@example.com", Relationship: "son",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = env.do(t, "GET", "/api/family-members", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var members []model.FamilyMember
	assert.NoError(t, json.Unmarshal(body, &members))
	assert.Len(t, members, 1)
}
