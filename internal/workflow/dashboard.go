package workflow

import (
	"context"
	"errors"

	"anchor/internal/client"
	"anchor/internal/model"
	"anchor/internal/schema"
)

// DashboardAPI is the slice of the REST client the aggregator needs.
type DashboardAPI interface {
	Recipient(ctx context.Context, id string) (*model.CareRecipient, error)
	TodayForRecipient(ctx context.Context, recipientID string) (*model.CareLog, error)
	WeekForRecipient(ctx context.Context, recipientID string) ([]model.WeekDay, error)
}

// WeekPoint is one day in the family-facing trend series. Days without a
// record keep a nil Log and zeroed figures; they are data points, not
// errors.
type WeekPoint struct {
	Date                 string         `json:"date"`
	Log                  *model.CareLog `json:"log"`
	SectionsDone         int            `json:"sectionsDone"`
	CompletionPercentage int            `json:"completionPercentage"`
	FallCount            int            `json:"fallCount"`
}

// DashboardAggregator merges today's record, the weekly series and
// externally derived alerts into renderable view models. It computes
// nothing about alerts itself; they pass through untouched.
type DashboardAggregator struct {
	api DashboardAPI
}

func NewDashboardAggregator(api DashboardAPI) *DashboardAggregator {
	return &DashboardAggregator{api: api}
}

// DayView composes the family day view. A missing record for today
// yields a view with a nil log and zero completion.
func (a *DashboardAggregator) DayView(ctx context.Context, recipientID string, alerts []model.Alert) (*model.DayView, error) {
	recipient, err := a.api.Recipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	today, err := a.api.TodayForRecipient(ctx, recipientID)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return nil, err
	}

	if alerts == nil {
		alerts = []model.Alert{}
	}
	return &model.DayView{
		CareRecipient:        recipient,
		TodayLog:             today,
		CompletionPercentage: schema.CompletionPercentage(today),
		ActiveAlerts:         alerts,
	}, nil
}

// WeekView always yields seven points, one per day, regardless of how
// many days actually have records.
func (a *DashboardAggregator) WeekView(ctx context.Context, recipientID string) ([]WeekPoint, error) {
	days, err := a.api.WeekForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	points := make([]WeekPoint, 0, len(days))
	for _, d := range days {
		p := WeekPoint{Date: d.Date, Log: d.Log}
		if d.Log != nil {
			p.SectionsDone = len(d.Log.CompletedSections)
			p.CompletionPercentage = schema.CompletionPercentage(d.Log)
			p.FallCount = len(d.Log.Falls)
		}
		points = append(points, p)
	}
	return points, nil
}
