// Package workflow holds the caregiver-facing pieces of the daily care
// log: the per-section form controller with debounced autosave, the
// audit history reader and the family dashboard aggregator.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"anchor/internal/client"
	"anchor/internal/logger"
	"anchor/internal/model"
	"anchor/internal/schema"
)

// DefaultDebounce is the quiet period after the last edit before an
// autosave fires.
const DefaultDebounce = 3 * time.Second

// RecordAPI is the slice of the REST client the controller needs.
// *client.Client satisfies it.
type RecordAPI interface {
	CreateCareLog(ctx context.Context, recipientID, date string) (*model.CareLog, error)
	TodayForRecipient(ctx context.Context, recipientID string) (*model.CareLog, error)
	UpdateCareLog(ctx context.Context, id string, patch model.CareLogPatch) (*model.CareLog, error)
	SubmitSection(ctx context.Context, id string, section schema.Section) (*model.CareLog, error)
}

var _ RecordAPI = (*client.Client)(nil)

var ErrUnknownField = errors.New("unknown field")

// SectionController owns one time period's editable fields and mediates
// between local edits and the remote record. Per section the state runs
// Empty -> Draft(unsaved) -> Draft(saved) -> Submitted; a post-submit
// edit keeps the submitted flag, an explicit re-submit refreshes
// submittedAt.
type SectionController struct {
	api         RecordAPI
	section     schema.Section
	recipientID string
	debounce    time.Duration

	// onInvalidate fires after a successful section submit so sibling
	// views drop their cached record.
	onInvalidate func()

	mu          sync.Mutex
	logID       string
	draft       *model.CareLog
	dirty       bool
	submitted   bool
	lastSavedAt time.Time
	lastErr     error
	timer       *time.Timer
}

type Option func(*SectionController)

func WithDebounce(d time.Duration) Option {
	return func(c *SectionController) { c.debounce = d }
}

func WithInvalidate(fn func()) Option {
	return func(c *SectionController) { c.onInvalidate = fn }
}

func NewSectionController(api RecordAPI, section schema.Section, recipientID string, opts ...Option) *SectionController {
	c := &SectionController{
		api:         api,
		section:     section,
		recipientID: recipientID,
		debounce:    DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.draft = c.emptyDraft()
	return c
}

func (c *SectionController) emptyDraft() *model.CareLog {
	return &model.CareLog{
		CareRecipientID: c.recipientID,
		LogDate:         time.Now().Format("2006-01-02"),
	}
}

// Load hydrates the draft from today's record. Any fetch failure,
// including the expected no-record-yet 404, degrades to an empty draft:
// the caregiver is never blocked from starting an entry.
func (c *SectionController) Load(ctx context.Context) {
	l, err := c.api.TodayForRecipient(ctx, c.recipientID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, client.ErrNotFound) {
			logger.Warn("care log load failed, starting empty draft", "section", c.section, "err", err)
		}
		c.logID = ""
		c.draft = c.emptyDraft()
		c.submitted = false
		c.dirty = false
		return
	}
	c.logID = l.ID
	c.draft = l
	_, c.submitted = l.CompletedSections[string(c.section)]
	c.dirty = false
}

// SetField updates local state synchronously and arms the autosave
// timer; a new edit during the quiet period resets it, so a burst of
// edits produces a single PATCH carrying the final snapshot.
func (c *SectionController) SetField(key string, value any) error {
	f, ok := schema.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !f.Apply(c.draft, value) {
		return fmt.Errorf("field %s: unsupported value type %T", key, value)
	}
	c.dirty = true

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.autosave)
	return nil
}

// autosave is quiet: a failure is recorded on LastError and visible only
// through a stale SavedAt. Manual Save remains the loud path.
func (c *SectionController) autosave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return
	}
	if err := c.saveLocked(context.Background()); err != nil {
		logger.Warn("autosave failed", "section", c.section, "err", err)
	}
}

// Save flushes the current draft: create the record first when none
// exists yet, then PATCH only the fields this section owns. On failure
// local state is left unchanged and the error is returned; there is no
// automatic retry.
func (c *SectionController) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	return c.saveLocked(ctx)
}

func (c *SectionController) saveLocked(ctx context.Context) error {
	if c.logID == "" {
		l, err := c.api.CreateCareLog(ctx, c.recipientID, c.draft.LogDate)
		if err != nil {
			c.lastErr = err
			return err
		}
		c.logID = l.ID
	}

	patch := schema.PatchFor(c.section, c.draft)
	if _, err := c.api.UpdateCareLog(ctx, c.logID, patch); err != nil {
		c.lastErr = err
		return err
	}
	c.dirty = false
	c.lastSavedAt = time.Now()
	c.lastErr = nil
	return nil
}

// SubmitSection flushes a save and only then issues the submit call, so
// the submitted snapshot always matches the last edit and never targets
// a record that does not exist yet. The two calls are strictly
// sequential. Validation is the server's job here; the UI disables the
// action while required fields are missing.
func (c *SectionController) SubmitSection(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if err := c.saveLocked(ctx); err != nil {
		return err
	}

	l, err := c.api.SubmitSection(ctx, c.logID, c.section)
	if err != nil {
		c.lastErr = err
		return err
	}
	c.draft.CompletedSections = l.CompletedSections
	c.submitted = true
	if c.onInvalidate != nil {
		c.onInvalidate()
	}
	return nil
}

// Progress evaluates the required fields against the local draft only;
// no network call is involved.
func (c *SectionController) Progress() schema.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return schema.Evaluate(c.section, c.draft)
}

// Close flushes any pending dirty state synchronously, so the last edit
// before navigating away is always persisted rather than abandoned.
func (c *SectionController) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if !c.dirty {
		return nil
	}
	return c.saveLocked(ctx)
}

func (c *SectionController) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

func (c *SectionController) SavedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSavedAt
}

// LastError is the inline-message analogue: mutations never panic, the
// most recent failure is exposed here and cleared by the next success.
func (c *SectionController) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Snapshot returns a copy of the local draft.
func (c *SectionController) Snapshot() model.CareLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.draft
}
