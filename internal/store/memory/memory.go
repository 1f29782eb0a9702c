// Package memory holds map-backed implementations of the store contracts.
// They back integration tests and the "memory" database driver used for
// local development without MySQL. Records are deep-copied on the way in
// and out so callers never alias stored state.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"anchor/internal/model"
	"anchor/internal/store"
)

func New() *store.Stores {
	return &store.Stores{
		CareLogs:   &careLogs{logs: map[string]*model.CareLog{}},
		Audit:      &audit{},
		Users:      &users{byID: map[string]*model.User{}},
		Caregivers: &caregivers{byID: map[string]*model.Caregiver{}},
		Recipients: &recipients{byID: map[string]*model.CareRecipient{}},
		Family:     &family{},
		PackLists:  &packLists{},
	}
}

func clone[T any](in *T) *T {
	if in == nil {
		return nil
	}
	data, _ := json.Marshal(in)
	out := new(T)
	_ = json.Unmarshal(data, out)
	return out
}

type careLogs struct {
	mu   sync.Mutex
	logs map[string]*model.CareLog
}

func (s *careLogs) Create(_ context.Context, l *model.CareLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[l.ID] = clone(l)
	return nil
}

func (s *careLogs) ByID(_ context.Context, id string) (*model.CareLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.logs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(l), nil
}

func (s *careLogs) ByRecipientAndDate(_ context.Context, recipientID, date string) (*model.CareLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.logs {
		if l.CareRecipientID == recipientID && l.LogDate == date {
			return clone(l), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *careLogs) ByRecipientRange(_ context.Context, recipientID, from, to string) ([]model.CareLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CareLog
	for _, l := range s.logs {
		if l.CareRecipientID == recipientID && l.LogDate >= from && l.LogDate <= to {
			out = append(out, *clone(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogDate < out[j].LogDate })
	return out, nil
}

func (s *careLogs) Save(_ context.Context, l *model.CareLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[l.ID] = clone(l)
	return nil
}

type audit struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (s *audit) Append(_ context.Context, e *model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *clone(e))
	return nil
}

func (s *audit) ByCareLog(_ context.Context, careLogID string) ([]model.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AuditEntry
	for _, e := range s.entries {
		if e.CareLogID == careLogID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type users struct {
	mu   sync.Mutex
	byID map[string]*model.User
}

func (s *users) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[u.ID] = clone(u)
	return nil
}

func (s *users) ByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *users) ByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(u), nil
}

type caregivers struct {
	mu   sync.Mutex
	byID map[string]*model.Caregiver
}

func (s *caregivers) Create(_ context.Context, c *model.Caregiver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[c.ID] = clone(c)
	return nil
}

func (s *caregivers) ByID(_ context.Context, id string) (*model.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(c), nil
}

func (s *caregivers) ByUsername(_ context.Context, username string) (*model.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byID {
		if c.Username == username {
			return clone(c), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *caregivers) All(_ context.Context) ([]model.Caregiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Caregiver, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, *clone(c))
	}
	return out, nil
}

type recipients struct {
	mu   sync.Mutex
	byID map[string]*model.CareRecipient
}

func (s *recipients) Create(_ context.Context, r *model.CareRecipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[r.ID] = clone(r)
	return nil
}

func (s *recipients) ByID(_ context.Context, id string) (*model.CareRecipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(r), nil
}

type family struct {
	mu      sync.Mutex
	members []model.FamilyMember
}

func (s *family) Create(_ context.Context, m *model.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, *clone(m))
	return nil
}

func (s *family) ByOwner(_ context.Context, ownerUserID string) ([]model.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.FamilyMember
	for _, m := range s.members {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

type packLists struct {
	mu    sync.Mutex
	lists []model.PackList
}

func (s *packLists) Create(_ context.Context, p *model.PackList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, *clone(p))
	return nil
}

func (s *packLists) ByRecipient(_ context.Context, recipientID string) ([]model.PackList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.PackList
	for _, p := range s.lists {
		if p.CareRecipientID == recipientID {
			out = append(out, *clone(&p))
		}
	}
	return out, nil
}

func (s *packLists) ItemByID(_ context.Context, listID, itemID string) (*model.PackItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID != listID {
			continue
		}
		for _, item := range s.lists[i].Items {
			if item.ID == itemID {
				return clone(&item), nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (s *packLists) SaveItem(_ context.Context, item *model.PackItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID != item.PackListID {
			continue
		}
		for j := range s.lists[i].Items {
			if s.lists[i].Items[j].ID == item.ID {
				s.lists[i].Items[j] = *clone(item)
				return nil
			}
		}
	}
	return store.ErrNotFound
}
