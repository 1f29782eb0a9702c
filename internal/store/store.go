// Package store defines the persistence contracts and their GORM/MySQL
// implementations. Services depend on the contracts only, so tests can
// substitute the in-memory implementations under store/memory.
package store

import (
	"context"

	"gorm.io/gorm"

	"anchor/internal/model"
)

// ErrNotFound is returned by every lookup that matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

type CareLogStore interface {
	Create(ctx context.Context, l *model.CareLog) error
	ByID(ctx context.Context, id string) (*model.CareLog, error)
	ByRecipientAndDate(ctx context.Context, recipientID, date string) (*model.CareLog, error)
	// ByRecipientRange returns logs with from <= log_date <= to, date ascending.
	ByRecipientRange(ctx context.Context, recipientID, from, to string) ([]model.CareLog, error)
	Save(ctx context.Context, l *model.CareLog) error
}

type AuditStore interface {
	Append(ctx context.Context, e *model.AuditEntry) error
	// ByCareLog returns entries in chronological ascending order.
	ByCareLog(ctx context.Context, careLogID string) ([]model.AuditEntry, error)
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id string) (*model.User, error)
}

type CaregiverStore interface {
	Create(ctx context.Context, c *model.Caregiver) error
	ByID(ctx context.Context, id string) (*model.Caregiver, error)
	ByUsername(ctx context.Context, username string) (*model.Caregiver, error)
	All(ctx context.Context) ([]model.Caregiver, error)
}

type CareRecipientStore interface {
	Create(ctx context.Context, r *model.CareRecipient) error
	ByID(ctx context.Context, id string) (*model.CareRecipient, error)
}

type FamilyMemberStore interface {
	Create(ctx context.Context, m *model.FamilyMember) error
	ByOwner(ctx context.Context, ownerUserID string) ([]model.FamilyMember, error)
}

type PackListStore interface {
	Create(ctx context.Context, p *model.PackList) error
	ByRecipient(ctx context.Context, recipientID string) ([]model.PackList, error)
	ItemByID(ctx context.Context, listID, itemID string) (*model.PackItem, error)
	SaveItem(ctx context.Context, item *model.PackItem) error
}

// Stores bundles every contract for wiring.
type Stores struct {
	CareLogs   CareLogStore
	Audit      AuditStore
	Users      UserStore
	Caregivers CaregiverStore
	Recipients CareRecipientStore
	Family     FamilyMemberStore
	PackLists  PackListStore
}
