package store

import (
	"context"

	"gorm.io/gorm"

	"anchor/internal/model"
)

// NewGormStores wires every contract to one *gorm.DB.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		CareLogs:   &gormCareLogs{db: db},
		Audit:      &gormAudit{db: db},
		Users:      &gormUsers{db: db},
		Caregivers: &gormCaregivers{db: db},
		Recipients: &gormRecipients{db: db},
		Family:     &gormFamily{db: db},
		PackLists:  &gormPackLists{db: db},
	}
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Caregiver{},
		&model.CareRecipient{},
		&model.FamilyMember{},
		&model.CareLog{},
		&model.AuditEntry{},
		&model.PackList{},
		&model.PackItem{},
	)
}

type gormCareLogs struct{ db *gorm.DB }

func (s *gormCareLogs) Create(ctx context.Context, l *model.CareLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *gormCareLogs) ByID(ctx context.Context, id string) (*model.CareLog, error) {
	var l model.CareLog
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *gormCareLogs) ByRecipientAndDate(ctx context.Context, recipientID, date string) (*model.CareLog, error) {
	var l model.CareLog
	err := s.db.WithContext(ctx).
		Where("care_recipient_id = ? AND log_date = ?", recipientID, date).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *gormCareLogs) ByRecipientRange(ctx context.Context, recipientID, from, to string) ([]model.CareLog, error) {
	var logs []model.CareLog
	err := s.db.WithContext(ctx).
		Where("care_recipient_id = ? AND log_date >= ? AND log_date <= ?", recipientID, from, to).
		Order("log_date").Find(&logs).Error
	return logs, err
}

func (s *gormCareLogs) Save(ctx context.Context, l *model.CareLog) error {
	return s.db.WithContext(ctx).Save(l).Error
}

type gormAudit struct{ db *gorm.DB }

func (s *gormAudit) Append(ctx context.Context, e *model.AuditEntry) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *gormAudit) ByCareLog(ctx context.Context, careLogID string) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	err := s.db.WithContext(ctx).
		Where("care_log_id = ?", careLogID).
		Order("created_at, id").Find(&entries).Error
	return entries, err
}

type gormUsers struct{ db *gorm.DB }

func (s *gormUsers) Create(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *gormUsers) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormUsers) ByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

type gormCaregivers struct{ db *gorm.DB }

func (s *gormCaregivers) Create(ctx context.Context, c *model.Caregiver) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormCaregivers) ByID(ctx context.Context, id string) (*model.Caregiver, error) {
	var c model.Caregiver
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormCaregivers) ByUsername(ctx context.Context, username string) (*model.Caregiver, error) {
	var c model.Caregiver
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormCaregivers) All(ctx context.Context) ([]model.Caregiver, error) {
	var cs []model.Caregiver
	err := s.db.WithContext(ctx).Find(&cs).Error
	return cs, err
}

type gormRecipients struct{ db *gorm.DB }

func (s *gormRecipients) Create(ctx context.Context, r *model.CareRecipient) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *gormRecipients) ByID(ctx context.Context, id string) (*model.CareRecipient, error) {
	var r model.CareRecipient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

type gormFamily struct{ db *gorm.DB }

func (s *gormFamily) Create(ctx context.Context, m *model.FamilyMember) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *gormFamily) ByOwner(ctx context.Context, ownerUserID string) ([]model.FamilyMember, error) {
	var ms []model.FamilyMember
	err := s.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).Find(&ms).Error
	return ms, err
}

type gormPackLists struct{ db *gorm.DB }

func (s *gormPackLists) Create(ctx context.Context, p *model.PackList) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormPackLists) ByRecipient(ctx context.Context, recipientID string) ([]model.PackList, error) {
	var ps []model.PackList
	err := s.db.WithContext(ctx).Preload("Items").
		Where("care_recipient_id = ?", recipientID).Find(&ps).Error
	return ps, err
}

func (s *gormPackLists) ItemByID(ctx context.Context, listID, itemID string) (*model.PackItem, error) {
	var item model.PackItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND pack_list_id = ?", itemID, listID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *gormPackLists) SaveItem(ctx context.Context, item *model.PackItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}
