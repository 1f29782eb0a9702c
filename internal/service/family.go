package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"anchor/internal/model"
	"anchor/internal/store"
)

type FamilyService struct {
	recipients store.CareRecipientStore
	members    store.FamilyMemberStore
}

func NewFamilyService(recipients store.CareRecipientStore, members store.FamilyMemberStore) *FamilyService {
	return &FamilyService{recipients: recipients, members: members}
}

func (s *FamilyService) CreateRecipient(ctx context.Context, ownerUserID, name, dateOfBirth string) (*model.CareRecipient, error) {
	r := &model.CareRecipient{
		ID:          uuid.NewString(),
		Name:        name,
		DateOfBirth: dateOfBirth,
		OwnerUserID: ownerUserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.recipients.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("insert care recipient: %w", err)
	}
	return r, nil
}

func (s *FamilyService) RecipientByID(ctx context.Context, id string) (*model.CareRecipient, error) {
	return s.recipients.ByID(ctx, id)
}

func (s *FamilyService) AddMember(ctx context.Context, ownerUserID, name, email, relationship string) (*model.FamilyMember, error) {
	m := &model.FamilyMember{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         name,
		Email:        email,
		Relationship: relationship,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("insert family member: %w", err)
	}
	return m, nil
}

func (s *FamilyService) Members(ctx context.Context, ownerUserID string) ([]model.FamilyMember, error) {
	ms, err := s.members.ByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("query family members: %w", err)
	}
	if ms == nil {
		ms = []model.FamilyMember{}
	}
	return ms, nil
}
