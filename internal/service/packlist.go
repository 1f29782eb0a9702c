package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"anchor/internal/model"
	"anchor/internal/store"
)

type PackListService struct {
	lists store.PackListStore
}

func NewPackListService(lists store.PackListStore) *PackListService {
	return &PackListService{lists: lists}
}

func (s *PackListService) Create(ctx context.Context, recipientID, name string, itemLabels []string) (*model.PackList, error) {
	p := &model.PackList{
		ID:              uuid.NewString(),
		CareRecipientID: recipientID,
		Name:            name,
		CreatedAt:       time.Now().UTC(),
	}
	for _, label := range itemLabels {
		p.Items = append(p.Items, model.PackItem{
			ID:         uuid.NewString(),
			PackListID: p.ID,
			Label:      label,
		})
	}
	if err := s.lists.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("insert pack list: %w", err)
	}
	return p, nil
}

func (s *PackListService) ByRecipient(ctx context.Context, recipientID string) ([]model.PackList, error) {
	ps, err := s.lists.ByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("query pack lists: %w", err)
	}
	if ps == nil {
		ps = []model.PackList{}
	}
	return ps, nil
}

// TogglePacked flips one item's packed state.
func (s *PackListService) TogglePacked(ctx context.Context, listID, itemID string) (*model.PackItem, error) {
	item, err := s.lists.ItemByID(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}
	item.Packed = !item.Packed
	if err := s.lists.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save pack item: %w", err)
	}
	return item, nil
}
