package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"anchor/internal/model"
	"anchor/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users      store.UserStore
	caregivers store.CaregiverStore
}

func NewAuthService(users store.UserStore, caregivers store.CaregiverStore) *AuthService {
	return &AuthService{users: users, caregivers: caregivers}
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*model.User, error) {
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hash),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CaregiverLogin checks a 6-digit PIN. With a username the lookup is
// direct; without one every caregiver's hash is compared, which is fine
// for the handful of caregivers a family onboards.
func (s *AuthService) CaregiverLogin(ctx context.Context, username, pin string) (*model.Caregiver, error) {
	if username != "" {
		c, err := s.caregivers.ByUsername(ctx, username)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(c.PINHash), []byte(pin)) != nil {
			return nil, ErrInvalidCredentials
		}
		return c, nil
	}

	all, err := s.caregivers.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query caregivers: %w", err)
	}
	for i := range all {
		if bcrypt.CompareHashAndPassword([]byte(all[i].PINHash), []byte(pin)) == nil {
			return &all[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// CreateCaregiver generates a random 6-digit PIN, stores its bcrypt hash
// and returns the plaintext exactly once.
func (s *AuthService) CreateCaregiver(ctx context.Context, name, username, recipientID string) (*model.Caregiver, string, error) {
	pin, err := generatePIN()
	if err != nil {
		return nil, "", fmt.Errorf("generate pin: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash pin: %w", err)
	}
	c := &model.Caregiver{
		ID:              uuid.NewString(),
		Username:        username,
		PINHash:         string(hash),
		Name:            name,
		CareRecipientID: recipientID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.caregivers.Create(ctx, c); err != nil {
		return nil, "", fmt.Errorf("insert caregiver: %w", err)
	}
	return c, pin, nil
}

func (s *AuthService) CaregiverByID(ctx context.Context, id string) (*model.Caregiver, error) {
	return s.caregivers.ByID(ctx, id)
}

func generatePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
