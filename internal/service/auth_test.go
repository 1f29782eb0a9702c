package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"anchor/internal/store/memory"
)

func newAuthService() *AuthService {
	stores := memory.New()
	return NewAuthService(stores.Users, stores.Caregivers)
}

func TestSignupAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, "ana@example.com", "correct horse battery", "Ana")
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "correct horse battery", u.Password, "password must be stored hashed")

	_, err = svc.Signup(ctx, "ana@example.com", "another pass", "Ana")
	assert.Error(t, err, "duplicate email rejected")

	got, err := svc.Login(ctx, "ana@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateCaregiverGeneratesSixDigitPIN(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	cg, pin, err := svc.CreateCaregiver(ctx, "Maria", "maria", "rec-1")
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), pin)
	assert.NotContains(t, cg.PINHash, pin, "plaintext PIN never stored")

	got, err := svc.CaregiverLogin(ctx, "maria", pin)
	assert.NoError(t, err)
	assert.Equal(t, cg.ID, got.ID)

	// PIN-only login scans the caregiver set.
	got, err = svc.CaregiverLogin(ctx, "", pin)
	assert.NoError(t, err)
	assert.Equal(t, cg.ID, got.ID)

	wrong := "000000"
	if pin == wrong {
		wrong = "000001"
	}
	_, err = svc.CaregiverLogin(ctx, "maria", wrong)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.CaregiverLogin(ctx, "nobody", pin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
