package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.users)), nil }

func newAuthServiceForTest(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*domain.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			Name:         "Admin",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
		},
	}}

	manager := jwt.NewManager("test-secret", time.Hour)
	return NewAuthService(users, manager), users
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	resp, err := svc.Login(&domain.LoginRequest{Email: "admin@example.com", Password: "correct-password"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)

	manager := jwt.NewManager("test-secret", time.Hour)
	claims, err := manager.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Login(&domain.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Login(&domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	user, err := svc.Me("user-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = svc.Me("missing")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
