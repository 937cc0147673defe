package service

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-long-enough-for-hs256-signing"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg), cfg
}

func TestRegisterAndLogin(t *testing.T) {
	svc, cfg := newAuthService(t)

	user, token, err := svc.Register("Ada", "ada@learnhub.test", "s3cret-pass", "")
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	loggedIn, token, err := svc.Login("ada@learnhub.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("Ada", "ada@learnhub.test", "s3cret-pass", "")
	require.NoError(t, err)

	_, _, err = svc.Register("Impostor", "ada@learnhub.test", "other-pass", "")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("Ada", "ada@learnhub.test", "s3cret-pass", "")
	require.NoError(t, err)

	_, _, err = svc.Login("ada@learnhub.test", "wrong-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@learnhub.test", "s3cret-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-long-enough-for-hs256-signing"
	cfg.JWT.ExpireTime = time.Hour
	svc := NewAuthService(users, cfg)

	user, _, err := svc.Register("Ada", "ada@learnhub.test", "s3cret-pass", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("disabled", true).Error)

	_, _, err = svc.Login("ada@learnhub.test", "s3cret-pass")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	user, _, err := svc.Register("Ada", "ada@learnhub.test", "s3cret-pass", model.Teacher)
	require.NoError(t, err)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Teacher, profile.Role)

	_, err = svc.GetProfile(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
