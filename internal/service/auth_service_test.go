package service

import (
	"testing"
	"time"

	"github.com/samora254/KitabuNew/internal/config"
	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Email:     "wanjiku@kitabu.test",
		Password:  "sup3rsecret",
		FirstName: "Wanjiku",
		LastName:  "Kamau",
	}
	require.NoError(t, svc.Register(user))

	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, "8", user.Grade)
	assert.Equal(t, 1, user.CurrentLevel)
	assert.NotEqual(t, "sup3rsecret", user.Password, "password must be stored hashed")

	token, err := svc.Login("wanjiku@kitabu.test", "sup3rsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first := &model.User{Email: "dup@kitabu.test", Password: "password1"}
	require.NoError(t, svc.Register(first))

	err := svc.Register(&model.User{Email: "dup@kitabu.test", Password: "password2"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Email: "amina@kitabu.test", Password: "correcthorse"}
	require.NoError(t, svc.Register(user))

	_, err := svc.Login("amina@kitabu.test", "wrongpassword")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@kitabu.test", "whatever")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
