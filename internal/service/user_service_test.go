package service

import (
	"testing"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db), nil)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	svc := newUserService(db)

	updated, err := svc.UpdateProfile(user.ID, UpdateProfileRequest{FirstName: "Zawadi"})
	require.NoError(t, err)
	assert.Equal(t, "Zawadi", updated.FirstName)
	assert.Equal(t, user.LastName, updated.LastName, "empty fields are left alone")
	assert.Equal(t, "8", updated.Grade)
}

func TestProfileUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, err := svc.Profile(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	for _, xp := range []int{100, 300, 200} {
		user := createUser(t, db)
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
			Update("total_xp", xp).Error)
	}

	top, err := svc.Leaderboard(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 300, top[0].TotalXP)
	assert.Equal(t, 200, top[1].TotalXP)
}
