package rider

import (
	"context"
	"testing"

	"fastfast-logistics/apperror"
	"fastfast-logistics/database"
	userModel "fastfast-logistics/models/user"
	"fastfast-logistics/types"
	riderTypes "fastfast-logistics/types/rider"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Service, types.Actor, types.Actor) {
	t.Helper()
	db, err := database.OpenSQLiteMemory("rider_" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	riderUser := userModel.User{Uuid: uuid.NewString(), Email: "rider@example.com", PasswordHash: "x", Role: userModel.RoleRider}
	adminUser := userModel.User{Uuid: uuid.NewString(), Email: "admin@example.com", PasswordHash: "x", Role: userModel.RoleAdmin}
	require.NoError(t, db.Create(&riderUser).Error)
	require.NoError(t, db.Create(&adminUser).Error)

	return NewService(db),
		types.Actor{UserID: riderUser.ID, UUID: riderUser.Uuid, Email: riderUser.Email, Role: riderUser.Role},
		types.Actor{UserID: adminUser.ID, UUID: adminUser.Uuid, Email: adminUser.Email, Role: adminUser.Role}
}

func TestSaveProfileCreatesThenUpdates(t *testing.T) {
	s, rider, admin := setup(t)
	ctx := context.Background()

	_, err := s.Profile(ctx, rider)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	phone := "08051234567"
	r, created, err := s.SaveProfile(ctx, rider, riderTypes.ProfileRequest{Name: " Tunde ", Phone: &phone})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Tunde", r.Name)
	assert.Equal(t, "rider@example.com", r.Email)
	assert.True(t, r.IsAvailable)

	off := false
	r, created, err = s.SaveProfile(ctx, rider, riderTypes.ProfileRequest{Name: "Tunde A.", IsAvailable: &off})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Tunde A.", r.Name)
	assert.False(t, r.IsAvailable)

	got, err := s.Profile(ctx, rider)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	all, err := s.List(ctx, admin, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	available, err := s.List(ctx, admin, true)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestSaveProfileErrors(t *testing.T) {
	s, rider, admin := setup(t)
	ctx := context.Background()

	_, _, err := s.SaveProfile(ctx, admin, riderTypes.ProfileRequest{Name: "Admin"})
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	_, _, err = s.SaveProfile(ctx, rider, riderTypes.ProfileRequest{Name: " "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	bad := "123"
	_, _, err = s.SaveProfile(ctx, rider, riderTypes.ProfileRequest{Name: "Tunde", GuarantorPhone: &bad})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = s.List(ctx, rider, false)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)
}
