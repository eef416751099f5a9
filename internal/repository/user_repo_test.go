package repository_test

import (
	"testing"

	"mall-pos/internal/model"
	"mall-pos/internal/repository"
	"mall-pos/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_SetActive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	other := testutil.SeedMall(t, db, "MALL02", "secret2")
	user := testutil.SeedUser(t, db, mall.ID, "cashier1", "pass123", model.RoleCashier)

	require.NoError(t, repo.SetActive(mall.ID, user.ID, false))

	got, err := repo.FindByID(mall.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	count, err := repo.CountActiveByMall(mall.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.SetActive(other.ID, user.ID, true), repository.ErrNotFound)
	assert.ErrorIs(t, repo.SetActive(mall.ID, uuid.New(), true), repository.ErrNotFound)
}

func TestUserRepo_FindByID_ScopedToMall(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")
	other := testutil.SeedMall(t, db, "MALL02", "secret2")
	user := testutil.SeedUser(t, db, mall.ID, "cashier1", "pass123", model.RoleCashier)

	_, err := repo.FindByID(other.ID, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	users, err := repo.FindAllByMall(other.ID)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMallRepo_FindByCode(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewMallRepo(db)

	mall := testutil.SeedMall(t, db, "MALL01", "secret1")

	got, err := repo.FindByCode("MALL01")
	require.NoError(t, err)
	assert.Equal(t, mall.ID, got.ID)
	assert.True(t, got.CheckPassword("secret1"))

	_, err = repo.FindByCode("NOPE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
