package service

import (
	"testing"

	"mall-pos/internal/model"
	"mall-pos/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterMall(t *testing.T) {
	f := newFixture(t)

	req := &RegisterMallRequest{MallName: "Central", MallCode: "MALL01", Password: "secret1", Location: "Downtown"}
	mall, err := f.auth.RegisterMall(req)
	require.NoError(t, err)
	assert.Equal(t, "MALL01", mall.MallCode)
	assert.NotEqual(t, "secret1", mall.Password)
	assert.True(t, mall.CheckPassword("secret1"))

	_, err = f.auth.RegisterMall(req)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.auth.RegisterMall(&RegisterMallRequest{MallName: "Short", MallCode: "MALL02", Password: "123"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuth_MallLoginAndSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.RegisterMall(&RegisterMallRequest{MallName: "Central", MallCode: "MALL01", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.auth.LoginMall("MALL01", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.LoginMall("NOPE", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := f.auth.LoginMall("MALL01", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, model.RoleAdmin, res.Session.Role)
	assert.Nil(t, res.Session.UserID)

	identity, err := f.auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session.MallID, identity.MallID)
	assert.Equal(t, "Central", identity.MallName)
	assert.True(t, identity.IsAdmin())

	_, err = f.auth.Authenticate("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_UserLogin(t *testing.T) {
	f := newFixture(t)

	mall := testutil.SeedMall(t, f.db, "MALL01", "secret1")
	cashier := testutil.SeedUser(t, f.db, mall.ID, "cashier1", "pass123", model.RoleCashier)

	res, err := f.auth.LoginUser("cashier1", "pass123")
	require.NoError(t, err)
	require.NotNil(t, res.Session.UserID)
	assert.Equal(t, cashier.ID, *res.Session.UserID)
	assert.Equal(t, model.RoleCashier, res.Session.Role)
	assert.Equal(t, mall.ID, res.Session.MallID)

	identity, err := f.auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.False(t, identity.IsAdmin())

	_, err = f.auth.LoginUser("cashier1", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.LoginUser("ghost", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_InactiveUserIsLockedOut(t *testing.T) {
	f := newFixture(t)

	mall := testutil.SeedMall(t, f.db, "MALL01", "secret1")
	cashier := testutil.SeedUser(t, f.db, mall.ID, "cashier1", "pass123", model.RoleCashier)

	res, err := f.auth.LoginUser("cashier1", "pass123")
	require.NoError(t, err)

	require.NoError(t, f.users.SetActive(mall.ID, cashier.ID, false))

	_, err = f.auth.LoginUser("cashier1", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_LogoutRevokesToken(t *testing.T) {
	f := newFixture(t)

	mall := testutil.SeedMall(t, f.db, "MALL01", "secret1")
	testutil.SeedUser(t, f.db, mall.ID, "cashier1", "pass123", model.RoleCashier)

	owner, err := f.auth.LoginMall("MALL01", "secret1")
	require.NoError(t, err)
	staff, err := f.auth.LoginUser("cashier1", "pass123")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(staff.Session))

	_, err = f.auth.Authenticate(staff.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Staff logout leaves the owner session alone
	_, err = f.auth.Authenticate(owner.Token)
	assert.NoError(t, err)

	require.NoError(t, f.auth.Logout(owner.Session))
	_, err = f.auth.Authenticate(owner.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_ResetMallPassword(t *testing.T) {
	f := newFixture(t)

	testutil.SeedMall(t, f.db, "MALL01", "secret1")
	before, err := f.auth.LoginMall("MALL01", "secret1")
	require.NoError(t, err)

	assert.ErrorIs(t, f.auth.ResetMallPassword("MALL01", "123"), ErrValidation)
	assert.ErrorIs(t, f.auth.ResetMallPassword("NOPE", "newsecret"), ErrNotFound)

	require.NoError(t, f.auth.ResetMallPassword("MALL01", "newsecret"))

	_, err = f.auth.LoginMall("MALL01", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.LoginMall("MALL01", "newsecret")
	assert.NoError(t, err)

	_, err = f.auth.Authenticate(before.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
