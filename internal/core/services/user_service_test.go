package services

import (
	"context"
	"testing"

	"educenter/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, *fakeAccountRepo) {
	t.Helper()

	accounts := newFakeAccountRepo()
	regions := newFakeRegionRepo(1)
	regions.regions[1].Name = "Tashkent"

	return NewUserService(accounts, regions), accounts
}

func seedAccount(t *testing.T, repo *fakeAccountRepo, email, role string) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:     "Someone",
		Email:    email,
		Password: "hash",
		Role:     role,
		RegionID: 1,
		Status:   models.StatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestPromoteRole(t *testing.T) {
	svc, accounts := newUserFixture(t)
	ctx := context.Background()

	admin := seedAccount(t, accounts, "admin@example.com", models.RoleAdmin)
	target := seedAccount(t, accounts, "user@example.com", models.RoleUser)

	resp, msg, err := svc.PromoteRole(ctx, admin.ID, target.ID, models.RoleCEO)
	require.NoError(t, err)

	assert.Equal(t, models.RoleCEO, resp.Role)
	assert.Equal(t, "Role updated from USER to CEO", msg)
	assert.Equal(t, models.RoleCEO, accounts.accounts[target.ID].Role)
}

func TestPromoteRoleNoOp(t *testing.T) {
	svc, accounts := newUserFixture(t)
	ctx := context.Background()

	admin := seedAccount(t, accounts, "admin@example.com", models.RoleAdmin)
	target := seedAccount(t, accounts, "user@example.com", models.RoleCEO)

	resp, msg, err := svc.PromoteRole(ctx, admin.ID, target.ID, models.RoleCEO)
	require.NoError(t, err)

	assert.Equal(t, models.RoleCEO, resp.Role)
	assert.Equal(t, "User already has role CEO", msg)
}

func TestPromoteRoleSelfDenied(t *testing.T) {
	svc, accounts := newUserFixture(t)

	admin := seedAccount(t, accounts, "admin@example.com", models.RoleAdmin)

	_, _, err := svc.PromoteRole(context.Background(), admin.ID, admin.ID, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrSelfPromotionDenied)
	assert.Equal(t, models.RoleAdmin, accounts.accounts[admin.ID].Role)
}

func TestPromoteRoleInvalidRole(t *testing.T) {
	svc, accounts := newUserFixture(t)

	admin := seedAccount(t, accounts, "admin@example.com", models.RoleAdmin)
	target := seedAccount(t, accounts, "user@example.com", models.RoleUser)

	_, _, err := svc.PromoteRole(context.Background(), admin.ID, target.ID, "OVERLORD")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestPromoteRoleUnknownTarget(t *testing.T) {
	svc, accounts := newUserFixture(t)

	admin := seedAccount(t, accounts, "admin@example.com", models.RoleAdmin)

	_, _, err := svc.PromoteRole(context.Background(), admin.ID, 777, models.RoleCEO)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetProfile(t *testing.T) {
	svc, accounts := newUserFixture(t)

	account := seedAccount(t, accounts, "user@example.com", models.RoleUser)

	resp, err := svc.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)

	assert.Equal(t, account.Email, resp.Email)
	assert.Equal(t, "Tashkent", resp.RegionName)

	_, err = svc.GetProfile(context.Background(), 777)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestListUsers(t *testing.T) {
	svc, accounts := newUserFixture(t)

	seedAccount(t, accounts, "a@example.com", models.RoleUser)
	seedAccount(t, accounts, "b@example.com", models.RoleUser)
	seedAccount(t, accounts, "c@example.com", models.RoleUser)

	out, err := svc.ListUsers(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, 2, out.TotalPages)
}

func TestDeleteUser(t *testing.T) {
	svc, accounts := newUserFixture(t)
	ctx := context.Background()

	owner := seedAccount(t, accounts, "owner@example.com", models.RoleUser)
	other := seedAccount(t, accounts, "other@example.com", models.RoleUser)
	admin := seedAccount(t, accounts, "admin@example.com", models.RoleAdmin)

	// A regular user cannot delete someone else
	err := svc.DeleteUser(ctx, owner.ID, models.RoleUser, other.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteOther)

	// But may delete themselves
	require.NoError(t, svc.DeleteUser(ctx, owner.ID, models.RoleUser, owner.ID))
	assert.NotContains(t, accounts.accounts, owner.ID)

	// Admins may delete anyone
	require.NoError(t, svc.DeleteUser(ctx, admin.ID, models.RoleAdmin, other.ID))
	assert.NotContains(t, accounts.accounts, other.ID)
}
