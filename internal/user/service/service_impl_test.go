package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/meridiancrm/meridian/internal/user/domain"
	"github.com/meridiancrm/meridian/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.SysUser{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestUserCreateValidation(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateUserRequest{Email: "a@b.test", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrInvalidUsername)

	_, err = svc.Create(ctx, domain.CreateUserRequest{Username: "ada", Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateUserRequest{Username: "ada", Email: "a@b.test", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestUserUniqueAmongLiveRows(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateUserRequest{
		Username: "ada",
		Email:    "ada@meridian.test",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// Username and email collisions both map to the same opaque error.
	_, err = svc.Create(ctx, domain.CreateUserRequest{
		Username: "ada",
		Email:    "other@meridian.test",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrExists)

	_, err = svc.Create(ctx, domain.CreateUserRequest{
		Username: "ada2",
		Email:    "ada@meridian.test",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrExists)

	// Deleting frees the credential pair.
	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.Create(ctx, domain.CreateUserRequest{
		Username: "ada",
		Email:    "ada@meridian.test",
		Password: "correct horse",
	})
	require.NoError(t, err)
}

func TestUserAuthenticate(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateUserRequest{
		Username: "ada",
		Email:    "ada@meridian.test",
		Password: "correct horse",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "ada", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "ada", "wrong horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown and deleted users look identical to a bad password.
	_, err = svc.Authenticate(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.Authenticate(ctx, "ada", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserUpdatePassword(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateUserRequest{
		Username: "ada",
		Email:    "ada@meridian.test",
		Password: "correct horse",
	})
	require.NoError(t, err)

	next := "battery staple"
	_, err = svc.Update(ctx, domain.UpdateUserRequest{ID: created.ID.String(), Password: &next})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ada", "correct horse")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ada", next)
	require.NoError(t, err)
}
