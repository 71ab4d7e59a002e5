package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/meridiancrm/meridian/internal/product/domain"
	"github.com/meridiancrm/meridian/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

func setupProductService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestProductCodeUniqueAmongLive(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Name: strptr("Widget")})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	created, err := svc.Create(ctx, domain.CreateProductRequest{Code: "WIDGET", Name: strptr("Widget")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateProductRequest{Code: "WIDGET"})
	assert.ErrorIs(t, err, domain.ErrExists)

	// A deleted product releases its code.
	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.Create(ctx, domain.CreateProductRequest{Code: "WIDGET"})
	require.NoError(t, err)
}

func TestProductUpdatePartial(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Code:  "WIDGET",
		Name:  strptr("Widget"),
		Terms: strptr("net 30"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateProductRequest{
		ID:   created.ID.String(),
		Name: strptr("Widget Mk II"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk II", *updated.Name)
	assert.Equal(t, "net 30", *updated.Terms)
	assert.Equal(t, "WIDGET", updated.Code)

	// Empty string clears a nullable field.
	updated, err = svc.Update(ctx, domain.UpdateProductRequest{
		ID:    created.ID.String(),
		Terms: strptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Terms)
}
