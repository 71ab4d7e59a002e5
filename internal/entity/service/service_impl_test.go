package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/meridiancrm/meridian/internal/actorctx"
	"github.com/meridiancrm/meridian/internal/entity/domain"
	"github.com/meridiancrm/meridian/internal/entity/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

func setupEntityService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Entity{},
		&domain.Address{},
		&domain.Email{},
		&domain.PhoneNumber{},
		&domain.Website{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func TestEntityCreateValidatesNameByType(t *testing.T) {
	svc, _ := setupEntityService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:      "individual",
		FirstName: strptr("Ada"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateEntityRequest{Type: "non-individual"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateEntityRequest{Type: "robot"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	created, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:      "individual",
		FirstName: strptr("Ada"),
		LastName:  strptr("Lovelace"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EntityTypeIndividual, created.Type)
	assert.Nil(t, created.CompanyName)
}

func TestEntityUpdatePartial(t *testing.T) {
	svc, _ := setupEntityService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:      "individual",
		FirstName: strptr("Ada"),
		LastName:  strptr("Lovelace"),
		TIN:       strptr("12-3456789"),
	})
	require.NoError(t, err)

	// Nil fields keep the stored value.
	updated, err := svc.Update(ctx, domain.UpdateEntityRequest{
		ID:        created.ID.String(),
		FirstName: strptr("Augusta"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", *updated.FirstName)
	assert.Equal(t, "Lovelace", *updated.LastName)
	assert.Equal(t, "12-3456789", *updated.TIN)

	// Explicit empty string nulls a nullable field.
	updated, err = svc.Update(ctx, domain.UpdateEntityRequest{
		ID:  created.ID.String(),
		TIN: strptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.TIN)
}

func TestEntityTypeNamesAreExclusive(t *testing.T) {
	svc, _ := setupEntityService(t)
	ctx := context.Background()

	person, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:      "individual",
		FirstName: strptr("Ada"),
		LastName:  strptr("Lovelace"),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateEntityRequest{
		ID:          person.ID.String(),
		CompanyName: strptr("Analytical Engines Ltd"),
	})
	assert.ErrorIs(t, err, domain.ErrTypeImmutable)

	org, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:        "non-individual",
		CompanyName: strptr("Analytical Engines Ltd"),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateEntityRequest{
		ID:        org.ID.String(),
		FirstName: strptr("Charles"),
	})
	assert.ErrorIs(t, err, domain.ErrTypeImmutable)
}

func TestEntityDeleteIsSoft(t *testing.T) {
	svc, db := setupEntityService(t)
	ctx := actorctx.WithActor(context.Background(), actorctx.Actor{UserID: "1", Username: "ops"})

	created, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:      "individual",
		FirstName: strptr("Ada"),
		LastName:  strptr("Lovelace"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The row survives with its deletion stamp.
	var stored domain.Entity
	require.NoError(t, db.Table("em_entities").Where("id = ?", created.ID).First(&stored).Error)
	require.NotNil(t, stored.SysDeletedAt)
	assert.Equal(t, "ops", *stored.SysDeletedBy)
}

func TestEntityContactChannels(t *testing.T) {
	svc, _ := setupEntityService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateEntityRequest{
		Type:        "non-individual",
		CompanyName: strptr("Meridian Supply Co"),
	})
	require.NoError(t, err)
	entityID := created.ID.String()

	addr, err := svc.CreateAddress(ctx, domain.AddressParentEntity, domain.SaveAddressRequest{
		ParentID:     entityID,
		AddressLine1: strptr("100 Main St"),
		City:         strptr("Springfield"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AddressParentEntity, addr.ParentTable)

	email, err := svc.CreateEmail(ctx, domain.SaveEmailRequest{
		EntityID: entityID,
		Email:    strptr("billing@meridiansupply.test"),
	})
	require.NoError(t, err)

	addresses, err := svc.ListAddresses(ctx, domain.AddressParentEntity, entityID)
	require.NoError(t, err)
	assert.Len(t, addresses, 1)

	require.NoError(t, svc.DeleteEmail(ctx, entityID, email.ID.String()))
	_, err = svc.GetEmail(ctx, entityID, email.ID.String())
	assert.ErrorIs(t, err, domain.ErrEmailNotFound)

	emails, err := svc.ListEmails(ctx, entityID)
	require.NoError(t, err)
	assert.Empty(t, emails)
}
