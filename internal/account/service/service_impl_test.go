package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/account/repository"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
	entityrepository "github.com/meridiancrm/meridian/internal/entity/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

func setupAccountService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entitydomain.Entity{},
		&domain.Account{},
		&domain.EntityAccount{},
		&domain.AccountContract{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       repository.Provide(),
		EntityRepo: entityrepository.Provide(),
	})
	return svc, db, node
}

func seedEntity(t *testing.T, db *gorm.DB, node *snowflake.Node) entitydomain.Entity {
	t.Helper()
	entity := entitydomain.Entity{
		ID:          node.Generate(),
		Type:        entitydomain.EntityTypeNonIndividual,
		CompanyName: strptr("Meridian Supply Co"),
	}
	entity.StampCreated(context.Background(), time.Now())
	require.NoError(t, db.Create(&entity).Error)
	return entity
}

func TestAccountCreateRequiresEntity(t *testing.T) {
	svc, _, _ := setupAccountService(t)

	_, err := svc.Create(context.Background(), domain.CreateAccountRequest{
		Name: strptr("Supply Co billing"),
	})
	assert.ErrorIs(t, err, domain.ErrRequiresEntity)
}

func TestAccountCreateWithRelationships(t *testing.T) {
	svc, db, node := setupAccountService(t)
	ctx := context.Background()
	entity := seedEntity(t, db, node)

	created, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name: strptr("Supply Co billing"),
		Relationships: []domain.RelationshipInput{
			{EntityID: entity.ID.String(), RelationshipType: "account_holder"},
		},
	})
	require.NoError(t, err)
	assert.True(t, created.IsBillable)

	rels, err := svc.ListEntities(ctx, created.ID.String())
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, entity.ID, rels[0].EntityID)

	// The same pair and type cannot attach twice.
	_, err = svc.AttachEntity(ctx, created.ID.String(), domain.RelationshipInput{
		EntityID:         entity.ID.String(),
		RelationshipType: "account_holder",
	})
	assert.ErrorIs(t, err, domain.ErrRelationshipExists)

	// A different relationship type for the same pair is fine.
	_, err = svc.AttachEntity(ctx, created.ID.String(), domain.RelationshipInput{
		EntityID:         entity.ID.String(),
		RelationshipType: "billing_contact",
	})
	require.NoError(t, err)
}

func TestAccountCreateRejectsUnknownRelationshipType(t *testing.T) {
	svc, db, node := setupAccountService(t)
	entity := seedEntity(t, db, node)

	_, err := svc.Create(context.Background(), domain.CreateAccountRequest{
		Relationships: []domain.RelationshipInput{
			{EntityID: entity.ID.String(), RelationshipType: "owner"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRelationship)

	// A failed relationship leaves no account row behind.
	var count int64
	require.NoError(t, db.Model(&domain.Account{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAccountBillableWindow(t *testing.T) {
	svc, db, node := setupAccountService(t)
	ctx := context.Background()
	entity := seedEntity(t, db, node)

	created, err := svc.Create(ctx, domain.CreateAccountRequest{
		Relationships: []domain.RelationshipInput{
			{EntityID: entity.ID.String(), RelationshipType: "account_holder"},
		},
	})
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	ended, err := svc.Update(ctx, domain.UpdateAccountRequest{
		ID:    created.ID.String(),
		EndOn: &yesterday,
	})
	require.NoError(t, err)
	assert.False(t, ended.IsBillable)

	// Clearing the end date reopens the account.
	reopened, err := svc.Update(ctx, domain.UpdateAccountRequest{
		ID:         created.ID.String(),
		ClearEndOn: true,
	})
	require.NoError(t, err)
	assert.True(t, reopened.IsBillable)
	assert.Nil(t, reopened.EndOn)
}

func TestAccountContractNameUniquePerAccount(t *testing.T) {
	svc, db, node := setupAccountService(t)
	ctx := context.Background()
	entity := seedEntity(t, db, node)

	created, err := svc.Create(ctx, domain.CreateAccountRequest{
		Relationships: []domain.RelationshipInput{
			{EntityID: entity.ID.String(), RelationshipType: "account_holder"},
		},
	})
	require.NoError(t, err)
	accountID := created.ID.String()

	_, err = svc.AttachContract(ctx, domain.SaveContractRequest{AccountID: accountID})
	assert.ErrorIs(t, err, domain.ErrInvalidContractName)

	contract, err := svc.AttachContract(ctx, domain.SaveContractRequest{
		AccountID: accountID,
		Name:      strptr("FY26 master services"),
	})
	require.NoError(t, err)

	_, err = svc.AttachContract(ctx, domain.SaveContractRequest{
		AccountID: accountID,
		Name:      strptr("FY26 master services"),
	})
	assert.ErrorIs(t, err, domain.ErrContractExists)

	// Detaching frees the name for reuse.
	require.NoError(t, svc.DetachContract(ctx, accountID, contract.ID.String()))
	_, err = svc.AttachContract(ctx, domain.SaveContractRequest{
		AccountID: accountID,
		Name:      strptr("FY26 master services"),
	})
	require.NoError(t, err)
}

func TestAccountDetachEntityScopedToAccount(t *testing.T) {
	svc, db, node := setupAccountService(t)
	ctx := context.Background()
	entity := seedEntity(t, db, node)

	first, err := svc.Create(ctx, domain.CreateAccountRequest{
		Relationships: []domain.RelationshipInput{
			{EntityID: entity.ID.String(), RelationshipType: "account_holder"},
		},
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.CreateAccountRequest{
		Relationships: []domain.RelationshipInput{
			{EntityID: entity.ID.String(), RelationshipType: "account_holder"},
		},
	})
	require.NoError(t, err)

	rels, err := svc.ListEntities(ctx, first.ID.String())
	require.NoError(t, err)
	require.Len(t, rels, 1)

	// A relationship belonging to another account is not reachable.
	err = svc.DetachEntity(ctx, second.ID.String(), rels[0].ID.String())
	assert.ErrorIs(t, err, domain.ErrRelationshipNotFound)

	require.NoError(t, svc.DetachEntity(ctx, first.ID.String(), rels[0].ID.String()))

	both, err := svc.ListAccountsForEntity(ctx, entity.ID.String())
	require.NoError(t, err)
	assert.Len(t, both, 1)
}
