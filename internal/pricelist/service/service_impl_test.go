package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/meridiancrm/meridian/internal/pricelist/domain"
	"github.com/meridiancrm/meridian/internal/pricelist/repository"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	productrepository "github.com/meridiancrm/meridian/internal/product/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

func decptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func setupPriceListService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.PriceList{},
		&domain.PriceListItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		ProductRepo: productrepository.Provide(),
	})
	return svc, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, code string) productdomain.Product {
	t.Helper()
	product := productdomain.Product{ID: node.Generate(), Code: code}
	product.StampCreated(context.Background(), time.Now())
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestPriceListCreateValidation(t *testing.T) {
	svc, _, _ := setupPriceListService(t)
	ctx := context.Background()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 1, 0)

	_, err := svc.Create(ctx, domain.CreatePriceListRequest{StartOn: &start, EndOn: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreatePriceListRequest{Name: strptr("standard"), StartOn: &start})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = svc.Create(ctx, domain.CreatePriceListRequest{Name: strptr("standard"), StartOn: &end, EndOn: &start})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	list, err := svc.Create(ctx, domain.CreatePriceListRequest{Name: strptr("standard"), StartOn: &start, EndOn: &end})
	require.NoError(t, err)
	assert.True(t, list.Covers(start))
	assert.False(t, list.Covers(end.AddDate(0, 0, 1)))

	// Updates cannot invert the window either.
	bad := start.AddDate(-1, 0, 0)
	_, err = svc.Update(ctx, domain.UpdatePriceListRequest{ID: list.ID.String(), EndOn: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestPriceListItemPerProduct(t *testing.T) {
	svc, db, node := setupPriceListService(t)
	ctx := context.Background()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 1, 0)
	list, err := svc.Create(ctx, domain.CreatePriceListRequest{Name: strptr("standard"), StartOn: &start, EndOn: &end})
	require.NoError(t, err)

	product := seedProduct(t, db, node, "WIDGET")

	_, err = svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   product.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   product.ID.String(),
		Price:       decptr("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   node.Generate().String(),
		Price:       decptr("25.00"),
	})
	assert.ErrorIs(t, err, productdomain.ErrNotFound)

	item, err := svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   product.ID.String(),
		Price:       decptr("25.00"),
	})
	require.NoError(t, err)

	// One live price per (list, product).
	_, err = svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   product.ID.String(),
		Price:       decptr("30.00"),
	})
	assert.ErrorIs(t, err, domain.ErrItemExists)

	// Removing the item frees the pair.
	require.NoError(t, svc.RemoveItem(ctx, list.ID.String(), item.ID.String()))
	_, err = svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   product.ID.String(),
		Price:       decptr("30.00"),
	})
	require.NoError(t, err)
}

func TestPriceListItemUpdatePrice(t *testing.T) {
	svc, db, node := setupPriceListService(t)
	ctx := context.Background()

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 1, 0)
	list, err := svc.Create(ctx, domain.CreatePriceListRequest{Name: strptr("standard"), StartOn: &start, EndOn: &end})
	require.NoError(t, err)

	product := seedProduct(t, db, node, "WIDGET")
	item, err := svc.AddItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ProductID:   product.ID.String(),
		Price:       decptr("25.00"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, domain.SaveItemRequest{
		PriceListID: list.ID.String(),
		ItemID:      item.ID.String(),
		Price:       decptr("27.50"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("27.50")))

	items, err := svc.ListItems(ctx, list.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
}
