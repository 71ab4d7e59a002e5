package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	accountrepository "github.com/meridiancrm/meridian/internal/account/repository"
	"github.com/meridiancrm/meridian/internal/actorctx"
	"github.com/meridiancrm/meridian/internal/config"
	"github.com/meridiancrm/meridian/internal/order/domain"
	"github.com/meridiancrm/meridian/internal/order/repository"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	pricelistrepository "github.com/meridiancrm/meridian/internal/pricelist/repository"
	pricingdomain "github.com/meridiancrm/meridian/internal/pricing/domain"
	pricingrepository "github.com/meridiancrm/meridian/internal/pricing/repository"
	pricingservice "github.com/meridiancrm/meridian/internal/pricing/service"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	productrepository "github.com/meridiancrm/meridian/internal/product/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderFixture struct {
	svc       domain.Service
	db        *gorm.DB
	node      *snowflake.Node
	accountID snowflake.ID
	productID snowflake.ID
	listID    snowflake.ID
}

// setupOrderFixture wires a real pricing service underneath the order
// service and seeds one account linked to one priced list.
func setupOrderFixture(t *testing.T) orderFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&accountdomain.Account{},
		&productdomain.Product{},
		&pricelistdomain.PriceList{},
		&pricelistdomain.PriceListItem{},
		&pricingdomain.AccountList{},
		&pricingdomain.AccountProduct{},
		&domain.Order{},
		&domain.OrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	policy := config.NewStaticPricingPolicyHolder(config.DefaultPricingPolicy())
	log := zap.NewNop()

	pricingSvc := pricingservice.New(pricingservice.Params{
		DB:            db,
		Log:           log,
		GenID:         node,
		Repo:          pricingrepository.Provide(),
		AccountRepo:   accountrepository.Provide(),
		ProductRepo:   productrepository.Provide(),
		PriceListRepo: pricelistrepository.Provide(),
		Policy:        policy,
	})

	svc := New(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		AccountRepo: accountrepository.Provide(),
		ProductRepo: productrepository.Provide(),
		Pricing:     pricingSvc,
		Policy:      policy,
	})

	ctx := context.Background()
	now := time.Now()

	account := accountdomain.Account{ID: node.Generate()}
	account.StampCreated(ctx, now)
	require.NoError(t, db.Create(&account).Error)

	product := productdomain.Product{ID: node.Generate(), Code: "WIDGET"}
	product.StampCreated(ctx, now)
	require.NoError(t, db.Create(&product).Error)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	list := pricelistdomain.PriceList{
		ID:      node.Generate(),
		Name:    "standard",
		StartOn: today.AddDate(0, 0, -30),
		EndOn:   today.AddDate(0, 0, 30),
	}
	list.StampCreated(ctx, now)
	require.NoError(t, db.Create(&list).Error)

	item := pricelistdomain.PriceListItem{
		ID:          node.Generate(),
		PriceListID: list.ID,
		ProductID:   product.ID,
		Price:       decimal.RequireFromString("25.00"),
	}
	item.StampCreated(ctx, now)
	require.NoError(t, db.Create(&item).Error)

	link := pricingdomain.AccountList{
		ID:          node.Generate(),
		AccountID:   account.ID,
		PriceListID: list.ID,
	}
	link.StampCreated(ctx, now)
	require.NoError(t, db.Create(&link).Error)

	return orderFixture{
		svc:       svc,
		db:        db,
		node:      node,
		accountID: account.ID,
		productID: product.ID,
		listID:    list.ID,
	}
}

func int64ptr(v int64) *int64 { return &v }
func strptr(s string) *string { return &s }
func decptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeAmount(t *testing.T) {
	price := decimal.RequireFromString("25.00")

	// 3 x (25.00 - 2.00) = 69.00
	amount := domain.ComputeAmount(price, domain.AdjustmentDollar, decimal.RequireFromString("-2.00"), 3, 2)
	assert.Equal(t, "69.00", amount.StringFixed(2))

	// 2 x (25.00 - 10%) = 45.00
	amount = domain.ComputeAmount(price, domain.AdjustmentPercentage, decimal.RequireFromString("-10"), 2, 2)
	assert.Equal(t, "45.00", amount.StringFixed(2))

	// Half-even rounding at two places: 3 x (10.00 + 0.005) = 30.015 -> 30.02
	amount = domain.ComputeAmount(decimal.RequireFromString("10.00"), domain.AdjustmentDollar, decimal.RequireFromString("0.005"), 3, 2)
	assert.Equal(t, "30.02", amount.StringFixed(2))
}

func TestOrderItemCapturesResolvedPrice(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := actorctx.WithActor(context.Background(), actorctx.Actor{UserID: "1", Username: "sales"})

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{AccountID: f.accountID.String()})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDraft, order.Status)
	assert.Equal(t, "sales", order.Owner)

	item, err := f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:         order.ID.String(),
		ProductID:       f.productID.String(),
		Quantity:        int64ptr(3),
		AdjustmentType:  strptr("dollar"),
		AdjustmentValue: decptr("-2.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", item.Price.StringFixed(2))
	assert.Equal(t, "69.00", item.Amount.StringFixed(2))
	assert.NotZero(t, item.PriceListItemID)

	view, err := f.svc.GetByID(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "69.00", view.Total.StringFixed(2))
}

func TestOrderItemValidation(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{AccountID: f.accountID.String()})
	require.NoError(t, err)

	_, err = f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:   order.ID.String(),
		ProductID: f.productID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:        order.ID.String(),
		ProductID:      f.productID.String(),
		Quantity:       int64ptr(1),
		AdjustmentType: strptr("coupon"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	// A product with no grant for this account is refused.
	other := productdomain.Product{ID: f.node.Generate(), Code: "GADGET"}
	other.StampCreated(ctx, time.Now())
	require.NoError(t, f.db.Create(&other).Error)

	_, err = f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:   order.ID.String(),
		ProductID: other.ID.String(),
		Quantity:  int64ptr(1),
	})
	assert.ErrorIs(t, err, pricingdomain.ErrNotAuthorized)
}

func TestOrderLocksAfterApproval(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := actorctx.WithActor(context.Background(), actorctx.Actor{UserID: "2", Username: "manager"})

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{AccountID: f.accountID.String()})
	require.NoError(t, err)

	item, err := f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:   order.ID.String(),
		ProductID: f.productID.String(),
		Quantity:  int64ptr(1),
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "manager", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedOn)

	// Approving twice fails.
	_, err = f.svc.Approve(ctx, order.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Everything mutable is now locked.
	_, err = f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:   order.ID.String(),
		ProductID: f.productID.String(),
		Quantity:  int64ptr(2),
	})
	assert.ErrorIs(t, err, domain.ErrNotEditable)

	_, err = f.svc.UpdateItem(ctx, domain.SaveItemRequest{
		OrderID:  order.ID.String(),
		ItemID:   item.ID.String(),
		Quantity: int64ptr(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotEditable)

	err = f.svc.RemoveItem(ctx, order.ID.String(), item.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotEditable)

	today := time.Now()
	_, err = f.svc.Update(ctx, domain.UpdateOrderRequest{ID: order.ID.String(), TransactedOn: &today})
	assert.ErrorIs(t, err, domain.ErrNotEditable)

	err = f.svc.Delete(ctx, order.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotEditable)
}

func TestOrderItemUpdateRecomputesAmount(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{AccountID: f.accountID.String()})
	require.NoError(t, err)

	item, err := f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:   order.ID.String(),
		ProductID: f.productID.String(),
		Quantity:  int64ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", item.Amount.StringFixed(2))

	updated, err := f.svc.UpdateItem(ctx, domain.SaveItemRequest{
		OrderID:         order.ID.String(),
		ItemID:          item.ID.String(),
		Quantity:        int64ptr(4),
		AdjustmentType:  strptr("percentage"),
		AdjustmentValue: decptr("-50"),
	})
	require.NoError(t, err)

	// The captured price never moves; the amount follows the new inputs.
	assert.Equal(t, "25.00", updated.Price.StringFixed(2))
	assert.Equal(t, "50.00", updated.Amount.StringFixed(2))
}

func TestOrderPricesByTransactionDate(t *testing.T) {
	f := setupOrderFixture(t)
	ctx := context.Background()

	// The list window opened thirty days ago; a transaction dated before
	// that cannot price the product.
	stale := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -45)
	order, err := f.svc.Create(ctx, domain.CreateOrderRequest{
		AccountID:    f.accountID.String(),
		TransactedOn: &stale,
	})
	require.NoError(t, err)

	_, err = f.svc.AddItem(ctx, domain.SaveItemRequest{
		OrderID:   order.ID.String(),
		ProductID: f.productID.String(),
		Quantity:  int64ptr(1),
	})
	assert.ErrorIs(t, err, pricingdomain.ErrNotAuthorized)
}
