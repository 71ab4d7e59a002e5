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
	"github.com/meridiancrm/meridian/internal/config"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	pricelistrepository "github.com/meridiancrm/meridian/internal/pricelist/repository"
	"github.com/meridiancrm/meridian/internal/pricing/domain"
	"github.com/meridiancrm/meridian/internal/pricing/repository"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	productrepository "github.com/meridiancrm/meridian/internal/product/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type pricingFixture struct {
	svc    domain.Service
	db     *gorm.DB
	node   *snowflake.Node
	policy *config.PricingPolicyHolder
}

func setupPricing(t *testing.T, policy config.PricingPolicy) pricingFixture {
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
		&domain.AccountList{},
		&domain.AccountProduct{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	holder := config.NewStaticPricingPolicyHolder(policy)

	svc := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Repo:          repository.Provide(),
		AccountRepo:   accountrepository.Provide(),
		ProductRepo:   productrepository.Provide(),
		PriceListRepo: pricelistrepository.Provide(),
		Policy:        holder,
	})
	return pricingFixture{svc: svc, db: db, node: node, policy: holder}
}

func (f pricingFixture) seedAccount(t *testing.T) snowflake.ID {
	t.Helper()
	account := accountdomain.Account{ID: f.node.Generate()}
	account.StampCreated(context.Background(), time.Now())
	require.NoError(t, f.db.Create(&account).Error)
	return account.ID
}

func (f pricingFixture) seedProduct(t *testing.T, code string) snowflake.ID {
	t.Helper()
	product := productdomain.Product{ID: f.node.Generate(), Code: code}
	product.StampCreated(context.Background(), time.Now())
	require.NoError(t, f.db.Create(&product).Error)
	return product.ID
}

func (f pricingFixture) seedList(t *testing.T, name string, start, end time.Time) snowflake.ID {
	t.Helper()
	list := pricelistdomain.PriceList{
		ID:      f.node.Generate(),
		Name:    name,
		StartOn: start,
		EndOn:   end,
	}
	list.StampCreated(context.Background(), time.Now())
	require.NoError(t, f.db.Create(&list).Error)
	return list.ID
}

func (f pricingFixture) seedItem(t *testing.T, listID, productID snowflake.ID, price string) snowflake.ID {
	t.Helper()
	item := pricelistdomain.PriceListItem{
		ID:          f.node.Generate(),
		PriceListID: listID,
		ProductID:   productID,
		Price:       decimal.RequireFromString(price),
	}
	item.StampCreated(context.Background(), time.Now())
	require.NoError(t, f.db.Create(&item).Error)
	return item.ID
}

func (f pricingFixture) seedListLink(t *testing.T, accountID, listID snowflake.ID, start, end *time.Time) {
	t.Helper()
	link := domain.AccountList{
		ID:          f.node.Generate(),
		AccountID:   accountID,
		PriceListID: listID,
		StartOn:     start,
		EndOn:       end,
	}
	link.StampCreated(context.Background(), time.Now())
	require.NoError(t, f.db.Create(&link).Error)
}

func (f pricingFixture) seedProductLink(t *testing.T, accountID, productID snowflake.ID, start, end *time.Time) {
	t.Helper()
	link := domain.AccountProduct{
		ID:        f.node.Generate(),
		AccountID: accountID,
		ProductID: productID,
		StartOn:   start,
		EndOn:     end,
	}
	link.StampCreated(context.Background(), time.Now())
	require.NoError(t, f.db.Create(&link).Error)
}

func day(offset int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, offset)
}

func TestResolveThroughLinkedList(t *testing.T) {
	f := setupPricing(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	accountID := f.seedAccount(t)
	productID := f.seedProduct(t, "WIDGET")
	listID := f.seedList(t, "standard", day(-30), day(30))
	itemID := f.seedItem(t, listID, productID, "25.00")
	f.seedListLink(t, accountID, listID, nil, nil)

	res, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	require.NoError(t, err)
	assert.Equal(t, listID, res.PriceListID)
	assert.Equal(t, itemID, res.PriceListItemID)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("25.00")))
}

func TestResolveRespectsWindows(t *testing.T) {
	f := setupPricing(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	accountID := f.seedAccount(t)
	productID := f.seedProduct(t, "WIDGET")

	// Link window lapsed.
	lapsedList := f.seedList(t, "lapsed-link", day(-30), day(30))
	f.seedItem(t, lapsedList, productID, "20.00")
	start, end := day(-30), day(-10)
	f.seedListLink(t, accountID, lapsedList, &start, &end)

	_, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// List window lapsed even though the link is open.
	expiredList := f.seedList(t, "expired-list", day(-60), day(-31))
	f.seedItem(t, expiredList, productID, "20.00")
	f.seedListLink(t, accountID, expiredList, nil, nil)

	_, err = f.svc.Resolve(ctx, accountID, productID, day(0))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// The lapsed link still resolves for a day inside both windows.
	res, err := f.svc.Resolve(ctx, accountID, productID, day(-15))
	require.NoError(t, err)
	assert.Equal(t, lapsedList, res.PriceListID)
}

func TestResolveNarrowestWindowWins(t *testing.T) {
	f := setupPricing(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	accountID := f.seedAccount(t)
	productID := f.seedProduct(t, "WIDGET")

	wideList := f.seedList(t, "wide", day(-90), day(90))
	f.seedItem(t, wideList, productID, "18.00")
	wideStart, wideEnd := day(-90), day(90)
	f.seedListLink(t, accountID, wideList, &wideStart, &wideEnd)

	narrowList := f.seedList(t, "narrow", day(-90), day(90))
	narrowItem := f.seedItem(t, narrowList, productID, "22.00")
	narrowStart, narrowEnd := day(-5), day(5)
	f.seedListLink(t, accountID, narrowList, &narrowStart, &narrowEnd)

	// Narrowest link window wins even at a higher price.
	res, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	require.NoError(t, err)
	assert.Equal(t, narrowList, res.PriceListID)
	assert.Equal(t, narrowItem, res.PriceListItemID)
}

func TestResolveLowestPricePolicy(t *testing.T) {
	f := setupPricing(t, config.PricingPolicy{
		Precedence:     config.PrecedenceLowestPrice,
		RoundingPlaces: 2,
	})
	ctx := context.Background()

	accountID := f.seedAccount(t)
	productID := f.seedProduct(t, "WIDGET")

	wideList := f.seedList(t, "wide", day(-90), day(90))
	f.seedItem(t, wideList, productID, "18.00")
	wideStart, wideEnd := day(-90), day(90)
	f.seedListLink(t, accountID, wideList, &wideStart, &wideEnd)

	narrowList := f.seedList(t, "narrow", day(-90), day(90))
	f.seedItem(t, narrowList, productID, "22.00")
	narrowStart, narrowEnd := day(-5), day(5)
	f.seedListLink(t, accountID, narrowList, &narrowStart, &narrowEnd)

	res, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	require.NoError(t, err)
	assert.Equal(t, wideList, res.PriceListID)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("18.00")))
}

func TestResolveOverrideUsesCheapestActiveList(t *testing.T) {
	f := setupPricing(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	accountID := f.seedAccount(t)
	productID := f.seedProduct(t, "WIDGET")

	// No list links at all; only a direct product grant.
	f.seedProductLink(t, accountID, productID, nil, nil)

	// No active list carries the product yet.
	_, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	cheapList := f.seedList(t, "cheap", day(-10), day(10))
	f.seedItem(t, cheapList, productID, "19.50")
	dearList := f.seedList(t, "dear", day(-10), day(10))
	f.seedItem(t, dearList, productID, "24.00")
	staleList := f.seedList(t, "stale", day(-90), day(-30))
	f.seedItem(t, staleList, productID, "1.00")

	res, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	require.NoError(t, err)
	assert.Equal(t, cheapList, res.PriceListID)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("19.50")))
}

func TestResolveExpiredOverride(t *testing.T) {
	f := setupPricing(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	accountID := f.seedAccount(t)
	productID := f.seedProduct(t, "WIDGET")

	listID := f.seedList(t, "standard", day(-30), day(30))
	f.seedItem(t, listID, productID, "25.00")

	start, end := day(-30), day(-10)
	f.seedProductLink(t, accountID, productID, &start, &end)

	_, err := f.svc.Resolve(ctx, accountID, productID, day(0))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestAttachListRejectsDuplicatePair(t *testing.T) {
	f := setupPricing(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	accountID := f.seedAccount(t)
	listID := f.seedList(t, "standard", day(-30), day(30))

	_, err := f.svc.AttachList(ctx, domain.LinkInput{
		AccountID: accountID.String(),
		TargetID:  listID.String(),
	})
	require.NoError(t, err)

	_, err = f.svc.AttachList(ctx, domain.LinkInput{
		AccountID: accountID.String(),
		TargetID:  listID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrListLinkExists)

	links, err := f.svc.ListLists(ctx, accountID.String())
	require.NoError(t, err)
	assert.Len(t, links, 1)
}
