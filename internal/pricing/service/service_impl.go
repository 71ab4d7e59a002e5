package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/meridiancrm/meridian/internal/account/domain"
	"github.com/meridiancrm/meridian/internal/config"
	pricelistdomain "github.com/meridiancrm/meridian/internal/pricelist/domain"
	"github.com/meridiancrm/meridian/internal/pricing/domain"
	productdomain "github.com/meridiancrm/meridian/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Repo          domain.Repository
	AccountRepo   accountdomain.Repository
	ProductRepo   productdomain.Repository
	PriceListRepo pricelistdomain.Repository
	Policy        *config.PricingPolicyHolder
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	repo          domain.Repository
	accountRepo   accountdomain.Repository
	productRepo   productdomain.Repository
	priceListRepo pricelistdomain.Repository
	policy        *config.PricingPolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("pricing.service"),
		genID:         p.GenID,
		repo:          p.Repo,
		accountRepo:   p.AccountRepo,
		productRepo:   p.ProductRepo,
		priceListRepo: p.PriceListRepo,
		policy:        p.Policy,
	}
}

func (s *Service) AttachList(ctx context.Context, input domain.LinkInput) (domain.AccountList, error) {
	accountID, err := s.requireAccountID(ctx, input.AccountID)
	if err != nil {
		return domain.AccountList{}, err
	}

	listID, err := snowflake.ParseString(strings.TrimSpace(input.TargetID))
	if err != nil || listID == 0 {
		return domain.AccountList{}, pricelistdomain.ErrNotFound
	}
	list, err := s.priceListRepo.FindByID(ctx, s.db, listID)
	if err != nil {
		return domain.AccountList{}, err
	}
	if list == nil {
		return domain.AccountList{}, pricelistdomain.ErrNotFound
	}

	existing, err := s.repo.FindListLinkByPair(ctx, s.db, accountID, listID)
	if err != nil {
		return domain.AccountList{}, err
	}
	if existing != nil {
		return domain.AccountList{}, domain.ErrListLinkExists
	}

	link := domain.AccountList{
		ID:          s.genID.Generate(),
		AccountID:   accountID,
		PriceListID: listID,
		StartOn:     input.StartOn,
		EndOn:       input.EndOn,
	}
	link.StampCreated(ctx, time.Now())

	if err := s.repo.InsertListLink(ctx, s.db, &link); err != nil {
		return domain.AccountList{}, err
	}
	return link, nil
}

func (s *Service) ListLists(ctx context.Context, accountID string) ([]domain.AccountList, error) {
	parsed, err := s.requireAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListListLinks(ctx, s.db, parsed)
}

func (s *Service) DetachList(ctx context.Context, accountID, linkID string) error {
	parsed, err := s.requireAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	id, err := snowflake.ParseString(strings.TrimSpace(linkID))
	if err != nil || id == 0 {
		return domain.ErrListLinkNotFound
	}

	link, err := s.repo.FindListLink(ctx, s.db, parsed, id)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrListLinkNotFound
	}

	link.StampDeleted(ctx, time.Now())
	return s.repo.SaveListLink(ctx, s.db, link)
}

func (s *Service) AttachProduct(ctx context.Context, input domain.LinkInput) (domain.AccountProduct, error) {
	accountID, err := s.requireAccountID(ctx, input.AccountID)
	if err != nil {
		return domain.AccountProduct{}, err
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(input.TargetID))
	if err != nil || productID == 0 {
		return domain.AccountProduct{}, productdomain.ErrNotFound
	}
	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return domain.AccountProduct{}, err
	}
	if product == nil {
		return domain.AccountProduct{}, productdomain.ErrNotFound
	}

	existing, err := s.repo.FindProductLinkByPair(ctx, s.db, accountID, productID)
	if err != nil {
		return domain.AccountProduct{}, err
	}
	if existing != nil {
		return domain.AccountProduct{}, domain.ErrProductLinkExists
	}

	link := domain.AccountProduct{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		ProductID: productID,
		StartOn:   input.StartOn,
		EndOn:     input.EndOn,
	}
	link.StampCreated(ctx, time.Now())

	if err := s.repo.InsertProductLink(ctx, s.db, &link); err != nil {
		return domain.AccountProduct{}, err
	}
	return link, nil
}

func (s *Service) ListProducts(ctx context.Context, accountID string) ([]domain.AccountProduct, error) {
	parsed, err := s.requireAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListProductLinks(ctx, s.db, parsed)
}

func (s *Service) DetachProduct(ctx context.Context, accountID, linkID string) error {
	parsed, err := s.requireAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	id, err := snowflake.ParseString(strings.TrimSpace(linkID))
	if err != nil || id == 0 {
		return domain.ErrProductLinkNotFound
	}

	link, err := s.repo.FindProductLink(ctx, s.db, parsed, id)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrProductLinkNotFound
	}

	link.StampDeleted(ctx, time.Now())
	return s.repo.SaveProductLink(ctx, s.db, link)
}

// candidate pairs an account-list link with the priced item found on its
// list, both valid as of the resolution day.
type candidate struct {
	link domain.AccountList
	item pricelistdomain.PriceListItem
}

func (s *Service) Resolve(ctx context.Context, accountID, productID snowflake.ID, asOf time.Time) (domain.Resolution, error) {
	candidates, err := s.linkedCandidates(ctx, accountID, productID, asOf)
	if err != nil {
		return domain.Resolution{}, err
	}

	if len(candidates) == 0 {
		override, err := s.activeOverride(ctx, accountID, productID, asOf)
		if err != nil {
			return domain.Resolution{}, err
		}
		if override == nil {
			return domain.Resolution{}, domain.ErrNotAuthorized
		}
		// Override grants access without list membership; the price still
		// comes from whichever active list carries the product.
		return s.priceFromAnyActiveList(ctx, productID, asOf)
	}

	winner := s.pickCandidate(candidates)
	return domain.Resolution{
		PriceListID:     winner.item.PriceListID,
		PriceListItemID: winner.item.ID,
		Price:           winner.item.Price,
	}, nil
}

func (s *Service) linkedCandidates(ctx context.Context, accountID, productID snowflake.ID, asOf time.Time) ([]candidate, error) {
	links, err := s.repo.ListListLinks(ctx, s.db, accountID)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for _, link := range links {
		if !link.Covers(asOf) {
			continue
		}
		list, err := s.priceListRepo.FindByID(ctx, s.db, link.PriceListID)
		if err != nil {
			return nil, err
		}
		if list == nil || !list.Covers(asOf) {
			continue
		}
		item, err := s.priceListRepo.FindItemByProduct(ctx, s.db, link.PriceListID, productID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		candidates = append(candidates, candidate{link: link, item: *item})
	}
	return candidates, nil
}

func (s *Service) activeOverride(ctx context.Context, accountID, productID snowflake.ID, asOf time.Time) (*domain.AccountProduct, error) {
	override, err := s.repo.FindProductLinkByPair(ctx, s.db, accountID, productID)
	if err != nil {
		return nil, err
	}
	if override == nil || !override.Covers(asOf) {
		return nil, nil
	}
	return override, nil
}

func (s *Service) priceFromAnyActiveList(ctx context.Context, productID snowflake.ID, asOf time.Time) (domain.Resolution, error) {
	items, err := s.priceListRepo.ListItemsByProduct(ctx, s.db, productID)
	if err != nil {
		return domain.Resolution{}, err
	}

	var best *pricelistdomain.PriceListItem
	for i := range items {
		list, err := s.priceListRepo.FindByID(ctx, s.db, items[i].PriceListID)
		if err != nil {
			return domain.Resolution{}, err
		}
		if list == nil || !list.Covers(asOf) {
			continue
		}
		if best == nil || items[i].Price.LessThan(best.Price) {
			best = &items[i]
		}
	}
	if best == nil {
		return domain.Resolution{}, domain.ErrNotAuthorized
	}
	return domain.Resolution{
		PriceListID:     best.PriceListID,
		PriceListItemID: best.ID,
		Price:           best.Price,
	}, nil
}

func (s *Service) pickCandidate(candidates []candidate) candidate {
	winner := candidates[0]
	precedence := s.policy.Get().Precedence
	for _, c := range candidates[1:] {
		switch precedence {
		case config.PrecedenceLowestPrice:
			if c.item.Price.LessThan(winner.item.Price) {
				winner = c
			}
		default:
			span, winnerSpan := c.link.WindowSpan(), winner.link.WindowSpan()
			if span < winnerSpan ||
				(span == winnerSpan && c.item.Price.LessThan(winner.item.Price)) {
				winner = c
			}
		}
	}
	return winner
}

func (s *Service) requireAccountID(ctx context.Context, value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, accountdomain.ErrInvalidID
	}
	account, err := s.accountRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, accountdomain.ErrNotFound
	}
	return id, nil
}
