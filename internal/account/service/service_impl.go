package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/account/domain"
	entitydomain "github.com/meridiancrm/meridian/internal/entity/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"github.com/meridiancrm/meridian/pkg/nullable"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	EntityRepo entitydomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	entityRepo entitydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("account.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		entityRepo: p.EntityRepo,
	}
}

// Create opens an account together with its initial entity relationships.
// An account never exists without at least one related entity, so the
// account row and relationship rows commit in one transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateAccountRequest) (domain.AccountView, error) {
	if len(req.Relationships) == 0 {
		return domain.AccountView{}, domain.ErrRequiresEntity
	}

	now := time.Now()
	account := domain.Account{
		ID:      s.genID.Generate(),
		Name:    nullable.Apply(nil, req.Name),
		StartOn: req.StartOn,
		EndOn:   req.EndOn,
	}
	account.StampCreated(ctx, now)

	rels := make([]*domain.EntityAccount, 0, len(req.Relationships))
	for _, input := range req.Relationships {
		rel, err := s.buildRelationship(ctx, account.ID, input, now)
		if err != nil {
			return domain.AccountView{}, err
		}
		rels = append(rels, rel)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &account); err != nil {
			return err
		}
		for _, rel := range rels {
			if err := s.repo.InsertRelationship(ctx, tx, rel); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.AccountView{}, err
	}
	return s.view(account), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.AccountView, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.AccountView{}, err
	}
	account, err := s.requireAccount(ctx, parsed)
	if err != nil {
		return domain.AccountView{}, err
	}
	return s.view(account), nil
}

func (s *Service) List(ctx context.Context, req domain.ListAccountRequest) (domain.ListAccountResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListAccountResponse{}, err
	}

	accounts := make([]domain.AccountView, 0, len(items))
	for _, item := range items {
		accounts = append(accounts, s.view(*item))
	}

	return domain.ListAccountResponse{
		PageInfo: pagination.BuildPageInfo(total, req.Page),
		Accounts: accounts,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateAccountRequest) (domain.AccountView, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.AccountView{}, err
	}

	account, err := s.requireAccount(ctx, parsed)
	if err != nil {
		return domain.AccountView{}, err
	}

	account.Name = nullable.Apply(account.Name, req.Name)
	if req.StartOn != nil {
		account.StartOn = req.StartOn
	}
	if req.ClearEndOn {
		account.EndOn = nil
	} else if req.EndOn != nil {
		account.EndOn = req.EndOn
	}
	account.StampUpdated(ctx, time.Now())

	if err := s.repo.Save(ctx, s.db, &account); err != nil {
		return domain.AccountView{}, err
	}
	return s.view(account), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	account, err := s.requireAccount(ctx, parsed)
	if err != nil {
		return err
	}

	account.StampDeleted(ctx, time.Now())
	return s.repo.Save(ctx, s.db, &account)
}

func (s *Service) AttachEntity(ctx context.Context, accountID string, input domain.RelationshipInput) (domain.EntityAccount, error) {
	parsed, err := s.parseID(accountID)
	if err != nil {
		return domain.EntityAccount{}, err
	}
	if _, err := s.requireAccount(ctx, parsed); err != nil {
		return domain.EntityAccount{}, err
	}

	rel, err := s.buildRelationship(ctx, parsed, input, time.Now())
	if err != nil {
		return domain.EntityAccount{}, err
	}
	if err := s.repo.InsertRelationship(ctx, s.db, rel); err != nil {
		return domain.EntityAccount{}, err
	}
	return *rel, nil
}

func (s *Service) ListEntities(ctx context.Context, accountID string) ([]domain.EntityAccount, error) {
	parsed, err := s.parseID(accountID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireAccount(ctx, parsed); err != nil {
		return nil, err
	}
	return s.repo.ListByAccount(ctx, s.db, parsed)
}

func (s *Service) ListAccountsForEntity(ctx context.Context, entityID string) ([]domain.EntityAccount, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(entityID))
	if err != nil || parsed == 0 {
		return nil, entitydomain.ErrNotFound
	}
	entity, err := s.entityRepo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, entitydomain.ErrNotFound
	}
	return s.repo.ListByEntity(ctx, s.db, parsed)
}

func (s *Service) DetachEntity(ctx context.Context, accountID, relationshipID string) error {
	parsed, err := s.parseID(accountID)
	if err != nil {
		return err
	}
	relID, err := snowflake.ParseString(strings.TrimSpace(relationshipID))
	if err != nil || relID == 0 {
		return domain.ErrRelationshipNotFound
	}

	rel, err := s.repo.FindRelationship(ctx, s.db, relID)
	if err != nil {
		return err
	}
	if rel == nil || rel.AccountID != parsed {
		return domain.ErrRelationshipNotFound
	}

	rel.StampDeleted(ctx, time.Now())
	return s.repo.SaveRelationship(ctx, s.db, rel)
}

func (s *Service) AttachContract(ctx context.Context, req domain.SaveContractRequest) (domain.AccountContract, error) {
	parsed, err := s.parseID(req.AccountID)
	if err != nil {
		return domain.AccountContract{}, err
	}
	if _, err := s.requireAccount(ctx, parsed); err != nil {
		return domain.AccountContract{}, err
	}

	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if name == "" {
		return domain.AccountContract{}, domain.ErrInvalidContractName
	}

	existing, err := s.repo.FindContractByName(ctx, s.db, parsed, name)
	if err != nil {
		return domain.AccountContract{}, err
	}
	if existing != nil {
		return domain.AccountContract{}, domain.ErrContractExists
	}

	contract := domain.AccountContract{
		ID:               s.genID.Generate(),
		AccountID:        parsed,
		Name:             name,
		StartOn:          req.StartOn,
		EndOn:            req.EndOn,
		NotificationDays: req.NotificationDays,
		Status:           req.Status,
	}
	contract.StampCreated(ctx, time.Now())

	if err := s.repo.InsertContract(ctx, s.db, &contract); err != nil {
		return domain.AccountContract{}, err
	}
	return contract, nil
}

func (s *Service) GetContract(ctx context.Context, accountID, contractID string) (domain.AccountContract, error) {
	parsed, err := s.parseID(accountID)
	if err != nil {
		return domain.AccountContract{}, err
	}
	return s.requireContract(ctx, parsed, contractID)
}

func (s *Service) ListContracts(ctx context.Context, accountID string) ([]domain.AccountContract, error) {
	parsed, err := s.parseID(accountID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireAccount(ctx, parsed); err != nil {
		return nil, err
	}
	return s.repo.ListContracts(ctx, s.db, parsed)
}

func (s *Service) UpdateContract(ctx context.Context, req domain.SaveContractRequest) (domain.AccountContract, error) {
	parsed, err := s.parseID(req.AccountID)
	if err != nil {
		return domain.AccountContract{}, err
	}

	contract, err := s.requireContract(ctx, parsed, req.ContractID)
	if err != nil {
		return domain.AccountContract{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.AccountContract{}, domain.ErrInvalidContractName
		}
		if name != contract.Name {
			existing, err := s.repo.FindContractByName(ctx, s.db, parsed, name)
			if err != nil {
				return domain.AccountContract{}, err
			}
			if existing != nil {
				return domain.AccountContract{}, domain.ErrContractExists
			}
			contract.Name = name
		}
	}
	if req.StartOn != nil {
		contract.StartOn = req.StartOn
	}
	if req.EndOn != nil {
		contract.EndOn = req.EndOn
	}
	if req.NotificationDays != nil {
		contract.NotificationDays = req.NotificationDays
	}
	contract.Status = nullable.Apply(contract.Status, req.Status)
	contract.StampUpdated(ctx, time.Now())

	if err := s.repo.SaveContract(ctx, s.db, &contract); err != nil {
		return domain.AccountContract{}, err
	}
	return contract, nil
}

func (s *Service) DetachContract(ctx context.Context, accountID, contractID string) error {
	parsed, err := s.parseID(accountID)
	if err != nil {
		return err
	}

	contract, err := s.requireContract(ctx, parsed, contractID)
	if err != nil {
		return err
	}

	contract.StampDeleted(ctx, time.Now())
	return s.repo.SaveContract(ctx, s.db, &contract)
}

func (s *Service) buildRelationship(ctx context.Context, accountID snowflake.ID, input domain.RelationshipInput, now time.Time) (*domain.EntityAccount, error) {
	relType := domain.RelationshipType(strings.TrimSpace(input.RelationshipType))
	if !relType.Valid() {
		return nil, domain.ErrInvalidRelationship
	}

	entityID, err := snowflake.ParseString(strings.TrimSpace(input.EntityID))
	if err != nil || entityID == 0 {
		return nil, entitydomain.ErrNotFound
	}
	entity, err := s.entityRepo.FindByID(ctx, s.db, entityID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, entitydomain.ErrNotFound
	}

	existing, err := s.repo.FindRelationshipByPair(ctx, s.db, entityID, accountID, relType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRelationshipExists
	}

	rel := domain.EntityAccount{
		ID:               s.genID.Generate(),
		EntityID:         entityID,
		AccountID:        accountID,
		RelationshipType: relType,
		StartOn:          input.StartOn,
		EndOn:            input.EndOn,
	}
	rel.StampCreated(ctx, now)
	return &rel, nil
}

func (s *Service) requireAccount(ctx context.Context, id snowflake.ID) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return *account, nil
}

func (s *Service) requireContract(ctx context.Context, accountID snowflake.ID, contractID string) (domain.AccountContract, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(contractID))
	if err != nil || id == 0 {
		return domain.AccountContract{}, domain.ErrContractNotFound
	}
	contract, err := s.repo.FindContract(ctx, s.db, accountID, id)
	if err != nil {
		return domain.AccountContract{}, err
	}
	if contract == nil {
		return domain.AccountContract{}, domain.ErrContractNotFound
	}
	return *contract, nil
}

func (s *Service) view(account domain.Account) domain.AccountView {
	return domain.AccountView{
		Account:    account,
		IsBillable: account.IsBillable(time.Now()),
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
