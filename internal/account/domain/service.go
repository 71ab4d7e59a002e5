package domain

import (
	"context"
	"errors"
	"time"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
)

// RelationshipInput names an entity relationship supplied at account
// creation or attach time.
type RelationshipInput struct {
	EntityID         string
	RelationshipType string
	StartOn          *time.Time
	EndOn            *time.Time
}

type CreateAccountRequest struct {
	Name          *string
	StartOn       *time.Time
	EndOn         *time.Time
	Relationships []RelationshipInput
}

// UpdateAccountRequest carries partial-update fields. ClearEndOn reopens a
// deactivated account (empty-string-on-nullable semantics at the transport
// layer).
type UpdateAccountRequest struct {
	ID         string
	Name       *string
	StartOn    *time.Time
	EndOn      *time.Time
	ClearEndOn bool
}

type ListAccountRequest struct {
	Page pagination.Pagination
}

// AccountView decorates an account with its derived billable flag.
type AccountView struct {
	Account
	IsBillable bool `json:"is_billable"`
}

type ListAccountResponse struct {
	pagination.PageInfo
	Accounts []AccountView `json:"accounts"`
}

type SaveContractRequest struct {
	AccountID        string
	ContractID       string // empty on create
	Name             *string
	StartOn          *time.Time
	EndOn            *time.Time
	NotificationDays *int
	Status           *string
}

type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (AccountView, error)
	GetByID(ctx context.Context, id string) (AccountView, error)
	List(ctx context.Context, req ListAccountRequest) (ListAccountResponse, error)
	Update(ctx context.Context, req UpdateAccountRequest) (AccountView, error)
	Delete(ctx context.Context, id string) error

	AttachEntity(ctx context.Context, accountID string, rel RelationshipInput) (EntityAccount, error)
	ListEntities(ctx context.Context, accountID string) ([]EntityAccount, error)
	ListAccountsForEntity(ctx context.Context, entityID string) ([]EntityAccount, error)
	DetachEntity(ctx context.Context, accountID, relationshipID string) error

	AttachContract(ctx context.Context, req SaveContractRequest) (AccountContract, error)
	GetContract(ctx context.Context, accountID, contractID string) (AccountContract, error)
	ListContracts(ctx context.Context, accountID string) ([]AccountContract, error)
	UpdateContract(ctx context.Context, req SaveContractRequest) (AccountContract, error)
	DetachContract(ctx context.Context, accountID, contractID string) error
}

var (
	ErrNotFound             = errors.New("account_not_exist")
	ErrInvalidID            = errors.New("invalid_account_id")
	ErrRequiresEntity       = errors.New("account_requires_entity")
	ErrInvalidRelationship  = errors.New("invalid_relationship_type")
	ErrRelationshipNotFound = errors.New("entity_account_not_exist")
	ErrRelationshipExists   = errors.New("entity_account_exists")
	ErrContractNotFound     = errors.New("account_contract_not_exist")
	ErrContractExists       = errors.New("account_contract_exists")
	ErrInvalidContractName  = errors.New("invalid_contract_name")
)
