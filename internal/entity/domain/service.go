package domain

import (
	"context"
	"errors"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
)

type CreateEntityRequest struct {
	Type        string
	FirstName   *string
	LastName    *string
	CompanyName *string
	TIN         *string
}

// UpdateEntityRequest carries partial-update fields. Nil leaves the stored
// value untouched; an explicit empty string nulls a nullable field. Type is
// not updatable.
type UpdateEntityRequest struct {
	ID          string
	FirstName   *string
	LastName    *string
	CompanyName *string
	TIN         *string
}

type ListEntityRequest struct {
	Page pagination.Pagination
}

type ListEntityResponse struct {
	pagination.PageInfo
	Entities []Entity `json:"entities"`
}

type SaveAddressRequest struct {
	ParentID     string
	AddressID    string // empty on create
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Country      *string
	Zip          *string
}

type SaveEmailRequest struct {
	EntityID string
	EmailID  string // empty on create
	Email    *string
}

type SaveNumberRequest struct {
	EntityID    string
	NumberID    string // empty on create
	CountryCode *string
	AreaCode    *string
	LineNumber  *string
	Extension   *string
}

type SaveWebsiteRequest struct {
	EntityID    string
	WebsiteID   string // empty on create
	URL         *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateEntityRequest) (Entity, error)
	GetByID(ctx context.Context, id string) (Entity, error)
	List(ctx context.Context, req ListEntityRequest) (ListEntityResponse, error)
	Update(ctx context.Context, req UpdateEntityRequest) (Entity, error)
	Delete(ctx context.Context, id string) error

	CreateAddress(ctx context.Context, parent AddressParent, req SaveAddressRequest) (Address, error)
	GetAddress(ctx context.Context, parentID, addressID string) (Address, error)
	ListAddresses(ctx context.Context, parent AddressParent, parentID string) ([]Address, error)
	UpdateAddress(ctx context.Context, req SaveAddressRequest) (Address, error)
	DeleteAddress(ctx context.Context, parentID, addressID string) error

	CreateEmail(ctx context.Context, req SaveEmailRequest) (Email, error)
	GetEmail(ctx context.Context, entityID, emailID string) (Email, error)
	ListEmails(ctx context.Context, entityID string) ([]Email, error)
	UpdateEmail(ctx context.Context, req SaveEmailRequest) (Email, error)
	DeleteEmail(ctx context.Context, entityID, emailID string) error

	CreateNumber(ctx context.Context, req SaveNumberRequest) (PhoneNumber, error)
	GetNumber(ctx context.Context, entityID, numberID string) (PhoneNumber, error)
	ListNumbers(ctx context.Context, entityID string) ([]PhoneNumber, error)
	UpdateNumber(ctx context.Context, req SaveNumberRequest) (PhoneNumber, error)
	DeleteNumber(ctx context.Context, entityID, numberID string) error

	CreateWebsite(ctx context.Context, req SaveWebsiteRequest) (Website, error)
	GetWebsite(ctx context.Context, entityID, websiteID string) (Website, error)
	ListWebsites(ctx context.Context, entityID string) ([]Website, error)
	UpdateWebsite(ctx context.Context, req SaveWebsiteRequest) (Website, error)
	DeleteWebsite(ctx context.Context, entityID, websiteID string) error
}

var (
	ErrNotFound        = errors.New("entity_not_exist")
	ErrInvalidID       = errors.New("invalid_entity_id")
	ErrInvalidType     = errors.New("invalid_entity_type")
	ErrTypeImmutable   = errors.New("entity_type_immutable")
	ErrInvalidName     = errors.New("invalid_entity_name")
	ErrAddressNotFound = errors.New("address_not_exist")
	ErrEmailNotFound   = errors.New("email_not_exist")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrNumberNotFound  = errors.New("number_not_exist")
	ErrWebsiteNotFound = errors.New("website_not_exist")
	ErrInvalidURL      = errors.New("invalid_url")
)
