package domain

import (
	"context"
	"errors"

	"github.com/meridiancrm/meridian/pkg/db/pagination"
)

type CreateUserRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UpdateUserRequest struct {
	ID        string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

type ListUserRequest struct {
	Page pagination.Pagination
}

type ListUserResponse struct {
	pagination.PageInfo
	Users []SysUser `json:"sys_users"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (SysUser, error)
	GetByID(ctx context.Context, id string) (SysUser, error)
	List(ctx context.Context, req ListUserRequest) (ListUserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (SysUser, error)
	Delete(ctx context.Context, id string) error

	// Authenticate verifies the credential pair for login.
	Authenticate(ctx context.Context, username, password string) (SysUser, error)
}

var (
	ErrNotFound           = errors.New("sys_user_not_exist")
	ErrExists             = errors.New("sys_user_credential_combination_not_allowed")
	ErrInvalidID          = errors.New("invalid_sys_user_id")
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
