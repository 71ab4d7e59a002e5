package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/auth/password"
	"github.com/meridiancrm/meridian/internal/user/domain"
	"github.com/meridiancrm/meridian/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.SysUser, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return domain.SysUser{}, domain.ErrInvalidUsername
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.SysUser{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.SysUser{}, domain.ErrInvalidPassword
	}

	existing, err := s.repo.FindByUsernameOrEmail(ctx, s.db, username, email)
	if err != nil {
		return domain.SysUser{}, err
	}
	if existing != nil {
		s.log.Warn("duplicate sys user rejected", zap.String("username", username))
		return domain.SysUser{}, domain.ErrExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.SysUser{}, err
	}

	user := domain.SysUser{
		ID:           s.genID.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	user.StampCreated(ctx, time.Now())

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		return domain.SysUser{}, err
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.SysUser, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.SysUser{}, err
	}

	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.SysUser{}, err
	}
	if user == nil {
		return domain.SysUser{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) (domain.ListUserResponse, error) {
	items, total, err := s.repo.List(ctx, s.db, req.Page)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	users := make([]domain.SysUser, 0, len(items))
	for _, item := range items {
		users = append(users, *item)
	}

	return domain.ListUserResponse{
		PageInfo: pagination.BuildPageInfo(total, req.Page),
		Users:    users,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateUserRequest) (domain.SysUser, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return domain.SysUser{}, err
	}

	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.SysUser{}, err
	}
	if user == nil {
		return domain.SysUser{}, domain.ErrNotFound
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return domain.SysUser{}, domain.ErrInvalidEmail
		}
		if email != user.Email {
			existing, err := s.repo.FindByUsernameOrEmail(ctx, s.db, "", email)
			if err != nil {
				return domain.SysUser{}, err
			}
			if existing != nil && existing.ID != user.ID {
				return domain.SysUser{}, domain.ErrExists
			}
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return domain.SysUser{}, domain.ErrInvalidPassword
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return domain.SysUser{}, err
		}
		user.PasswordHash = hash
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	user.StampUpdated(ctx, time.Now())

	if err := s.repo.Save(ctx, s.db, user); err != nil {
		return domain.SysUser{}, err
	}
	return *user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	user.StampDeleted(ctx, time.Now())
	return s.repo.Save(ctx, s.db, user)
}

func (s *Service) Authenticate(ctx context.Context, username, pass string) (domain.SysUser, error) {
	user, err := s.repo.FindByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		return domain.SysUser{}, err
	}
	if user == nil {
		return domain.SysUser{}, domain.ErrInvalidCredentials
	}
	if !password.Verify(pass, user.PasswordHash) {
		s.log.Warn("failed login attempt", zap.String("username", user.Username))
		return domain.SysUser{}, domain.ErrInvalidCredentials
	}
	return *user, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
