package user

import (
	"github.com/meridiancrm/meridian/internal/user/repository"
	"github.com/meridiancrm/meridian/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
