package account

import (
	"github.com/meridiancrm/meridian/internal/account/repository"
	"github.com/meridiancrm/meridian/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
