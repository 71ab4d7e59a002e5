package entity

import (
	"github.com/meridiancrm/meridian/internal/entity/repository"
	"github.com/meridiancrm/meridian/internal/entity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("entity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
