package pricelist

import (
	"github.com/meridiancrm/meridian/internal/pricelist/repository"
	"github.com/meridiancrm/meridian/internal/pricelist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricelist.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
