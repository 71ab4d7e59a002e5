package product

import (
	"github.com/meridiancrm/meridian/internal/product/repository"
	"github.com/meridiancrm/meridian/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
