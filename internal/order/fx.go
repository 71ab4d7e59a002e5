package order

import (
	"github.com/meridiancrm/meridian/internal/order/repository"
	"github.com/meridiancrm/meridian/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
