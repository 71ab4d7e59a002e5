package pricing

import (
	"github.com/meridiancrm/meridian/internal/pricing/repository"
	"github.com/meridiancrm/meridian/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
