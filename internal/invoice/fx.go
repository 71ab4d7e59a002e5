package invoice

import (
	"github.com/meridiancrm/meridian/internal/invoice/repository"
	"github.com/meridiancrm/meridian/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
