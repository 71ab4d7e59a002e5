package auth

import (
	"github.com/meridiancrm/meridian/internal/auth/session"
	"github.com/meridiancrm/meridian/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(token.NewIssuer),
	fx.Provide(session.NewManager),
)
