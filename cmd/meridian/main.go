package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/config"
	"github.com/meridiancrm/meridian/internal/migration"
	"github.com/meridiancrm/meridian/internal/observability"
	"github.com/meridiancrm/meridian/internal/server"
	"github.com/meridiancrm/meridian/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
