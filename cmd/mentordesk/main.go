package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/solostack/mentordesk/internal/clock"
	"github.com/solostack/mentordesk/internal/config"
	"github.com/solostack/mentordesk/internal/migration"
	"github.com/solostack/mentordesk/internal/observability"
	"github.com/solostack/mentordesk/internal/server"
	"github.com/solostack/mentordesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
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
