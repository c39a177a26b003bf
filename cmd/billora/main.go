package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice"
	"github.com/smallbiznis/billora/internal/merchant"
	"github.com/smallbiznis/billora/internal/observability"
	"github.com/smallbiznis/billora/internal/platform"
	"github.com/smallbiznis/billora/internal/server"
	"github.com/smallbiznis/billora/pkg/db"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		merchant.Module,
		platform.Module,
		invoice.Module,

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
