package db

import (
	"context"

	"github.com/smallbiznis/billora/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				log.Info("closing database")
				return sqlDB.Close()
			},
		})
	}),
)

// Open connects to the embedded settings database.
func Open(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.Store.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}
