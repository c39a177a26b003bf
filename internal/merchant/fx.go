package merchant

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/merchant/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("merchant",
	fx.Provide(func(cfg config.Config, db *gorm.DB, genID *snowflake.Node, log *zap.Logger) (domain.Store, error) {
		if cfg.UseRemoteStore() {
			return store.NewHTTPStore(cfg, log), nil
		}
		return store.NewGormStore(db, genID, log)
	}),
)
