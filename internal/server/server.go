package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/billora/internal/config"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	merchantdomain "github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/observability/logger"
	"github.com/smallbiznis/billora/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server carries the handler dependencies for the admin HTTP surface.
type Server struct {
	cfg        config.Config
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
	store      merchantdomain.Store
	metrics    *metrics.Provider
}

type ServerParam struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	Store      merchantdomain.Store
	Metrics    *metrics.Provider
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:        p.Config,
		log:        p.Log.Named("server"),
		invoiceSvc: p.InvoiceSvc,
		store:      p.Store,
		metrics:    p.Metrics,
	}
}

// Router builds the gin engine with middleware and all routes.
func (s *Server) Router(httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(metrics.GinMiddleware(httpMetrics))

	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/orders", s.ListOrders)
		api.GET("/orders/:name/invoice", s.ViewInvoice)
		api.POST("/orders/:name/invoice/download", s.DownloadInvoice)
		api.POST("/exports", s.ExportInvoices)

		api.GET("/settings", s.GetSettings)
		api.PUT("/settings", s.PutSettings)
		api.GET("/translations", s.GetTranslations)
		api.PUT("/translations", s.PutTranslations)

		api.PATCH("/previews/:id", s.UpdatePreview)
		api.POST("/previews/:id/commit", s.CommitPreview)
		api.DELETE("/previews/:id", s.ClosePreview)
	}
	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// shopID resolves the merchant the request acts for. The admin app is
// installed per shop; the embedded deployment pins it in config.
func (s *Server) shopID(c *gin.Context) string {
	if shop := c.Query("shopId"); shop != "" {
		return shop
	}
	return s.cfg.Platform.ShopDomain
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

// RunHTTP starts the admin HTTP server on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, httpMetrics *metrics.HTTPMetrics, log *zap.Logger) {
	srv := &http.Server{
		Addr:         s.cfg.HTTP.Addr,
		Handler:      s.Router(httpMetrics),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
