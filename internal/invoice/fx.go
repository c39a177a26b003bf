package invoice

import (
	"github.com/smallbiznis/billora/internal/invoice/assemble"
	"github.com/smallbiznis/billora/internal/invoice/export"
	"github.com/smallbiznis/billora/internal/invoice/preview"
	"github.com/smallbiznis/billora/internal/invoice/render"
	"github.com/smallbiznis/billora/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice",
	fx.Provide(assemble.New),
	fx.Provide(render.NewRenderer),
	fx.Provide(func(r *render.Renderer) preview.Renderer { return r }),
	fx.Provide(preview.NewManager),
	fx.Provide(export.New),
	fx.Provide(service.NewService),
)
