package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice/assemble"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/invoice/export"
	"github.com/smallbiznis/billora/internal/invoice/preview"
	"github.com/smallbiznis/billora/internal/invoice/render"
	merchantdomain "github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/observability/metrics"
	"github.com/smallbiznis/billora/internal/platform"
	"github.com/smallbiznis/billora/internal/translation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	shopID string

	source    platform.Source
	store     merchantdomain.Store
	assembler *assemble.Assembler
	renderer  *render.Renderer
	exporter  *export.Exporter
	previews  *preview.Manager
	metrics   *metrics.ExportMetrics
	log       *zap.Logger
}

type ServiceParam struct {
	fx.In

	Config    config.Config
	Source    platform.Source
	Store     merchantdomain.Store
	Assembler *assemble.Assembler
	Renderer  *render.Renderer
	Exporter  *export.Exporter
	Previews  *preview.Manager
	Metrics   *metrics.ExportMetrics
	Log       *zap.Logger
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		shopID:    p.Config.Platform.ShopDomain,
		source:    p.Source,
		store:     p.Store,
		assembler: p.Assembler,
		renderer:  p.Renderer,
		exporter:  p.Exporter,
		previews:  p.Previews,
		metrics:   p.Metrics,
		log:       p.Log.Named("invoice.service"),
	}
}

// ListOrders returns the rows for the admin orders table.
func (s *Service) ListOrders(ctx context.Context) ([]invoicedomain.OrderRow, error) {
	snapshot, err := s.source.FetchOrders(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]invoicedomain.OrderRow, 0, len(snapshot.Orders))
	for _, order := range snapshot.Orders {
		customer := "Guest"
		if order.Customer != nil && order.Customer.DisplayName != "" {
			customer = order.Customer.DisplayName
		}
		rows = append(rows, invoicedomain.OrderRow{
			ID:            order.ID,
			Name:          order.Name,
			Customer:      customer,
			Date:          order.CreatedAt.Format("Jan 2, 2006"),
			Amount:        displayAmount(order),
			PaymentStatus: order.DisplayFinancialStatus,
			Fulfillment:   order.DisplayFulfillmentStatus,
		})
	}
	return rows, nil
}

// Generate assembles the document for one order without rendering it.
// Non-zero fields of the override replace the assembled values.
func (s *Service) Generate(ctx context.Context, orderName string, override *invoicedomain.Document) (*invoicedomain.Document, error) {
	doc, err := s.prepare(ctx, orderName)
	if err != nil {
		return nil, err
	}
	if override != nil {
		doc = applyOverride(doc, *override)
	}
	return &doc, nil
}

// View renders the order and opens a preview session around it.
func (s *Service) View(ctx context.Context, orderName string) (invoicedomain.SessionInfo, error) {
	doc, err := s.prepare(ctx, orderName)
	if err != nil {
		return invoicedomain.SessionInfo{}, err
	}
	pdf, err := s.render(ctx, doc, "preview")
	if err != nil {
		return invoicedomain.SessionInfo{}, err
	}
	return s.previews.Open(doc, pdf), nil
}

// Download renders a fresh artifact, or the caller's edited document
// when one is supplied.
func (s *Service) Download(ctx context.Context, orderName string, override *invoicedomain.Document) (invoicedomain.Artifact, error) {
	var doc invoicedomain.Document
	if override != nil {
		doc = *override
	} else {
		var err error
		if doc, err = s.prepare(ctx, orderName); err != nil {
			return invoicedomain.Artifact{}, err
		}
	}
	pdf, err := s.render(ctx, doc, "download")
	if err != nil {
		return invoicedomain.Artifact{}, err
	}
	return invoicedomain.Artifact{Filename: doc.Filename(), Data: pdf}, nil
}

// ExportSelection runs the batch pipeline over the selected orders.
func (s *Service) ExportSelection(ctx context.Context, orderNames []string) (invoicedomain.ExportSummary, error) {
	return s.exporter.ExportBatch(ctx, orderNames, func(ctx context.Context, name string) (invoicedomain.Artifact, error) {
		doc, err := s.prepare(ctx, name)
		if err != nil {
			return invoicedomain.Artifact{}, err
		}
		pdf, err := s.render(ctx, doc, "batch")
		if err != nil {
			return invoicedomain.Artifact{}, err
		}
		return invoicedomain.Artifact{Filename: doc.Filename(), Data: pdf}, nil
	})
}

func (s *Service) UpdatePreview(ctx context.Context, sessionID, path, value string) (invoicedomain.Document, error) {
	return s.previews.UpdateField(sessionID, path, value)
}

func (s *Service) CommitPreview(ctx context.Context, sessionID string) (invoicedomain.SessionInfo, error) {
	return s.previews.Commit(ctx, sessionID)
}

func (s *Service) ClosePreview(ctx context.Context, sessionID string) {
	s.previews.Close(sessionID)
}

// prepare fetches the order plus the merchant's branding and labels
// and assembles the document. Store reads never block assembly; they
// degrade to zero values inside the store layer.
func (s *Service) prepare(ctx context.Context, orderName string) (invoicedomain.Document, error) {
	shop, order, err := s.source.FetchOrder(ctx, orderName)
	if err != nil {
		if errors.Is(err, platform.ErrOrderNotFound) {
			return invoicedomain.Document{}, invoicedomain.ErrOrderNotFound
		}
		return invoicedomain.Document{}, err
	}

	cfg, err := s.store.GetConfiguration(ctx, s.shopID)
	if err != nil {
		return invoicedomain.Document{}, err
	}
	overrides, err := s.store.GetTranslations(ctx, s.shopID)
	if err != nil {
		return invoicedomain.Document{}, err
	}

	locale := cfg.InvoiceLocale
	if locale == "" {
		locale = translation.DefaultLocale
	}
	labels := translation.Resolve(locale, overrides)

	return s.assembler.Assemble(shop, order, cfg, labels)
}

func (s *Service) render(ctx context.Context, doc invoicedomain.Document, mode string) ([]byte, error) {
	start := time.Now()
	pdf, err := s.renderer.Render(ctx, doc)
	if err != nil {
		s.log.Error("invoice render failed",
			zap.String("invoice", doc.Number),
			zap.String("mode", mode),
			zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveRender(mode, time.Since(start))
	return pdf, nil
}

// applyOverride lays the caller's edits over an assembled document.
// Zero-valued override fields keep the assembled value.
func applyOverride(doc, o invoicedomain.Document) invoicedomain.Document {
	if o.Number != "" {
		doc.Number = o.Number
	}
	if o.Date != "" {
		doc.Date = o.Date
	}
	if o.DueDate != "" {
		doc.DueDate = o.DueDate
	}
	if o.Status != "" {
		doc.Status = o.Status
	}
	if o.CurrencySymbol != "" {
		doc.CurrencySymbol = o.CurrencySymbol
	}
	if o.Company.Name != "" {
		doc.Company.Name = o.Company.Name
	}
	if o.Company.LegalName != "" {
		doc.Company.LegalName = o.Company.LegalName
	}
	if o.Company.Email != "" {
		doc.Company.Email = o.Company.Email
	}
	if o.Company.LogoURL != "" {
		doc.Company.LogoURL = o.Company.LogoURL
	}
	if len(o.Company.AddressLines) > 0 {
		doc.Company.AddressLines = o.Company.AddressLines
	}
	if o.Customer.Name != "" {
		doc.Customer.Name = o.Customer.Name
	}
	if o.Customer.Email != "" {
		doc.Customer.Email = o.Customer.Email
	}
	if o.Customer.Phone != "" {
		doc.Customer.Phone = o.Customer.Phone
	}
	if len(o.Customer.BillingLines) > 0 {
		doc.Customer.BillingLines = o.Customer.BillingLines
	}
	if o.Customer.ShippingLines != nil {
		doc.Customer.ShippingLines = o.Customer.ShippingLines
	}
	if len(o.Items) > 0 {
		doc.Items = o.Items
	}
	if !o.Subtotal.IsZero() {
		doc.Subtotal = o.Subtotal
	}
	if !o.Tax.IsZero() {
		doc.Tax = o.Tax
	}
	if !o.Shipping.IsZero() {
		doc.Shipping = o.Shipping
	}
	if !o.Total.IsZero() {
		doc.Total = o.Total
	}
	if !o.Labels.IsZero() {
		doc.Labels = o.Labels
	}
	return doc
}

func displayAmount(order platform.Order) string {
	symbol := assemble.SymbolFor(order.TotalPrice.ShopMoney.CurrencyCode)
	total, err := decimal.NewFromString(order.TotalPrice.ShopMoney.Amount)
	if err != nil {
		return symbol + order.TotalPrice.ShopMoney.Amount
	}
	return symbol + total.StringFixed(2)
}
