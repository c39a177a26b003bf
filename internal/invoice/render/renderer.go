package render

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"go.uber.org/zap"
)

// Renderer turns an invoice document into an A4 portrait PDF. The
// theme is fixed at construction; renders share nothing, so the
// renderer is safe for concurrent use.
type Renderer struct {
	theme  Theme
	client *http.Client
	clock  clock.Clock
	log    *zap.Logger
}

func NewRenderer(cfg config.Config, clk clock.Clock, log *zap.Logger) *Renderer {
	return &Renderer{
		theme:  DefaultTheme(),
		client: &http.Client{Timeout: cfg.Export.ImageTimeout},
		clock:  clk,
		log:    log.Named("invoice.render"),
	}
}

// Render lays out the document and returns the PDF bytes. Remote
// image failures degrade to placeholder boxes; only layout or
// encoding faults return an error.
func (r *Renderer) Render(ctx context.Context, doc domain.Document) ([]byte, error) {
	p := &page{
		ctx:    ctx,
		theme:  r.theme,
		doc:    doc,
		images: newImageCache(r.client, r.log),
	}
	p.pdf = gofpdf.New("P", "mm", "A4", "")
	p.tr = p.pdf.UnicodeTranslatorFromDescriptor("")
	// Fixed metadata keeps renders of the same document byte-identical.
	p.pdf.SetCreationDate(r.clock.Now())
	p.pdf.SetCatalogSort(true)
	p.pdf.SetMargins(r.theme.PageMargin, r.theme.PageMargin, r.theme.PageMargin)
	p.pdf.SetAutoPageBreak(false, 0)
	p.pdf.SetFooterFunc(p.footer)
	p.pdf.AddPage()

	p.header()
	p.metaStrip()
	p.addressGrid()
	p.itemTable()
	p.totalsCard()

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// page carries the state of one render pass.
type page struct {
	ctx    context.Context
	theme  Theme
	doc    domain.Document
	images *imageCache
	pdf    *gofpdf.Fpdf
	tr     func(string) string
}

func (p *page) contentWidth() float64 {
	w, _ := p.pdf.GetPageSize()
	return w - 2*p.theme.PageMargin
}

// breakY is the lowest y content may reach before the footer zone.
func (p *page) breakY() float64 {
	_, h := p.pdf.GetPageSize()
	return h - p.theme.FooterHeight
}

func (p *page) money(d decimal.Decimal) string {
	return p.doc.CurrencySymbol + d.StringFixed(2)
}

func (p *page) setColor(c RGB)     { p.pdf.SetTextColor(c.R, c.G, c.B) }
func (p *page) setFillColor(c RGB) { p.pdf.SetFillColor(c.R, c.G, c.B) }
func (p *page) setDrawColor(c RGB) { p.pdf.SetDrawColor(c.R, c.G, c.B) }

func (p *page) rule(y float64, c RGB) {
	w, _ := p.pdf.GetPageSize()
	p.setDrawColor(c)
	p.pdf.Line(p.theme.PageMargin, y, w-p.theme.PageMargin, y)
}

func (p *page) header() {
	th := p.theme
	x, y := th.PageMargin, th.PageMargin
	w, _ := p.pdf.GetPageSize()

	p.imageSlot(p.doc.Company.LogoURL, x, y, th.LogoSize, th.LogoSize)

	textX := x + th.LogoSize + 4
	p.pdf.SetFont(th.FontFamily, "B", 13)
	p.setColor(th.Primary)
	p.pdf.SetXY(textX, y+1)
	p.pdf.CellFormat(0, 6, p.tr(strings.ToUpper(p.doc.Company.Name)), "", 0, "L", false, 0, "")

	p.pdf.SetFont(th.FontFamily, "", 8)
	p.pdf.SetXY(textX, y+7)
	p.pdf.CellFormat(0, 4, p.tr(p.doc.Company.LegalName), "", 0, "L", false, 0, "")

	p.pdf.SetFont(th.FontFamily, "B", 18)
	p.pdf.SetXY(x, y)
	p.pdf.CellFormat(p.contentWidth(), 8, p.tr(strings.ToUpper(p.doc.Labels.InvoiceTitle)), "", 0, "R", false, 0, "")

	badge := p.tr(strings.ToUpper(p.doc.StatusLabel()))
	p.pdf.SetFont(th.FontFamily, "B", 8)
	bw := p.pdf.GetStringWidth(badge) + 6
	p.setFillColor(th.Primary)
	p.setColor(th.White)
	p.pdf.SetXY(w-th.PageMargin-bw, y+9)
	p.pdf.CellFormat(bw, 5, badge, "", 0, "CM", true, 0, "")

	p.rule(y+th.LogoSize+5, th.Primary)
	p.pdf.SetY(y + th.LogoSize + 10)
}

func (p *page) metaStrip() {
	th := p.theme
	y := p.pdf.GetY()
	cw := p.contentWidth()
	colW := cw / 4

	fields := []struct{ label, value string }{
		{p.doc.Labels.InvoiceNo, p.doc.Number},
		{p.doc.Labels.DateIssued, p.doc.Date},
		{p.doc.Labels.DueDate, p.doc.DueDate},
		{p.doc.Labels.Amount, p.money(p.doc.Total)},
	}
	for i, f := range fields {
		x := th.PageMargin + float64(i)*colW
		p.pdf.SetFont(th.FontFamily, "", 6)
		p.setColor(th.Muted)
		p.pdf.SetXY(x, y)
		p.pdf.CellFormat(colW, 3, p.tr(strings.ToUpper(f.label)), "", 0, "L", false, 0, "")

		p.pdf.SetFont(th.FontFamily, "B", 10)
		p.setColor(th.Primary)
		p.pdf.SetXY(x, y+4)
		p.pdf.CellFormat(colW, 5, p.tr(f.value), "", 0, "L", false, 0, "")
	}

	p.rule(y+11, th.Border)
	p.pdf.SetY(y + 15)
}

func (p *page) addressGrid() {
	th := p.theme
	y := p.pdf.GetY()
	cw := p.contentWidth()
	colW := cw * 0.30

	bottom := p.addressColumn(th.PageMargin, y, colW,
		p.doc.Labels.From, p.doc.Company.Name, p.doc.Company.AddressLines, p.doc.Company.Email)

	b := p.addressColumn(th.PageMargin+cw*0.35, y, colW,
		p.doc.Labels.BillTo, p.doc.Customer.Name, p.doc.Customer.BillingLines, p.doc.Customer.Email)
	if b > bottom {
		bottom = b
	}

	if p.doc.Customer.ShippingLines != nil {
		b = p.addressColumn(th.PageMargin+cw*0.70, y, colW,
			p.doc.Labels.ShipTo, p.doc.Customer.Name, p.doc.Customer.ShippingLines, "")
		if b > bottom {
			bottom = b
		}
	}
	p.pdf.SetY(bottom + 8)
}

func (p *page) addressColumn(x, y, w float64, label, name string, lines []string, email string) float64 {
	th := p.theme
	p.pdf.SetFont(th.FontFamily, "B", 6)
	p.setColor(th.Muted)
	p.pdf.SetXY(x, y)
	p.pdf.CellFormat(w, 3, p.tr(strings.ToUpper(label)), "", 0, "L", false, 0, "")
	p.setDrawColor(th.Border)
	p.pdf.Line(x, y+4, x+w*0.5, y+4)

	cy := y + 6
	p.pdf.SetFont(th.FontFamily, "B", 9)
	p.setColor(th.Primary)
	p.pdf.SetXY(x, cy)
	p.pdf.CellFormat(w, th.LineHeight, p.tr(name), "", 0, "L", false, 0, "")
	cy += th.LineHeight + 1

	p.pdf.SetFont(th.FontFamily, "", 8)
	for _, line := range lines {
		p.pdf.SetXY(x, cy)
		p.pdf.CellFormat(w, th.LineHeight, p.tr(line), "", 0, "L", false, 0, "")
		cy += th.LineHeight
	}
	if email != "" {
		p.pdf.SetXY(x, cy)
		p.pdf.CellFormat(w, th.LineHeight, p.tr(email), "", 0, "L", false, 0, "")
		cy += th.LineHeight
	}
	return cy
}

func (p *page) itemTable() {
	p.tableHeader()
	for _, item := range p.doc.Items {
		if p.pdf.GetY()+p.theme.RowHeight > p.breakY() {
			p.pdf.AddPage()
			p.pdf.SetY(p.theme.PageMargin)
			p.tableHeader()
		}
		p.tableRow(item)
	}
}

func (p *page) columnEdges() (xs [5]float64, ws [5]float64) {
	cw := p.contentWidth()
	x := p.theme.PageMargin
	for i, frac := range p.theme.Columns {
		xs[i] = x
		ws[i] = cw * frac
		x += ws[i]
	}
	return xs, ws
}

func (p *page) tableHeader() {
	th := p.theme
	y := p.pdf.GetY()
	xs, ws := p.columnEdges()
	labels := [5]string{
		p.doc.Labels.Product,
		p.doc.Labels.Description,
		p.doc.Labels.Qty,
		p.doc.Labels.Price,
		p.doc.Labels.Total,
	}
	aligns := [5]string{"L", "L", "C", "R", "R"}

	p.pdf.SetFont(th.FontFamily, "B", 8)
	p.setColor(th.Primary)
	for i := range labels {
		p.pdf.SetXY(xs[i], y)
		p.pdf.CellFormat(ws[i], 4, p.tr(strings.ToUpper(labels[i])), "", 0, aligns[i], false, 0, "")
	}
	p.rule(y+6, th.Primary)
	p.pdf.SetY(y + 8)
}

func (p *page) tableRow(item domain.Item) {
	th := p.theme
	y := p.pdf.GetY()
	xs, ws := p.columnEdges()

	thumbY := y + (th.RowHeight-th.ThumbSize)/2 - 1
	p.imageSlot(item.ImageURL, xs[0], thumbY, th.ThumbSize, th.ThumbSize)

	p.pdf.SetFont(th.FontFamily, "B", 8)
	p.setColor(th.Primary)
	p.pdf.SetXY(xs[1], y+1)
	p.pdf.CellFormat(ws[1], 4, p.tr(item.Title), "", 0, "L", false, 0, "")
	if item.Detail != "" {
		p.pdf.SetFont(th.FontFamily, "", 6)
		p.setColor(th.Muted)
		p.pdf.SetXY(xs[1], y+6)
		p.pdf.CellFormat(ws[1], 3, p.tr(item.Detail), "", 0, "L", false, 0, "")
	}

	p.pdf.SetFont(th.FontFamily, "", 9)
	p.setColor(th.Primary)
	p.pdf.SetXY(xs[2], y+2)
	p.pdf.CellFormat(ws[2], 5, strconv.Itoa(item.Quantity), "", 0, "C", false, 0, "")
	p.pdf.SetXY(xs[3], y+2)
	p.pdf.CellFormat(ws[3], 5, p.tr(p.money(item.Price)), "", 0, "R", false, 0, "")
	p.pdf.SetXY(xs[4], y+2)
	p.pdf.CellFormat(ws[4], 5, p.tr(p.money(item.Total)), "", 0, "R", false, 0, "")

	p.rule(y+th.RowHeight-2, th.Border)
	p.pdf.SetY(y + th.RowHeight)
}

// totalsCard draws the summary card. It never splits across pages; if
// it does not fit under the table it moves to a fresh page whole.
func (p *page) totalsCard() {
	th := p.theme
	rowH := 7.0
	barH := 9.0
	cardH := 4*rowH + barH + 2*th.CardPadding + 2

	y := p.pdf.GetY() + 4
	if y+cardH > p.breakY() {
		p.pdf.AddPage()
		y = th.PageMargin
	}

	cw := p.contentWidth()
	cardW := cw * th.CardWidth
	x := th.PageMargin + cw - cardW

	p.setFillColor(th.CardFill)
	p.setDrawColor(th.Border)
	p.pdf.RoundedRect(x, y, cardW, cardH, 1.5, "1234", "FD")

	innerX := x + th.CardPadding
	innerW := cardW - 2*th.CardPadding
	cy := y + th.CardPadding

	rows := []struct {
		label string
		value string
		line  bool
	}{
		{p.doc.Labels.Subtotal, p.money(p.doc.Subtotal), true},
		{p.doc.Labels.Discount, p.money(decimal.Zero), true},
		{p.doc.Labels.Tax, p.money(p.doc.Tax), true},
		{p.doc.Labels.Shipping, p.money(p.doc.Shipping), false},
	}
	for _, row := range rows {
		p.pdf.SetFont(th.FontFamily, "", 7)
		p.setColor(th.Muted)
		p.pdf.SetXY(innerX, cy)
		p.pdf.CellFormat(innerW/2, rowH-2, p.tr(strings.ToUpper(row.label)), "", 0, "L", false, 0, "")

		p.pdf.SetFont(th.FontFamily, "B", 8)
		p.setColor(th.Primary)
		p.pdf.SetXY(innerX+innerW/2, cy)
		p.pdf.CellFormat(innerW/2, rowH-2, p.tr(row.value), "", 0, "R", false, 0, "")

		if row.line {
			p.setDrawColor(th.Border)
			p.pdf.Line(innerX, cy+rowH-1, innerX+innerW, cy+rowH-1)
		}
		cy += rowH
	}

	p.setFillColor(th.Primary)
	p.pdf.Rect(innerX, cy+1, innerW, barH, "F")
	p.pdf.SetFont(th.FontFamily, "B", 9)
	p.setColor(th.White)
	p.pdf.SetXY(innerX+2, cy+1)
	p.pdf.CellFormat(innerW/2, barH, p.tr(strings.ToUpper(p.doc.Labels.GrandTotal)), "", 0, "L", false, 0, "")
	p.pdf.SetFont(th.FontFamily, "B", 11)
	p.pdf.SetXY(innerX+innerW/2-2, cy+1)
	p.pdf.CellFormat(innerW/2, barH, p.tr(p.money(p.doc.Total)), "", 0, "R", false, 0, "")

	p.pdf.SetY(cy + barH + th.CardPadding)
}

// footer runs on every page close: rule, thank-you line, decorative
// social icons, and the stamp in the bottom-right corner.
func (p *page) footer() {
	th := p.theme
	w, h := p.pdf.GetPageSize()
	y := h - th.FooterHeight + 6

	p.rule(y, th.Primary)

	p.pdf.SetFont(th.FontFamily, "B", 9)
	p.setColor(th.Primary)
	p.pdf.SetXY(th.PageMargin, y+3)
	p.pdf.CellFormat(p.contentWidth(), 5, p.tr(strings.ToUpper(p.doc.Labels.ThankYou)), "", 0, "C", false, 0, "")

	iconCount := float64(len(th.SocialIconURLs))
	rowW := iconCount*th.SocialIcon + (iconCount-1)*6
	ix := (w - rowW) / 2
	for _, u := range th.SocialIconURLs {
		p.imageSlot(u, ix, y+10, th.SocialIcon, th.SocialIcon)
		ix += th.SocialIcon + 6
	}

	p.pdf.SetFont(th.FontFamily, "", 7)
	p.setColor(th.Muted)
	p.pdf.SetXY(th.PageMargin, h-th.PageMargin-3)
	p.pdf.CellFormat(p.contentWidth(), 3, p.tr(p.doc.Labels.PageNumber), "", 0, "R", false, 0, "")
}

// imageSlot draws the image at the given box, or a neutral placeholder
// when the URL is empty or the fetch failed.
func (p *page) imageSlot(url string, x, y, w, h float64) {
	e := p.images.fetch(p.ctx, url)
	if !e.ok {
		p.setFillColor(p.theme.Background)
		p.pdf.Rect(x, y, w, h, "F")
		return
	}

	opt := gofpdf.ImageOptions{ImageType: e.kind}
	if p.pdf.GetImageInfo(url) == nil {
		p.pdf.RegisterImageOptionsReader(url, opt, bytes.NewReader(e.data))
	}
	p.pdf.ImageOptions(url, x, y, w, h, false, opt, 0, "")
	if p.pdf.Err() {
		// A corrupt image must not poison the document.
		p.pdf.ClearError()
		p.setFillColor(p.theme.Background)
		p.pdf.Rect(x, y, w, h, "F")
	}
}
