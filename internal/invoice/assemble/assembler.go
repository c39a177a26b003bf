package assemble

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	merchant "github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/platform"
	"github.com/smallbiznis/billora/internal/translation"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "Jan 2, 2006"

// The platform reports this variant title for products without real
// variants; it never appears on an invoice.
const noVariant = "Default Title"

const guestName = "Guest"

// Assembler maps a raw platform order plus merchant branding and a
// resolved label set into a self-contained invoice document. Assembly
// is deterministic; the clock only backfills dates the platform left
// empty.
type Assembler struct {
	clock clock.Clock
}

func New(c clock.Clock) *Assembler {
	return &Assembler{clock: c}
}

// Assemble validates the order's required fields and builds the
// document. Optional fields (customer, shipping address, images)
// degrade to empty values; a missing identity or an unparseable money
// amount is a validation error.
func (a *Assembler) Assemble(shop platform.Shop, order *platform.Order, cfg merchant.Configuration, labels translation.LabelSet) (domain.Document, error) {
	if order == nil {
		return domain.Document{}, &domain.ValidationError{Field: "order", Reason: "missing"}
	}

	number := strings.TrimPrefix(strings.TrimSpace(order.Name), "#")
	if number == "" {
		return domain.Document{}, &domain.ValidationError{Field: "name", Reason: "missing"}
	}

	code := order.TotalPrice.ShopMoney.CurrencyCode
	if code == "" {
		return domain.Document{}, &domain.ValidationError{Field: "currencyCode", Reason: "missing"}
	}

	total, err := requiredAmount("total", order.TotalPrice.ShopMoney.Amount)
	if err != nil {
		return domain.Document{}, err
	}
	subtotal, err := optionalAmount("subtotal", order.SubtotalPrice.ShopMoney.Amount)
	if err != nil {
		return domain.Document{}, err
	}
	tax, err := optionalAmount("tax", order.TotalTax.ShopMoney.Amount)
	if err != nil {
		return domain.Document{}, err
	}
	shipping, err := optionalAmount("shipping", order.TotalShipping.ShopMoney.Amount)
	if err != nil {
		return domain.Document{}, err
	}

	issued := order.CreatedAt
	if issued.IsZero() {
		issued = a.clock.Now()
	}
	date := issued.Format(dateLayout)

	items := make([]domain.Item, 0, len(order.LineItems))
	for i, line := range order.LineItems {
		item, err := assembleItem(i, line)
		if err != nil {
			return domain.Document{}, err
		}
		items = append(items, item)
	}

	status := domain.StatusPending
	if order.DisplayFinancialStatus == "PAID" {
		status = domain.StatusPaid
	}

	doc := domain.Document{
		Number:         number,
		Date:           date,
		DueDate:        date,
		Status:         status,
		Company:        assembleCompany(shop, cfg),
		Customer:       assembleCustomer(order),
		Items:          items,
		Subtotal:       subtotal,
		Tax:            tax,
		Shipping:       shipping,
		Total:          total,
		CurrencySymbol: SymbolFor(code),
		Labels:         labels,
	}
	return doc, nil
}

func assembleCompany(shop platform.Shop, cfg merchant.Configuration) domain.Company {
	lines := make([]string, 0, 4)
	for _, l := range strings.Split(cfg.Address, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if cfg.PhoneNumber != "" {
		lines = append(lines, cfg.PhoneNumber)
	}
	if cfg.TaxNumber != "" {
		lines = append(lines, "Tax ID: "+cfg.TaxNumber)
	}
	if cfg.RegisterNumber != "" {
		lines = append(lines, "Reg No: "+cfg.RegisterNumber)
	}

	return domain.Company{
		Name:         fallback(cfg.ShopName, shop.Name),
		LegalName:    fallback(cfg.CompanyName, shop.Name),
		Email:        fallback(cfg.Email, shop.Email),
		LogoURL:      cfg.LogoURL,
		AddressLines: lines,
	}
}

func assembleCustomer(order *platform.Order) domain.Customer {
	out := domain.Customer{
		Name:          guestName,
		Email:         order.Email,
		BillingLines:  addressLines(order.BillingAddress),
		ShippingLines: addressLines(order.ShippingAddress),
	}
	if c := order.Customer; c != nil {
		out.Name = fallback(c.DisplayName, guestName)
		out.Email = fallback(c.Email, order.Email)
		out.Phone = c.Phone
	}
	return out
}

func assembleItem(idx int, line platform.LineItem) (domain.Item, error) {
	if line.Quantity < 0 {
		return domain.Item{}, &domain.ValidationError{Field: itemField(idx, "quantity"), Reason: "negative"}
	}
	price, err := optionalAmount(itemField(idx, "price"), line.OriginalUnitPrice.ShopMoney.Amount)
	if err != nil {
		return domain.Item{}, err
	}

	detail := line.VariantTitle
	if detail == noVariant {
		detail = ""
	}
	return domain.Item{
		Title:    line.Title,
		Detail:   detail,
		Quantity: line.Quantity,
		Price:    price,
		Total:    price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2),
		ImageURL: line.ImageURL,
	}, nil
}

// addressLines keeps the platform's line order and drops blanks. A nil
// address yields nil, which downstream reads as "omit the section".
func addressLines(a *platform.Address) []string {
	if a == nil {
		return nil
	}
	lines := make([]string, 0, 4)
	for _, l := range []string{a.Address1, a.Address2, localityLine(a), a.Country} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func localityLine(a *platform.Address) string {
	region := strings.TrimSpace(a.Province + " " + a.Zip)
	switch {
	case a.City != "" && region != "":
		return a.City + ", " + region
	case a.City != "":
		return a.City
	default:
		return region
	}
}

func requiredAmount(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, &domain.ValidationError{Field: field, Reason: "missing"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: field, Reason: "unparseable amount"}
	}
	return d, nil
}

func optionalAmount(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: field, Reason: "unparseable amount"}
	}
	return d, nil
}

func itemField(idx int, name string) string {
	return "items[" + strconv.Itoa(idx) + "]." + name
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

var symbolPrinter = message.NewPrinter(language.AmericanEnglish)

// SymbolFor resolves a display symbol for an ISO currency code. Codes
// the currency tables do not know render as the code itself so the
// amount prefix is never blank.
func SymbolFor(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	s := symbolPrinter.Sprint(currency.Symbol(unit.Amount(0)))
	s = strings.TrimRight(s, "0123456789.,  ")
	if s == "" {
		return code
	}
	return s
}
