package assemble

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	merchant "github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/platform"
	"github.com/smallbiznis/billora/internal/translation"
)

func money(amount, code string) platform.MoneySet {
	return platform.MoneySet{ShopMoney: platform.Money{Amount: amount, CurrencyCode: code}}
}

func sampleOrder() *platform.Order {
	return &platform.Order{
		ID:                     "gid://shopify/Order/1",
		Name:                   "#1042",
		CreatedAt:              time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC),
		Email:                  "order@example.com",
		DisplayFinancialStatus: "PAID",
		TotalPrice:             money("115.00", "USD"),
		SubtotalPrice:          money("100.00", "USD"),
		TotalTax:               money("10.00", "USD"),
		TotalShipping:          money("5.00", "USD"),
		Customer: &platform.Customer{
			DisplayName: "Ada Lovelace",
			Email:       "ada@example.com",
		},
		BillingAddress: &platform.Address{
			Address1: "10 Analytical Way",
			City:     "London",
			Province: "LDN",
			Zip:      "E1 6AN",
			Country:  "United Kingdom",
		},
		LineItems: []platform.LineItem{
			{Title: "Widget", VariantTitle: "Blue", Quantity: 2, OriginalUnitPrice: money("45.00", "USD")},
			{Title: "Gadget", VariantTitle: "Default Title", Quantity: 1, OriginalUnitPrice: money("12.50", "USD")},
		},
	}
}

func newAssembler() *Assembler {
	return New(clock.NewManual(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestAssembleBasics(t *testing.T) {
	shop := platform.Shop{Name: "Demo Shop", Email: "shop@example.com"}
	doc, err := newAssembler().Assemble(shop, sampleOrder(), merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if doc.Number != "1042" {
		t.Errorf("number = %q, want 1042", doc.Number)
	}
	if doc.Date != "Mar 9, 2024" || doc.DueDate != "Mar 9, 2024" {
		t.Errorf("dates = %q / %q", doc.Date, doc.DueDate)
	}
	if doc.Status != domain.StatusPaid {
		t.Errorf("status = %q", doc.Status)
	}
	if doc.CurrencySymbol != "$" {
		t.Errorf("currency symbol = %q", doc.CurrencySymbol)
	}
	if !doc.Total.Equal(decimal.RequireFromString("115.00")) {
		t.Errorf("total = %s, want 115.00", doc.Total)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(doc.Items))
	}
}

func TestAssembleItemTotals(t *testing.T) {
	shop := platform.Shop{Name: "Demo Shop"}
	doc, err := newAssembler().Assemble(shop, sampleOrder(), merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for i, item := range doc.Items {
		want := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		if !item.Total.Equal(want) {
			t.Errorf("item %d total = %s, want %s", i, item.Total, want)
		}
	}
	if got := doc.Items[0].Total; !got.Equal(decimal.RequireFromString("90.00")) {
		t.Errorf("first item total = %s, want 90.00", got)
	}
}

func TestAssembleTotalIsAuthoritative(t *testing.T) {
	// Item totals sum to 102.50 here; the document total must still be
	// the order's own figure.
	doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, sampleOrder(), merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !doc.Total.Equal(decimal.RequireFromString("115.00")) {
		t.Errorf("total = %s, want the order's 115.00", doc.Total)
	}
}

func TestAssembleVariantSentinel(t *testing.T) {
	doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, sampleOrder(), merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if doc.Items[0].Detail != "Blue" {
		t.Errorf("variant detail = %q, want Blue", doc.Items[0].Detail)
	}
	if doc.Items[1].Detail != "" {
		t.Errorf("default-variant detail = %q, want empty", doc.Items[1].Detail)
	}
}

func TestAssembleCompanyFallbacks(t *testing.T) {
	shop := platform.Shop{Name: "Demo Shop", Email: "shop@example.com"}
	cfg := merchant.Configuration{
		Address:        "1 Market St\nSuite 5",
		PhoneNumber:    "+1 555 0100",
		TaxNumber:      "TAX-9",
		RegisterNumber: "REG-7",
	}
	doc, err := newAssembler().Assemble(shop, sampleOrder(), cfg, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if doc.Company.Name != "Demo Shop" || doc.Company.LegalName != "Demo Shop" {
		t.Errorf("company fallbacks: %+v", doc.Company)
	}
	if doc.Company.Email != "shop@example.com" {
		t.Errorf("company email = %q", doc.Company.Email)
	}
	want := []string{"1 Market St", "Suite 5", "+1 555 0100", "Tax ID: TAX-9", "Reg No: REG-7"}
	if len(doc.Company.AddressLines) != len(want) {
		t.Fatalf("company lines = %v", doc.Company.AddressLines)
	}
	for i := range want {
		if doc.Company.AddressLines[i] != want[i] {
			t.Errorf("company line %d = %q, want %q", i, doc.Company.AddressLines[i], want[i])
		}
	}
}

func TestAssembleAddressLinesNeverBlank(t *testing.T) {
	order := sampleOrder()
	order.BillingAddress = &platform.Address{Address1: "10 Analytical Way", Country: "United Kingdom"}
	order.ShippingAddress = &platform.Address{City: "Leeds", Zip: "LS1"}

	doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, order, merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, l := range doc.Customer.BillingLines {
		if l == "" {
			t.Fatalf("blank billing line in %v", doc.Customer.BillingLines)
		}
	}
	if got := doc.Customer.ShippingLines; len(got) != 1 || got[0] != "Leeds, LS1" {
		t.Errorf("shipping lines = %v", got)
	}
}

func TestAssembleNoShippingAddress(t *testing.T) {
	order := sampleOrder()
	order.ShippingAddress = nil
	doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, order, merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if doc.Customer.ShippingLines != nil {
		t.Errorf("shipping lines should be nil, got %v", doc.Customer.ShippingLines)
	}
}

func TestAssembleGuestCustomer(t *testing.T) {
	order := sampleOrder()
	order.Customer = nil
	doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, order, merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if doc.Customer.Name != "Guest" {
		t.Errorf("customer name = %q, want Guest", doc.Customer.Name)
	}
	if doc.Customer.Email != "order@example.com" {
		t.Errorf("customer email = %q, want the order email", doc.Customer.Email)
	}
}

func TestAssembleStatusMapping(t *testing.T) {
	for _, status := range []string{"PENDING", "PARTIALLY_PAID", "REFUNDED", "whatever"} {
		order := sampleOrder()
		order.DisplayFinancialStatus = status
		doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, order, merchant.Configuration{}, translation.Default())
		if err != nil {
			t.Fatalf("assemble(%s): %v", status, err)
		}
		if doc.Status != domain.StatusPending {
			t.Errorf("status %q mapped to %q, want PENDING", status, doc.Status)
		}
		if doc.StatusLabel() != translation.Default().StatusPending {
			t.Errorf("status %q label = %q", status, doc.StatusLabel())
		}
	}
}

func TestAssembleValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*platform.Order)
	}{
		{"missing name", func(o *platform.Order) { o.Name = "#" }},
		{"missing currency", func(o *platform.Order) { o.TotalPrice.ShopMoney.CurrencyCode = "" }},
		{"missing total", func(o *platform.Order) { o.TotalPrice.ShopMoney.Amount = "" }},
		{"bad total", func(o *platform.Order) { o.TotalPrice.ShopMoney.Amount = "abc" }},
		{"bad tax", func(o *platform.Order) { o.TotalTax.ShopMoney.Amount = "x" }},
		{"bad item price", func(o *platform.Order) { o.LineItems[0].OriginalUnitPrice.ShopMoney.Amount = "x" }},
		{"negative quantity", func(o *platform.Order) { o.LineItems[0].Quantity = -1 }},
	}
	for _, tc := range cases {
		order := sampleOrder()
		tc.mutate(order)
		_, err := newAssembler().Assemble(platform.Shop{Name: "s"}, order, merchant.Configuration{}, translation.Default())
		if err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
			continue
		}
		if !errors.Is(err, domain.ErrInvalidOrder) {
			t.Errorf("%s: error %v does not unwrap to invalid_order", tc.name, err)
		}
	}
}

func TestAssembleEmptyOptionalAmounts(t *testing.T) {
	order := sampleOrder()
	order.TotalTax.ShopMoney.Amount = ""
	order.TotalShipping.ShopMoney.Amount = ""
	doc, err := newAssembler().Assemble(platform.Shop{Name: "s"}, order, merchant.Configuration{}, translation.Default())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !doc.Tax.IsZero() || !doc.Shipping.IsZero() {
		t.Errorf("empty optional amounts should be zero, got tax=%s shipping=%s", doc.Tax, doc.Shipping)
	}
}

func TestSymbolFor(t *testing.T) {
	if got := SymbolFor("USD"); got != "$" {
		t.Errorf("USD symbol = %q", got)
	}
	if got := SymbolFor("EUR"); got != "€" {
		t.Errorf("EUR symbol = %q", got)
	}
	if got := SymbolFor("ZZZ"); got != "ZZZ" {
		t.Errorf("unknown code = %q, want the code itself", got)
	}
}
