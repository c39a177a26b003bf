package domain

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/translation"
)

// Status is the binary payment state shown on an invoice. The platform
// reports many financial statuses; everything that is not paid renders
// as pending.
type Status string

const (
	StatusPaid    Status = "PAID"
	StatusPending Status = "PENDING"
)

// Company is the selling merchant's identity block.
type Company struct {
	Name         string   `json:"name"`
	LegalName    string   `json:"legalName"`
	Email        string   `json:"email"`
	LogoURL      string   `json:"logoUrl"`
	AddressLines []string `json:"addressLines"`
}

// Customer is the buyer block. ShippingLines is nil when the order has
// no shipping address; the renderer drops the column entirely.
type Customer struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	BillingLines  []string `json:"billingLines"`
	ShippingLines []string `json:"shippingLines"`
}

// Item is one invoice line. Total is fixed at assembly time as
// Price * Quantity; the renderer never recomputes it.
type Item struct {
	Title    string          `json:"title"`
	Detail   string          `json:"detail"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	ImageURL string          `json:"imageUrl"`
}

// Document is the fully resolved invoice value. It is self-contained:
// rendering needs no lookups beyond what is held here. The four money
// totals come from the order's authoritative price set, never from
// summing Items.
type Document struct {
	Number         string               `json:"number"`
	Date           string               `json:"date"`
	DueDate        string               `json:"dueDate"`
	Status         Status               `json:"status"`
	Company        Company              `json:"company"`
	Customer       Customer             `json:"customer"`
	Items          []Item               `json:"items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Tax            decimal.Decimal      `json:"tax"`
	Shipping       decimal.Decimal      `json:"shipping"`
	Total          decimal.Decimal      `json:"total"`
	CurrencySymbol string               `json:"currencySymbol"`
	Labels         translation.LabelSet `json:"translations"`
}

// StatusLabel returns the localized word for the document's status.
func (d Document) StatusLabel() string {
	if d.Status == StatusPaid {
		return d.Labels.StatusPaid
	}
	return d.Labels.StatusPending
}

// Filename is the download name for the rendered artifact.
func (d Document) Filename() string {
	return "Invoice-" + d.Number + ".pdf"
}

// Clone returns a deep copy so preview edits never alias the original.
func (d Document) Clone() Document {
	out := d
	out.Company.AddressLines = append([]string(nil), d.Company.AddressLines...)
	out.Customer.BillingLines = append([]string(nil), d.Customer.BillingLines...)
	if d.Customer.ShippingLines != nil {
		out.Customer.ShippingLines = append([]string(nil), d.Customer.ShippingLines...)
	}
	out.Items = append([]Item(nil), d.Items...)
	return out
}
