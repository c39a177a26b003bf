package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/billora/internal/translation"
)

// Configuration is the merchant's invoice branding. Every field may be
// empty; assembly degrades to platform shop data or placeholders.
type Configuration struct {
	ShopName       string `json:"shopName"`
	CompanyName    string `json:"companyName"`
	TaxNumber      string `json:"taxNumber"`
	RegisterNumber string `json:"registerNumber"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	LogoURL        string `json:"logoUrl"`
	InvoiceLocale  string `json:"invoiceLocale"`
}

// Translations maps a locale code to a merchant-saved label override.
type Translations map[string]translation.LabelSet

// Store reads and writes merchant settings keyed by shop id. Reads
// return zero values when nothing is saved; only transport faults and
// write failures produce errors.
type Store interface {
	GetConfiguration(ctx context.Context, shopID string) (Configuration, error)
	PutConfiguration(ctx context.Context, shopID string, cfg Configuration) error
	GetTranslations(ctx context.Context, shopID string) (Translations, error)
	PutTranslations(ctx context.Context, shopID string, translations Translations) error
}

var (
	ErrInvalidShop = errors.New("invalid_shop")
	ErrUnavailable = errors.New("store_unavailable")
)
