package platform

import (
	"context"
	"errors"
	"time"
)

// Money is one monetary bucket as the platform reports it. Amount stays
// a string at this boundary; parsing happens at invoice assembly.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// MoneySet wraps the shop-currency amount of a price field.
type MoneySet struct {
	ShopMoney Money `json:"shopMoney"`
}

// Address is a postal address as returned by the platform.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

// Customer carries the buyer identity attached to an order.
type Customer struct {
	DisplayName    string   `json:"displayName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	DefaultAddress *Address `json:"defaultAddress"`
}

// LineItem is one purchased product line.
type LineItem struct {
	Title             string   `json:"title"`
	VariantTitle      string   `json:"variantTitle"`
	Quantity          int      `json:"quantity"`
	OriginalUnitPrice MoneySet `json:"originalUnitPriceSet"`
	ImageURL          string   `json:"imageUrl"`
}

// Order is the raw order record fetched from the platform API.
type Order struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	CreatedAt                time.Time  `json:"createdAt"`
	Email                    string     `json:"email"`
	DisplayFulfillmentStatus string     `json:"displayFulfillmentStatus"`
	DisplayFinancialStatus   string     `json:"displayFinancialStatus"`
	TotalPrice               MoneySet   `json:"totalPriceSet"`
	SubtotalPrice            MoneySet   `json:"currentSubtotalPriceSet"`
	TotalTax                 MoneySet   `json:"totalTaxSet"`
	TotalShipping            MoneySet   `json:"totalShippingPriceSet"`
	Customer                 *Customer  `json:"customer"`
	BillingAddress           *Address   `json:"billingAddress"`
	ShippingAddress          *Address   `json:"shippingAddress"`
	LineItems                []LineItem `json:"lineItems"`
}

// Shop is the selling merchant's storefront identity.
type Shop struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	BillingAddress *Address `json:"billingAddress"`
}

// Snapshot is one consistent read of the shop plus its recent orders.
type Snapshot struct {
	Shop   Shop
	Orders []Order
}

// Source fetches order data from the e-commerce platform.
type Source interface {
	FetchOrders(ctx context.Context) (Snapshot, error)
	FetchOrder(ctx context.Context, name string) (Shop, *Order, error)
}

var (
	ErrOrderNotFound = errors.New("order_not_found")
	ErrUnavailable   = errors.New("platform_unavailable")
)
