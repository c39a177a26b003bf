package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/observability/tracing"
	"go.uber.org/zap"
)

const ordersQuery = `query getOrders($first: Int!, $query: String) {
  shop {
    id
    name
    email
    billingAddress { address1 address2 city province country zip }
  }
  orders(first: $first, sortKey: CREATED_AT, reverse: true, query: $query) {
    edges {
      node {
        id
        name
        createdAt
        email
        displayFulfillmentStatus
        displayFinancialStatus
        totalPriceSet { shopMoney { amount currencyCode } }
        currentSubtotalPriceSet { shopMoney { amount currencyCode } }
        totalTaxSet { shopMoney { amount currencyCode } }
        totalShippingPriceSet { shopMoney { amount currencyCode } }
        customer {
          displayName
          email
          phone
          defaultAddress { address1 address2 city province country zip }
        }
        billingAddress { address1 address2 city province country zip }
        shippingAddress { address1 address2 city province country zip }
        lineItems(first: 20) {
          edges {
            node {
              title
              variantTitle
              quantity
              originalUnitPriceSet { shopMoney { amount currencyCode } }
              image { url }
            }
          }
        }
      }
    }
  }
}`

// Client talks to the platform's admin GraphQL API.
type Client struct {
	http        *http.Client
	apiURL      string
	accessToken string
	log         *zap.Logger
}

// NewClient builds the order source over the configured platform API.
func NewClient(cfg config.Config, log *zap.Logger) Source {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 2
	retry.Logger = nil
	retry.HTTPClient.Timeout = cfg.Platform.Timeout

	return &Client{
		http:        tracing.WrapHTTPClient(retry.StandardClient()),
		apiURL:      cfg.Platform.APIURL,
		accessToken: cfg.Platform.AccessToken,
		log:         log.Named("platform.client"),
	}
}

type graphRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphResponse struct {
	Data struct {
		Shop struct {
			ID             string   `json:"id"`
			Name           string   `json:"name"`
			Email          string   `json:"email"`
			BillingAddress *Address `json:"billingAddress"`
		} `json:"shop"`
		Orders struct {
			Edges []struct {
				Node orderNode `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type orderNode struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	CreatedAt                string    `json:"createdAt"`
	Email                    string    `json:"email"`
	DisplayFulfillmentStatus string    `json:"displayFulfillmentStatus"`
	DisplayFinancialStatus   string    `json:"displayFinancialStatus"`
	TotalPriceSet            MoneySet  `json:"totalPriceSet"`
	CurrentSubtotalPriceSet  MoneySet  `json:"currentSubtotalPriceSet"`
	TotalTaxSet              MoneySet  `json:"totalTaxSet"`
	TotalShippingPriceSet    MoneySet  `json:"totalShippingPriceSet"`
	Customer                 *Customer `json:"customer"`
	BillingAddress           *Address  `json:"billingAddress"`
	ShippingAddress          *Address  `json:"shippingAddress"`
	LineItems                struct {
		Edges []struct {
			Node struct {
				Title                string   `json:"title"`
				VariantTitle         string   `json:"variantTitle"`
				Quantity             int      `json:"quantity"`
				OriginalUnitPriceSet MoneySet `json:"originalUnitPriceSet"`
				Image                *struct {
					URL string `json:"url"`
				} `json:"image"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

// FetchOrders returns the shop plus its most recent orders, newest first.
func (c *Client) FetchOrders(ctx context.Context) (Snapshot, error) {
	return c.query(ctx, map[string]any{"first": 50})
}

// FetchOrder looks one order up by its display name, e.g. "#1042".
func (c *Client) FetchOrder(ctx context.Context, name string) (Shop, *Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Shop{}, nil, ErrOrderNotFound
	}
	snapshot, err := c.query(ctx, map[string]any{
		"first": 1,
		"query": "name:" + strings.TrimPrefix(name, "#"),
	})
	if err != nil {
		return Shop{}, nil, err
	}
	for i := range snapshot.Orders {
		if snapshot.Orders[i].Name == name {
			return snapshot.Shop, &snapshot.Orders[i], nil
		}
	}
	return snapshot.Shop, nil, ErrOrderNotFound
}

func (c *Client) query(ctx context.Context, variables map[string]any) (Snapshot, error) {
	body, err := json.Marshal(graphRequest{Query: ordersQuery, Variables: variables})
	if err != nil {
		return Snapshot{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Token", c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("platform request failed", zap.Error(err))
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(decoded.Errors) > 0 {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnavailable, decoded.Errors[0].Message)
	}

	return mapSnapshot(decoded), nil
}

func mapSnapshot(decoded graphResponse) Snapshot {
	snapshot := Snapshot{
		Shop: Shop{
			ID:             decoded.Data.Shop.ID,
			Name:           decoded.Data.Shop.Name,
			Email:          decoded.Data.Shop.Email,
			BillingAddress: decoded.Data.Shop.BillingAddress,
		},
	}
	for _, edge := range decoded.Data.Orders.Edges {
		snapshot.Orders = append(snapshot.Orders, mapOrder(edge.Node))
	}
	return snapshot
}

func mapOrder(node orderNode) Order {
	order := Order{
		ID:                       node.ID,
		Name:                     node.Name,
		Email:                    node.Email,
		DisplayFulfillmentStatus: node.DisplayFulfillmentStatus,
		DisplayFinancialStatus:   node.DisplayFinancialStatus,
		TotalPrice:               node.TotalPriceSet,
		SubtotalPrice:            node.CurrentSubtotalPriceSet,
		TotalTax:                 node.TotalTaxSet,
		TotalShipping:            node.TotalShippingPriceSet,
		Customer:                 node.Customer,
		BillingAddress:           node.BillingAddress,
		ShippingAddress:          node.ShippingAddress,
	}
	order.CreatedAt, _ = time.Parse(time.RFC3339, node.CreatedAt)
	for _, edge := range node.LineItems.Edges {
		item := LineItem{
			Title:             edge.Node.Title,
			VariantTitle:      edge.Node.VariantTitle,
			Quantity:          edge.Node.Quantity,
			OriginalUnitPrice: edge.Node.OriginalUnitPriceSet,
		}
		if edge.Node.Image != nil {
			item.ImageURL = edge.Node.Image.URL
		}
		order.LineItems = append(order.LineItems, item)
	}
	return order
}
