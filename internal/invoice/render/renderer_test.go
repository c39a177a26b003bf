package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/clock"
	"github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/translation"
	"go.uber.org/zap"
)

func testRenderer() *Renderer {
	theme := DefaultTheme()
	theme.SocialIconURLs = nil
	return &Renderer{
		theme:  theme,
		client: &http.Client{Timeout: time.Second},
		clock:  clock.NewManual(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
		log:    zap.NewNop(),
	}
}

func num(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDocument() domain.Document {
	return domain.Document{
		Number:  "1042",
		Date:    "Mar 9, 2024",
		DueDate: "Mar 9, 2024",
		Status:  domain.StatusPaid,
		Company: domain.Company{
			Name:         "Demo Shop",
			LegalName:    "Demo Shop Ltd",
			Email:        "shop@example.com",
			AddressLines: []string{"1 Market St", "Tax ID: TAX-9"},
		},
		Customer: domain.Customer{
			Name:         "Ada Lovelace",
			Email:        "ada@example.com",
			BillingLines: []string{"10 Analytical Way", "London, LDN E1 6AN", "United Kingdom"},
		},
		Items: []domain.Item{
			{Title: "Widget", Detail: "Blue", Quantity: 2, Price: num("45.00"), Total: num("90.00")},
			{Title: "Gadget", Quantity: 1, Price: num("12.50"), Total: num("12.50")},
		},
		Subtotal:       num("100.00"),
		Tax:            num("10.00"),
		Shipping:       num("5.00"),
		Total:          num("115.00"),
		CurrencySymbol: "$",
		Labels:         translation.Default(),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := testRenderer().Render(context.Background(), sampleDocument())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if len(out) < 1000 {
		t.Fatalf("output suspiciously small: %d bytes", len(out))
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := testRenderer()
	doc := sampleDocument()
	a, err := r.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := r.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same document rendered differently")
	}
}

func TestRenderPaginatesLongTables(t *testing.T) {
	doc := sampleDocument()
	doc.Items = nil
	for i := 0; i < 40; i++ {
		doc.Items = append(doc.Items, domain.Item{
			Title: "Widget", Quantity: 1, Price: num("1.00"), Total: num("1.00"),
		})
	}
	out, err := testRenderer().Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// One /Type /Pages root plus one /Type /Page per page.
	if pages := bytes.Count(out, []byte("/Type /Page")); pages < 3 {
		t.Fatalf("expected at least two pages, marker count %d", pages)
	}
}

func TestRenderSupportedLocales(t *testing.T) {
	r := testRenderer()
	for _, locale := range translation.Locales() {
		doc := sampleDocument()
		doc.Labels = translation.Resolve(locale, nil)
		if _, err := r.Render(context.Background(), doc); err != nil {
			t.Errorf("render %s labels: %v", locale, err)
		}
	}
}

func TestRenderImageFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/notimage":
			w.Write([]byte("<html>not an image</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	doc := sampleDocument()
	doc.Company.LogoURL = srv.URL + "/broken"
	doc.Items[0].ImageURL = srv.URL + "/notimage"

	out, err := testRenderer().Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render with unreachable images: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("degraded render is not a PDF")
	}
}

func TestRenderEmbedsFetchedImage(t *testing.T) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBuf.Bytes())
	}))
	defer srv.Close()

	doc := sampleDocument()
	doc.Company.LogoURL = srv.URL + "/logo.png"
	doc.Items[0].ImageURL = srv.URL + "/logo.png"

	if _, err := testRenderer().Render(context.Background(), doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	if hits != 1 {
		t.Fatalf("image fetched %d times, want one fetch per render", hits)
	}
}
