package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/signing"
	"github.com/smallbiznis/billora/internal/translation"
	"go.uber.org/zap"
)

func newHTTPStore(t *testing.T, handler http.HandlerFunc) *HTTPStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Config{}
	cfg.Backend.URL = srv.URL
	cfg.Backend.SigningSecret = "hush"
	cfg.Backend.Timeout = 5 * time.Second
	cfg.Backend.CacheTTL = time.Minute
	return NewHTTPStore(cfg, zap.NewNop())
}

func TestHTTPStoreGetConfiguration(t *testing.T) {
	signer := signing.New("hush")
	s := newHTTPStore(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("shopId"); got != "shop-1" {
			t.Errorf("unexpected shopId %q", got)
		}
		if got := r.Header.Get(signing.Header); got != signer.Sign(nil) {
			t.Errorf("read must sign the empty payload, got %q", got)
		}
		json.NewEncoder(w).Encode(domain.Configuration{ShopName: "Demo Shop"})
	})

	cfg, err := s.GetConfiguration(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	if cfg.ShopName != "Demo Shop" {
		t.Fatalf("unexpected configuration %+v", cfg)
	}
}

func TestHTTPStoreNotFoundIsZeroValue(t *testing.T) {
	s := newHTTPStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	cfg, err := s.GetConfiguration(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	if cfg != (domain.Configuration{}) {
		t.Fatalf("expected zero configuration on 404, got %+v", cfg)
	}
}

func TestHTTPStoreReadDegradesWhenUnreachable(t *testing.T) {
	cfg := config.Config{}
	cfg.Backend.URL = "http://127.0.0.1:1"
	cfg.Backend.Timeout = 200 * time.Millisecond
	s := NewHTTPStore(cfg, zap.NewNop())

	got, err := s.GetConfiguration(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("reads must degrade, not error: %v", err)
	}
	if got != (domain.Configuration{}) {
		t.Fatalf("expected zero configuration, got %+v", got)
	}

	translations, err := s.GetTranslations(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("translation reads must degrade, not error: %v", err)
	}
	if len(translations) != 0 {
		t.Fatalf("expected empty translations, got %+v", translations)
	}
}

func TestHTTPStorePutSignsBody(t *testing.T) {
	signer := signing.New("hush")
	var gotBody []byte
	var gotSig string
	s := newHTTPStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get(signing.Header)
		w.WriteHeader(http.StatusNoContent)
	})

	err := s.PutTranslations(context.Background(), "shop-1", domain.Translations{
		"en": translation.Default(),
	})
	if err != nil {
		t.Fatalf("put translations: %v", err)
	}
	if gotSig != signer.Sign(gotBody) {
		t.Fatalf("signature does not match the body sent")
	}
}

func TestHTTPStorePutFailureSurfaces(t *testing.T) {
	s := newHTTPStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})

	if err := s.PutConfiguration(context.Background(), "shop-1", domain.Configuration{}); err == nil {
		t.Fatalf("write failures must surface")
	}
}

func TestHTTPStoreCachesReads(t *testing.T) {
	calls := 0
	s := newHTTPStore(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(domain.Configuration{ShopName: "Demo Shop"})
	})

	ctx := context.Background()
	if _, err := s.GetConfiguration(ctx, "shop-1"); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := s.GetConfiguration(ctx, "shop-1"); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one backend call, got %d", calls)
	}
}
