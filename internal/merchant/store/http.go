package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/smallbiznis/billora/internal/cache"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/merchant/domain"
	"github.com/smallbiznis/billora/internal/observability/tracing"
	"github.com/smallbiznis/billora/internal/signing"
	"go.uber.org/zap"
)

// HTTPStore talks to the remote configuration backend. Every request
// carries an HMAC signature over the body (empty string for reads).
// Read failures degrade to zero values so invoice rendering never
// blocks on the backend.
type HTTPStore struct {
	http     *http.Client
	baseURL  string
	signer   *signing.Signer
	cacheTTL time.Duration
	cfgCache *cache.TTLCache[string, domain.Configuration]
	trCache  *cache.TTLCache[string, domain.Translations]
	log      *zap.Logger
}

// NewHTTPStore builds the remote store client.
func NewHTTPStore(cfg config.Config, log *zap.Logger) *HTTPStore {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 2
	retry.Logger = nil
	retry.HTTPClient.Timeout = cfg.Backend.Timeout

	return &HTTPStore{
		http:     tracing.WrapHTTPClient(retry.StandardClient()),
		baseURL:  strings.TrimRight(cfg.Backend.URL, "/"),
		signer:   signing.New(cfg.Backend.SigningSecret),
		cacheTTL: cfg.Backend.CacheTTL,
		cfgCache: cache.NewTTLCache[string, domain.Configuration](),
		trCache:  cache.NewTTLCache[string, domain.Translations](),
		log:      log.Named("merchant.httpstore"),
	}
}

func (s *HTTPStore) GetConfiguration(ctx context.Context, shopID string) (domain.Configuration, error) {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return domain.Configuration{}, domain.ErrInvalidShop
	}
	if cached, ok := s.cfgCache.Get(shopID); ok {
		return cached, nil
	}

	var cfg domain.Configuration
	if err := s.get(ctx, "/api/v1/invoice", shopID, &cfg); err != nil {
		s.log.Warn("configuration read degraded to defaults", zap.Error(err))
		return domain.Configuration{}, nil
	}
	s.cfgCache.Set(shopID, cfg, s.cacheTTL)
	return cfg, nil
}

func (s *HTTPStore) PutConfiguration(ctx context.Context, shopID string, cfg domain.Configuration) error {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return domain.ErrInvalidShop
	}
	if err := s.put(ctx, "/api/v1/invoice", shopID, cfg); err != nil {
		return err
	}
	s.cfgCache.Delete(shopID)
	return nil
}

func (s *HTTPStore) GetTranslations(ctx context.Context, shopID string) (domain.Translations, error) {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return nil, domain.ErrInvalidShop
	}
	if cached, ok := s.trCache.Get(shopID); ok {
		return cached, nil
	}

	translations := domain.Translations{}
	if err := s.get(ctx, "/api/v1/invoice/translations", shopID, &translations); err != nil {
		s.log.Warn("translations read degraded to presets", zap.Error(err))
		return domain.Translations{}, nil
	}
	s.trCache.Set(shopID, translations, s.cacheTTL)
	return translations, nil
}

func (s *HTTPStore) PutTranslations(ctx context.Context, shopID string, translations domain.Translations) error {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return domain.ErrInvalidShop
	}
	if err := s.put(ctx, "/api/v1/invoice/translations", shopID, translations); err != nil {
		return err
	}
	s.trCache.Delete(shopID)
	return nil
}

func (s *HTTPStore) get(ctx context.Context, path, shopID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(path, shopID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signing.Header, s.signer.Sign(nil))

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Nothing saved yet; leave the zero value in place.
		return nil
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %d", domain.ErrUnavailable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *HTTPStore) put(ctx context.Context, path, shopID string, payload any) error {
	body, sig, err := s.signer.SignJSON(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.endpoint(path, shopID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signing.Header, sig)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) endpoint(path, shopID string) string {
	return s.baseURL + path + "?shopId=" + url.QueryEscape(shopID)
}
