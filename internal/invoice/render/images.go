package render

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// One fetched remote image. Kind is the gofpdf image type string.
type imageEntry struct {
	data []byte
	kind string
	ok   bool
}

// imageCache downloads remote images once per render. Any failure
// (transport, status, undecodable bytes) marks the URL bad so the
// layout falls back to a placeholder box instead of aborting.
type imageCache struct {
	client  *http.Client
	log     *zap.Logger
	entries map[string]imageEntry
}

func newImageCache(client *http.Client, log *zap.Logger) *imageCache {
	return &imageCache{
		client:  client,
		log:     log,
		entries: make(map[string]imageEntry),
	}
}

func (c *imageCache) fetch(ctx context.Context, url string) imageEntry {
	if url == "" {
		return imageEntry{}
	}
	if e, seen := c.entries[url]; seen {
		return e
	}
	e := c.download(ctx, url)
	c.entries[url] = e
	return e
}

func (c *imageCache) download(ctx context.Context, url string) imageEntry {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return imageEntry{}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("image fetch failed", zap.String("url", url), zap.Error(err))
		return imageEntry{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("image fetch failed", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return imageEntry{}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return imageEntry{}
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		c.log.Debug("image undecodable", zap.String("url", url), zap.Error(err))
		return imageEntry{}
	}

	var kind string
	switch format {
	case "png":
		kind = "PNG"
	case "jpeg":
		kind = "JPG"
	case "gif":
		kind = "GIF"
	default:
		return imageEntry{}
	}
	return imageEntry{data: data, kind: kind, ok: true}
}
