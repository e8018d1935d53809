package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/shopbot-backend/internal/platform/envutil"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

// Crawler fetches the option attributes of one category page.
type Crawler interface {
	Crawl(ctx context.Context, pageURL string) (SpecData, error)
}

type httpCrawler struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
	log        *logger.Logger
}

// NewHTTPCrawler talks to the external crawl service. Concurrent requests for
// the same page URL are collapsed into a single upstream call.
func NewHTTPCrawler(baseURL string, baseLog *logger.Logger) Crawler {
	timeout := time.Duration(envutil.Int("CRAWLER_TIMEOUT_SECONDS", 60)) * time.Second
	return &httpCrawler{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        baseLog.With("service", "Crawler"),
	}
}

func (c *httpCrawler) Crawl(ctx context.Context, pageURL string) (SpecData, error) {
	v, err, shared := c.group.Do(pageURL, func() (any, error) {
		return c.fetch(ctx, pageURL)
	})
	if err != nil {
		return SpecData{}, err
	}
	if shared {
		c.log.Debug("crawl request coalesced", "url", pageURL)
	}
	return v.(SpecData), nil
}

func (c *httpCrawler) fetch(ctx context.Context, pageURL string) (SpecData, error) {
	endpoint := fmt.Sprintf("%s/crawl?url=%s", c.baseURL, url.QueryEscape(pageURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return SpecData{}, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("crawl request failed", "url", pageURL, "error", err)
		return SpecData{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return SpecData{}, err
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("crawl service returned error status",
			"url", pageURL, "status", resp.StatusCode)
		return SpecData{}, fmt.Errorf("crawl service status %d", resp.StatusCode)
	}

	var data SpecData
	if err := json.Unmarshal(body, &data); err != nil {
		return SpecData{}, fmt.Errorf("decode crawl response: %w", err)
	}
	// A page where every attribute came back empty is a failed crawl, not an
	// empty success.
	if data.Empty() {
		return SpecData{}, ErrEmptyCrawl
	}

	c.log.Info("crawl finished",
		"url", pageURL, "attributes", len(data.Order), "elapsed", time.Since(start))
	return data, nil
}
