package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/safak4545x/swifttube/infrastructure/cache"
	"github.com/safak4545x/swifttube/infrastructure/logger"

	"golang.org/x/sync/singleflight"
)

const maxAssetBytes = 4 << 20

// allowedAssetHosts are the upstream CDNs thumbnails and avatars come from.
// Anything else is rejected so the proxy cannot be pointed at arbitrary hosts.
var allowedAssetHosts = map[string]struct{}{
	"i.ytimg.com":               {},
	"yt3.ggpht.com":             {},
	"yt3.googleusercontent.com": {},
}

// IAssetUseCase proxies binary payloads (thumbnails, avatars) through the
// assets cache tier so repeat renders never refetch.
type IAssetUseCase interface {
	Fetch(ctx context.Context, rawURL string) (*Asset, error)
}

// Asset is one cached binary payload with its content type.
type Asset struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// AssetUseCase fetches and caches upstream image bytes.
type AssetUseCase struct {
	httpClient *http.Client
	userAgent  string
	store      *cache.Store
	ttl        time.Duration
	flights    singleflight.Group
}

// NewAssetUseCase creates an asset use case instance.
func NewAssetUseCase(store *cache.Store, ttl time.Duration, userAgent string) IAssetUseCase {
	return &AssetUseCase{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  userAgent,
		store:      store,
		ttl:        ttl,
	}
}

// Fetch returns the asset bytes for an allowed upstream URL, from cache when
// present.
func (u *AssetUseCase) Fetch(ctx context.Context, rawURL string) (*Asset, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid asset url")
	}
	if _, ok := allowedAssetHosts[parsed.Hostname()]; !ok {
		return nil, fmt.Errorf("asset host %s not allowed", parsed.Hostname())
	}

	key := cache.Key("asset", "url="+rawURL)
	if hit := cache.Get[Asset](u.store, cache.NamespaceAssets, key); hit != nil {
		return hit, nil
	}

	result, err, _ := u.flights.Do(key, func() (interface{}, error) {
		return u.download(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}
	asset := result.(*Asset)
	if err := cache.Set(u.store, cache.NamespaceAssets, key, *asset, u.ttl); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to cache asset")
	}
	return asset, nil
}

func (u *AssetUseCase) download(ctx context.Context, rawURL string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", u.userAgent)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch asset: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("read asset body: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Asset{Data: data, ContentType: contentType}, nil
}
