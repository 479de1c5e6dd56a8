// Package innertube implements the scraping path: rendered-page blobs and
// the internal JSON-over-HTTP surface YouTube's own web client uses,
// resolved into typed records through a layered extraction cascade.
package innertube

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/safak4545x/swifttube/domain/model"
	"github.com/safak4545x/swifttube/domain/repository"
)

const defaultPageLimit = 12

// Client scrapes YouTube's public web surface. It keeps per-session
// identifiers (visitor id, click-tracking token) captured from prior
// responses; continuation chains are only honored when those travel along.
type Client struct {
	httpClient *http.Client
	base       string
	identity   Identity
	pageLimit  int

	mu            sync.Mutex
	visitorData   string
	clickTracking string
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at a different host, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = base }
}

// WithHTTPClient swaps the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageLimit overrides the pagination ceiling.
func WithPageLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageLimit = n
		}
	}
}

// NewClient creates a scraping client with the given fixed identity.
func NewClient(identity Identity, opts ...Option) repository.IScraper {
	c := &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		base:       baseURL,
		identity:   identity,
		pageLimit:  defaultPageLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search scrapes the results page for a query.
func (c *Client) Search(ctx context.Context, query, hl, gl string) ([]model.Video, error) {
	url := c.base + searchPath + "?" + pageQuery(pageParams{SearchQuery: query, HL: hl, GL: gl})
	payload, err := c.fetchPageURL(ctx, url, hl, gl)
	if err != nil {
		return nil, err
	}
	c.observeSession(payload)
	return ExtractVideos(payload, KindSearch), nil
}

// Related fetches the watch-next rail for a video via the RPC surface.
func (c *Client) Related(ctx context.Context, videoID, hl, gl string) ([]model.Video, error) {
	payload, err := c.rpc(ctx, nextEndpoint, rpcBody{
		Context: c.rpcContext(hl, gl),
		VideoID: videoID,
	})
	if err != nil {
		return nil, err
	}
	c.observeSession(payload)
	return ExtractVideos(payload, KindRelated), nil
}

// ChannelVideos fetches recent uploads for a channel via browse.
func (c *Client) ChannelVideos(ctx context.Context, channelID, hl, gl string) ([]model.Video, error) {
	payload, err := c.rpc(ctx, browseEndpoint, rpcBody{
		Context:  c.rpcContext(hl, gl),
		BrowseID: channelID,
	})
	if err != nil {
		return nil, err
	}
	c.observeSession(payload)
	return ExtractVideos(payload, KindChannel), nil
}

// ChannelInfo scrapes the channel page header.
func (c *Client) ChannelInfo(ctx context.Context, channelID, hl, gl string) (*model.Channel, error) {
	url := c.base + channelPath + channelID + "?" + pageQuery(pageParams{HL: hl, GL: gl})
	payload, err := c.fetchPageURL(ctx, url, hl, gl)
	if err != nil {
		return nil, err
	}
	c.observeSession(payload)
	ch := channelFromPage(payload, channelID)
	if ch == nil {
		return nil, fmt.Errorf("channel %s: no header found in page", channelID)
	}
	return ch, nil
}

// PlaylistItems seeds from the rendered playlist page, then drives the
// continuation engine until minCount unique items, token exhaustion, or the
// page ceiling. The seed fetch failing is an error — an empty playlist is
// ambiguous with "fetch failed" — while mid-chain failures degrade to the
// items collected so far.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string, minCount int, hl, gl string) ([]model.Video, error) {
	url := c.base + playlistPath + "?" + pageQuery(pageParams{List: playlistID, HL: hl, GL: gl})
	seed, err := c.fetchPageURL(ctx, url, hl, gl)
	if err != nil {
		return nil, fmt.Errorf("playlist %s: %w", playlistID, err)
	}
	if minCount <= 0 {
		minCount = 100
	}

	engine := &paginator{
		kind:    KindPlaylist,
		ceiling: c.pageLimit,
		observe: c.observeSession,
		fetch: func(ctx context.Context, token string, alternate bool) ([]byte, error) {
			endpoint := browseEndpoint
			if alternate {
				endpoint = nextEndpoint
			}
			return c.rpc(ctx, endpoint, rpcBody{
				Context:      c.rpcContext(hl, gl),
				Continuation: token,
			})
		},
	}
	return engine.run(ctx, seed, minCount), nil
}

func (c *Client) fetchPageURL(ctx context.Context, url, hl, gl string) ([]byte, error) {
	req, err := c.newPageRequest(ctx, url, hl, gl)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) rpc(ctx context.Context, endpoint string, body rpcBody) ([]byte, error) {
	c.mu.Lock()
	if tracking := c.clickTracking; tracking != "" {
		body.ClickTracking = &clickTracking{ClickTrackingParams: tracking}
	}
	c.mu.Unlock()
	req, err := c.newRPCRequest(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) rpcContext(hl, gl string) rpcContext {
	c.mu.Lock()
	visitor := c.visitorData
	c.mu.Unlock()
	return rpcContext{Client: rpcClient{
		ClientName:    c.identity.ClientName,
		ClientVersion: c.identity.ClientVersion,
		HL:            hl,
		GL:            gl,
		VisitorData:   visitor,
	}}
}

// observeSession captures visitor/tracking identifiers from a response so
// follow-up RPC calls stay on the same session.
func (c *Client) observeSession(payload []byte) {
	tree := parseTree(payload)
	if tree == nil {
		return
	}
	visitor := digString(tree, "responseContext", "visitorData")
	if visitor == "" {
		visitor = digString(tree, "responseContext", "webResponseContextExtensionData", "ytConfigData", "visitorData")
	}
	tracking := digString(tree, "trackingParams")

	c.mu.Lock()
	if visitor != "" {
		c.visitorData = visitor
	}
	if tracking != "" {
		c.clickTracking = tracking
	}
	c.mu.Unlock()
}
