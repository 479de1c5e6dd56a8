package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/safak4545x/swifttube/infrastructure/locale"

	"github.com/google/go-querystring/query"
)

const (
	baseURL        = "https://www.youtube.com"
	searchPath     = "/results"
	playlistPath   = "/playlist"
	channelPath    = "/channel/"
	browseEndpoint = "/youtubei/v1/browse"
	nextEndpoint   = "/youtubei/v1/next"

	maxResponseBytes = 8 << 20
)

// Identity is the fixed outbound request identity. Holding it constant
// regardless of the host machine's locale keeps scraped response shapes
// reproducible across runs; only the Cookie header steers language/region.
type Identity struct {
	UserAgent      string
	AcceptLanguage string
	ClientName     string
	ClientVersion  string
}

// pageParams are the query parameters of rendered-page GET requests.
type pageParams struct {
	SearchQuery string `url:"search_query,omitempty"`
	List        string `url:"list,omitempty"`
	HL          string `url:"hl,omitempty"`
	GL          string `url:"gl,omitempty"`
}

func pageQuery(params pageParams) string {
	values, err := query.Values(params)
	if err != nil {
		return ""
	}
	return values.Encode()
}

// rpcContext is the innertube request context: client identity plus the
// session identifiers captured from prior responses.
type rpcContext struct {
	Client rpcClient `json:"client"`
}

type rpcClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
	VisitorData   string `json:"visitorData,omitempty"`
}

type clickTracking struct {
	ClickTrackingParams string `json:"clickTrackingParams,omitempty"`
}

// rpcBody is the innertube POST payload: a context plus either a fresh
// query/params pair or a continuation token.
type rpcBody struct {
	Context       rpcContext     `json:"context"`
	ClickTracking *clickTracking `json:"clickTracking,omitempty"`
	BrowseID      string         `json:"browseId,omitempty"`
	VideoID       string         `json:"videoId,omitempty"`
	Query         string         `json:"query,omitempty"`
	Params        string         `json:"params,omitempty"`
	Continuation  string         `json:"continuation,omitempty"`
}

// newPageRequest builds a GET for a rendered page with the fixed identity
// headers and the locale-steering cookie.
func (c *Client) newPageRequest(ctx context.Context, url, hl, gl string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req, hl, gl)
	return req, nil
}

// newRPCRequest builds an innertube POST carrying the session context.
func (c *Client) newRPCRequest(ctx context.Context, endpoint string, body rpcBody) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.applyHeaders(req, body.Context.Client.HL, body.Context.Client.GL)
	return req, nil
}

func (c *Client) applyHeaders(req *http.Request, hl, gl string) {
	req.Header.Set("User-Agent", c.identity.UserAgent)
	req.Header.Set("Accept-Language", c.identity.AcceptLanguage)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Cookie", locale.CookieHeader(hl, gl))
}

// do executes the request and returns the body, surfacing non-2xx statuses
// as transport failures.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%s %s: %s (%s)", req.Method, req.URL.Path, resp.Status, bytes.TrimSpace(snippet))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	return body, nil
}
