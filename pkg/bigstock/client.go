// Package bigstock is a client for the Bigstock stock-media REST API.
//
// Every network operation builds a GET URL, sends it through an injected
// httpclient.Client and returns a normalized Result:
//
//	client, err := bigstock.New(accountID, secretKey, bigstock.WithMode(bigstock.ModeTest))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := client.Search(ctx, bigstock.NewParams("q", "dog", "limit", "10"))
//	if err := res.Err(); err != nil {
//	    log.Fatal(err)
//	}
package bigstock

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/samvad-hq/bigstock-client/pkg/httpclient"
)

// Client issues Bigstock API calls for one account.
type Client struct {
	accountID       string
	secretKey       string
	baseURLTemplate string
	transport       httpclient.Client
	log             Logger

	mu           sync.RWMutex
	mode         Mode
	baseURL      string
	lastResponse httpclient.Response
}

// New creates a client for the given account.
func New(accountID, secretKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, ErrMissingAccountID
	}
	if secretKey == "" {
		return nil, ErrMissingSecretKey
	}

	cfg := &config{
		mode:             ModeProd,
		baseURLTemplate:  DefaultBaseURLTemplate,
		transportOptions: httpclient.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if strings.TrimSpace(cfg.baseURLTemplate) == "" {
		cfg.baseURLTemplate = DefaultBaseURLTemplate
	}

	transport := cfg.transport
	if transport == nil {
		transport = httpclient.NewRestyClient(cfg.transportOptions)
	}

	c := &Client{
		accountID:       accountID,
		secretKey:       secretKey,
		baseURLTemplate: cfg.baseURLTemplate,
		transport:       transport,
		log:             ensureLogger(cfg.log),
	}
	c.SetMode(cfg.mode)
	return c, nil
}

// SetMode switches between the production and test hosts. Anything other
// than ModeProd selects the test host.
func (c *Client) SetMode(mode Mode) {
	prefix := ""
	if mode != ModeProd {
		prefix = testHostPrefix
	}
	base := strings.ReplaceAll(c.baseURLTemplate, placeholderPrefix, prefix)
	base = strings.ReplaceAll(base, placeholderAccountID, c.accountID)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	c.mu.Lock()
	c.mode = mode
	c.baseURL = base
	c.mu.Unlock()
}

// Mode returns the current mode.
func (c *Client) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// BaseURL returns the base every endpoint is appended to.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// LastResponse returns the unprocessed transport response of the most recent
// network call, or nil before the first one.
func (c *Client) LastResponse() httpclient.Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastResponse
}

// endpoint joins path onto the current base URL.
func (c *Client) endpoint(path string) string {
	return c.BaseURL() + path
}

// get sends the GET, records the raw response and normalizes it.
func (c *Client) get(ctx context.Context, op, rawURL string) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	c.log.DebugObj("bigstock request", "bigstock_request", map[string]any{
		"operation": op,
		"url":       redactURL(rawURL),
	})

	resp, err := c.transport.Get(ctx, rawURL, nil)
	if err != nil || resp == nil {
		resp = httpclient.ErrorResponse(err)
	}

	c.mu.Lock()
	c.lastResponse = resp
	c.mu.Unlock()

	res := Normalize(resp)
	switch {
	case res.Kind == KindError:
		c.log.WarnObj("bigstock request failed", "bigstock_error", map[string]any{
			"operation":     op,
			"response_code": res.Error.ResponseCode,
			"message":       res.Error.Message,
		})
	case res.decodeErr != nil:
		c.log.WarnObj("bigstock response is not valid json", "bigstock_decode_error", map[string]any{
			"operation":    op,
			"content_type": resp.ContentType(),
			"error":        res.decodeErr.Error(),
		})
	}
	return res
}

// redactURL hides the auth key before a URL reaches the logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Has("auth_key") {
		q.Set("auth_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
