package httpclient

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient from the defaults merged with opts.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: NewRestyHTTPClient(opts)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(opts Options) *resty.Client {
	return newRestyBaseClient(MergeOptions(DefaultOptions(), opts))
}

// newRestyBaseClient creates a new resty.Client from fully merged options.
func newRestyBaseClient(opts Options) *resty.Client {
	c := resty.New()
	c.SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	c.SetDebug(opts.Debug)
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) ContentType() string { return r.resp.Header().Get("Content-Type") }
func (r *restyResponseAdapter) IsSuccess() bool     { return r.resp.IsSuccess() }

func (r *restyResponseAdapter) ErrorNumber() int {
	if r.resp.IsSuccess() {
		return 0
	}
	return r.resp.StatusCode()
}

func (r *restyResponseAdapter) ErrorMessage() string {
	if r.resp.IsSuccess() {
		return ""
	}
	return statusMessage(r.resp.StatusCode(), r.resp.Status())
}
