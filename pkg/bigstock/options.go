package bigstock

import (
	"github.com/samvad-hq/bigstock-client/pkg/httpclient"
)

// Mode selects the API host.
type Mode string

const (
	// ModeProd talks to the production host.
	ModeProd Mode = "prod"
	// ModeTest talks to the test host. Any mode other than ModeProd behaves like it.
	ModeTest Mode = "test"
)

const (
	// DefaultBaseURLTemplate is expanded with the host prefix and the account id.
	DefaultBaseURLTemplate = "http://{prefix}api.bigstockphoto.com/2/{account_id}/"

	placeholderPrefix    = "{prefix}"
	placeholderAccountID = "{account_id}"
	testHostPrefix       = "test"
)

// config holds everything New needs besides the credentials.
type config struct {
	mode             Mode
	baseURLTemplate  string
	transport        httpclient.Client
	transportOptions httpclient.Options
	log              Logger
}

// Option configures the client.
type Option func(*config)

// WithMode sets the initial mode. Default: ModeProd.
func WithMode(mode Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithBaseURLTemplate replaces the URL template. The template may contain
// {prefix} (empty in prod, "test" otherwise) and {account_id}.
func WithBaseURLTemplate(tmpl string) Option {
	return func(c *config) {
		c.baseURLTemplate = tmpl
	}
}

// WithTransport injects the HTTP transport. When set, transport options are ignored.
func WithTransport(t httpclient.Client) Option {
	return func(c *config) {
		c.transport = t
	}
}

// WithTransportOptions overrides the default transport settings
// (merged over httpclient.DefaultOptions).
func WithTransportOptions(opts httpclient.Options) Option {
	return func(c *config) {
		c.transportOptions = httpclient.MergeOptions(c.transportOptions, opts)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log Logger) Option {
	return func(c *config) {
		c.log = log
	}
}
