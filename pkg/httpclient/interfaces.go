package httpclient

import "context"

// Response is the transport result handed to callers. Failed responses still
// carry whatever body the server returned.
type Response interface {
	Body() []byte
	StatusCode() int
	ContentType() string
	IsSuccess() bool
	ErrorNumber() int
	ErrorMessage() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
