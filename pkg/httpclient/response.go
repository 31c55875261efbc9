package httpclient

import (
	"net/http"
	"strings"
)

// StaticResponse is a fixed Response value. It backs synthesized failures and
// is handy as a stub in tests.
type StaticResponse struct {
	Status  int
	Type    string
	Payload []byte
	Success bool
	ErrNo   int
	ErrMsg  string
}

func (s StaticResponse) Body() []byte         { return s.Payload }
func (s StaticResponse) StatusCode() int      { return s.Status }
func (s StaticResponse) ContentType() string  { return s.Type }
func (s StaticResponse) IsSuccess() bool      { return s.Success }
func (s StaticResponse) ErrorNumber() int     { return s.ErrNo }
func (s StaticResponse) ErrorMessage() string { return s.ErrMsg }

// ErrorResponse turns a transport error (dial failure, timeout, cancelled
// context) into a failed Response with error number 0.
func ErrorResponse(err error) Response {
	msg := "unknown transport error"
	if err != nil {
		msg = err.Error()
	}
	return StaticResponse{Success: false, ErrMsg: msg}
}

// statusMessage renders the reason phrase for a non-2xx status.
func statusMessage(code int, status string) string {
	if s := strings.TrimSpace(status); s != "" {
		return s
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "unexpected status"
}
