package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/samvad-hq/bigstock-client/pkg/bigstock"
)

// envelope is the common wrapper of Bigstock JSON bodies.
type envelope struct {
	ResponseCode flexString `json:"response_code"`
	Message      string     `json:"message"`
}

type purchaseResponse struct {
	envelope
	Data struct {
		DownloadID flexString `json:"download_id"`
	} `json:"data"`
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// apiFailure reports transport failures and JSON bodies whose response_code
// is not 200. The API reports many errors inside a successful HTTP response.
func apiFailure(res bigstock.Result) error {
	if err := res.Err(); err != nil {
		return err
	}
	if res.Kind != bigstock.KindDecoded {
		return nil
	}
	var env envelope
	if err := res.Decode(&env); err != nil {
		return nil
	}
	code := strings.TrimSpace(string(env.ResponseCode))
	if code == "" || code == "200" {
		return nil
	}
	apiErr := &bigstock.APIError{Message: env.Message}
	if _, err := fmt.Sscanf(code, "%d", &apiErr.ResponseCode); err != nil {
		apiErr.ResponseCode = http.StatusBadGateway
	}
	return apiErr
}
