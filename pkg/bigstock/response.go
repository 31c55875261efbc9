package bigstock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samvad-hq/bigstock-client/pkg/httpclient"
)

// Kind tells which variant a Result holds.
type Kind int

const (
	// KindDecoded holds a parsed JSON value.
	KindDecoded Kind = iota + 1
	// KindRaw holds a non-JSON payload, untouched.
	KindRaw
	// KindError holds an ErrorRecord built from a failed transport response.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindDecoded:
		return "decoded"
	case KindRaw:
		return "raw"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorRecord is the uniform failure shape.
type ErrorRecord struct {
	ResponseCode int    `json:"response_code" yaml:"response_code"`
	Message      string `json:"message" yaml:"message"`
	Data         []any  `json:"data" yaml:"data"`
}

// Result is the normalized outcome of one API call. Exactly one of Decoded,
// Raw or Error is meaningful, as reported by Kind. Response is the transport
// response it was built from.
type Result struct {
	Kind     Kind
	Decoded  any
	Raw      []byte
	Error    *ErrorRecord
	Response httpclient.Response

	decodeErr error
}

// OK reports whether the transport call succeeded.
func (r Result) OK() bool { return r.Kind == KindDecoded || r.Kind == KindRaw }

// Err returns the error variant as an *APIError, or nil.
func (r Result) Err() error {
	if r.Kind != KindError || r.Error == nil {
		return nil
	}
	return &APIError{ResponseCode: r.Error.ResponseCode, Message: r.Error.Message}
}

// Decode unmarshals the JSON payload of a decoded result into v.
func (r Result) Decode(v any) error {
	switch r.Kind {
	case KindDecoded:
		if r.Response == nil {
			return errors.New("result has no payload")
		}
		if err := json.Unmarshal(r.Response.Body(), v); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return nil
	case KindError:
		return r.Err()
	default:
		return fmt.Errorf("cannot decode %s result", r.Kind)
	}
}

// Normalize interprets a transport response:
//   - failure becomes an ErrorRecord with the transport's error number and message,
//   - success with a content type containing "json" is parsed,
//   - any other success is returned as raw bytes.
//
// A JSON payload that does not parse yields a nil Decoded value.
func Normalize(resp httpclient.Response) Result {
	if resp == nil {
		return Normalize(httpclient.ErrorResponse(errors.New("no response from transport")))
	}
	if !resp.IsSuccess() {
		return Result{
			Kind:     KindError,
			Response: resp,
			Error: &ErrorRecord{
				ResponseCode: resp.ErrorNumber(),
				Message:      resp.ErrorMessage(),
				Data:         []any{},
			},
		}
	}
	if !strings.Contains(resp.ContentType(), "json") {
		return Result{Kind: KindRaw, Raw: resp.Body(), Response: resp}
	}

	value, err := decodeJSON(resp.Body())
	return Result{Kind: KindDecoded, Decoded: value, Response: resp, decodeErr: err}
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
