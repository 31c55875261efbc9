package bigstock

import (
	"net/url"
	"strings"
)

// Param is one query-string pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query pairs. Order is preserved on the wire.
type Params []Param

// NewParams builds Params from alternating key/value strings. A trailing key
// without a value gets an empty value.
func NewParams(kv ...string) Params {
	out := make(Params, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := Param{Key: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}
		out = append(out, p)
	}
	return out
}

// Get returns the value of the first pair named key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// With returns a copy of p where key is set to value. An existing pair is
// overwritten in place and any later duplicates are dropped; otherwise the
// pair is appended.
func (p Params) With(key, value string) Params {
	out := make(Params, 0, len(p)+1)
	found := false
	for _, kv := range p {
		if kv.Key != key {
			out = append(out, kv)
			continue
		}
		if found {
			continue
		}
		found = true
		out = append(out, Param{Key: key, Value: value})
	}
	if !found {
		out = append(out, Param{Key: key, Value: value})
	}
	return out
}

// Encode renders p as a form-encoded query string in order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}
