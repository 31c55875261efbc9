package httpclient

import (
	"strings"
	"time"
)

// DefaultTimeout bounds a whole request, including reading the body.
const DefaultTimeout = 2000 * time.Millisecond

// Options holds transport-level settings. Zero fields mean "not set".
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Debug     bool
}

// DefaultOptions returns the settings every transport starts from.
func DefaultOptions() Options {
	return Options{Timeout: DefaultTimeout}
}

// MergeOptions overlays override on base. Non-zero override fields win and
// header maps are merged key by key.
func MergeOptions(base, override Options) Options {
	out := base
	if override.Timeout > 0 {
		out.Timeout = override.Timeout
	}
	if ua := strings.TrimSpace(override.UserAgent); ua != "" {
		out.UserAgent = ua
	}
	if override.Debug {
		out.Debug = true
	}

	if len(base.Headers) > 0 || len(override.Headers) > 0 {
		merged := make(map[string]string, len(base.Headers)+len(override.Headers))
		for k, v := range base.Headers {
			merged[k] = v
		}
		for k, v := range override.Headers {
			merged[k] = v
		}
		out.Headers = merged
	}
	return out
}
