package askdex

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures optional client behaviour.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(cfg *clientConfig) { f(cfg) }

// clientConfig is immutable after New; options are applied once and the
// resulting fields are copied into the Client.
type clientConfig struct {
	httpc   *http.Client
	apiKey  string
	timeout time.Duration
}

// WithHTTPClient supplies a custom HTTP client, e.g. one with a proxy
// or instrumented transport. It takes precedence over WithTimeout.
func WithHTTPClient(httpc *http.Client) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.httpc = httpc
	})
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.apiKey = key
	})
}

// WithTimeout overrides the default 30s request timeout. Ignored when a
// custom HTTP client is supplied.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.timeout = d
	})
}
