package directory

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Default source settings
const (
	DefaultTimeout            = 10 * time.Second
	DefaultBreakerMaxFailures = 3
	DefaultBreakerOpenTimeout = 30 * time.Second
)

type options struct {
	client             *http.Client
	timeout            time.Duration
	breakerMaxFailures uint32
	breakerOpenTimeout time.Duration
	logger             *zap.Logger
}

func defaultOptions() options {
	return options{
		timeout:            DefaultTimeout,
		breakerMaxFailures: DefaultBreakerMaxFailures,
		breakerOpenTimeout: DefaultBreakerOpenTimeout,
		logger:             zap.NewNop(),
	}
}

// Option configures an HTTPSource
type Option func(*options)

// WithHTTPClient replaces the default client. WithTimeout is ignored when
// a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithTimeout bounds a whole request, body included
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithBreaker sets how many consecutive failures open the circuit and how
// long it stays open. maxFailures 0 disables tripping.
func WithBreaker(maxFailures uint32, openTimeout time.Duration) Option {
	return func(o *options) {
		o.breakerMaxFailures = maxFailures
		if openTimeout > 0 {
			o.breakerOpenTimeout = openTimeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
