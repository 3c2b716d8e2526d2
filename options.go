package scoutelastic

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver           string
	addrs            []string
	username         string
	password         string
	transport        http.RoundTripper
	logger           *zap.Logger
	instrument       bool
	readinessTimeout time.Duration
}

// WithElasticsearch targets an Elasticsearch cluster at the given addresses.
func WithElasticsearch(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "elasticsearch"
		c.addrs = addrs
	}
}

// WithOpenSearch targets an OpenSearch cluster at the given addresses.
func WithOpenSearch(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "opensearch"
		c.addrs = addrs
	}
}

// WithBasicAuth sets engine credentials.
func WithBasicAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithTransport overrides the HTTP transport (tests, custom TLS).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *clientConfig) {
		c.transport = rt
	}
}

// WithLogger sets the client logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithInstrumentation wraps the engine store with prometheus metrics.
// Collectors must be registered via metrics.RegisterEngineMetrics.
func WithInstrumentation() Option {
	return func(c *clientConfig) {
		c.instrument = true
	}
}

// WithReadinessTimeout bounds the connectivity wait at construction.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}
