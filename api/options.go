package api

import (
	"io"
	"net/http"
	"time"

	"github.com/s0up4200/adkit/logging"
)

// Option configures a Config.
type Option func(*options)

type options struct {
	baseURL      string
	timeout      time.Duration
	debug        bool
	level        logging.Level
	logger       logging.Logger
	logOutput    io.Writer
	interception bool
	httpClient   *http.Client
	userAgent    string
}

// WithBaseURL sets the API endpoint. Defaults to DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the per call timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithDebug enables verbose request logging.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithLogLevel sets the minimum level of the built-in logger.
func WithLogLevel(level logging.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithLogger replaces the built-in logger.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogOutput sets where the built-in console logger writes.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}

// WithInterception logs every request and response even outside debug mode.
func WithInterception(enabled bool) Option {
	return func(o *options) {
		o.interception = enabled
	}
}

// WithHTTPClient sets a custom HTTP client. Its own Timeout still applies on
// top of the configured one.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}
