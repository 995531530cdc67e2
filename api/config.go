package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/s0up4200/adkit/logging"
)

const (
	// DefaultBaseURL is the vendor's production endpoint
	DefaultBaseURL = "https://api.adkit.io/v1"
	// DefaultTimeout aborts calls that take longer than this
	DefaultTimeout = 30 * time.Second
)

// Config is shared by pointer between the top-level client and every resource
// client it creates. Only the debug flag changes after construction.
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	LogLevel           logging.Level
	EnableInterception bool
	UserAgent          string

	httpClient   *http.Client
	customLogger logging.Logger
	logOutput    io.Writer

	debug  atomic.Bool
	logger atomic.Pointer[loggerRef]
}

type loggerRef struct {
	logging.Logger
}

// NewConfig builds a Config from the defaults and opts
func NewConfig(opts ...Option) *Config {
	o := options{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		level:     logging.LevelInfo,
		userAgent: UserAgent(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &Config{
		BaseURL:            o.baseURL,
		Timeout:            o.timeout,
		LogLevel:           o.level,
		EnableInterception: o.interception,
		UserAgent:          o.userAgent,
		httpClient:         o.httpClient,
		customLogger:       o.logger,
		logOutput:          o.logOutput,
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}
	cfg.debug.Store(o.debug)
	cfg.logger.Store(&loggerRef{logging.New(cfg.loggerOptions())})

	return cfg
}

// Validate checks the configuration before it is used
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL %q: %v", ErrInvalidConfig, c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base URL %q must use http or https", ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base URL %q has no host", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Debug reports whether debug mode is on
func (c *Config) Debug() bool {
	return c.debug.Load()
}

// SetDebug toggles debug mode. Calls already in flight may or may not see the
// change. A caller supplied logger keeps its own level.
func (c *Config) SetDebug(debug bool) {
	c.debug.Store(debug)
	if c.customLogger != nil {
		return
	}

	current := c.Logger()
	if setter, ok := current.(logging.LevelSetter); ok {
		setter.SetLevel(c.effectiveLevel())
		return
	}
	if logging.IsNop(current) {
		c.logger.Store(&loggerRef{logging.New(c.loggerOptions())})
	}
}

// Verbose reports whether request events are logged
func (c *Config) Verbose() bool {
	return c.Debug() || c.EnableInterception
}

// Logger returns the logger resolved for this configuration
func (c *Config) Logger() logging.Logger {
	if ref := c.logger.Load(); ref != nil {
		return ref.Logger
	}
	return logging.Nop()
}

// HTTPClient returns the client used for every call.
// A Config built as a literal falls back to http.DefaultClient.
func (c *Config) HTTPClient() *http.Client {
	if c.httpClient == nil {
		return http.DefaultClient
	}
	return c.httpClient
}

func (c *Config) userAgent() string {
	if c.UserAgent == "" {
		return UserAgent()
	}
	return c.UserAgent
}

func (c *Config) effectiveLevel() logging.Level {
	if c.Verbose() {
		return logging.LevelDebug
	}
	return c.LogLevel
}

func (c *Config) loggerOptions() logging.Options {
	return logging.Options{
		Logger:  c.customLogger,
		Verbose: c.Verbose(),
		Level:   c.LogLevel,
		Output:  c.logOutput,
	}
}
