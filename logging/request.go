package logging

import (
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// RequestMetadata describes one API call. It is created when the call starts,
// completed by the executor and dropped once the call returns.
type RequestMetadata struct {
	RequestID string
	Method    string
	Endpoint  string
	Start     time.Time
	Duration  time.Duration
	Status    int
	Size      int
}

// RequestLogger emits request lifecycle events on top of a base Logger
type RequestLogger struct {
	logger Logger
}

// NewRequestLogger wraps logger. A nil logger discards everything.
func NewRequestLogger(logger Logger) *RequestLogger {
	if logger == nil {
		logger = Nop()
	}
	return &RequestLogger{logger: logger}
}

// LogRequestStart logs the outgoing request with a redacted copy of body
func (r *RequestLogger) LogRequestStart(meta *RequestMetadata, body any) {
	keyvals := []any{
		"request_id", meta.RequestID,
		"method", meta.Method,
		"endpoint", meta.Endpoint,
		"timestamp", meta.Start.Format(time.RFC3339Nano),
	}
	if body != nil {
		keyvals = append(keyvals, "body", Redact(body))
	}
	r.logger.Debug("API request started", keyvals...)
}

// LogRequestComplete logs the end of a call. A nil err is logged at debug
// level, anything else at error level with its stack trace when available.
func (r *RequestLogger) LogRequestComplete(meta *RequestMetadata, err error) {
	keyvals := []any{
		"request_id", meta.RequestID,
		"method", meta.Method,
		"endpoint", meta.Endpoint,
		"duration_ms", meta.Duration.Milliseconds(),
		"status", meta.Status,
		"size", meta.Size,
	}

	if err == nil {
		r.logger.Debug("API request completed", keyvals...)
		return
	}

	keyvals = append(keyvals, "error", err.Error())
	if stack := stackTrace(err); stack != "" {
		keyvals = append(keyvals, "stack", stack)
	}
	r.logger.Error("API request failed", keyvals...)
}

// LogRateLimit logs a throttled call. The executor never retries, so nothing
// calls this yet.
func (r *RequestLogger) LogRateLimit(meta *RequestMetadata, retryAfter time.Duration) {
	r.logger.Warn("API rate limit reached",
		"request_id", meta.RequestID,
		"method", meta.Method,
		"endpoint", meta.Endpoint,
		"retry_after_ms", retryAfter.Milliseconds(),
	)
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func stackTrace(err error) string {
	var st stackTracer
	if !errors.As(err, &st) {
		return ""
	}
	return fmt.Sprintf("%+v", st.StackTrace())
}
