// Package api implements the request core shared by every adkit resource
// client: URL and credential handling, the single HTTP round trip, timeout
// enforcement and the classification of every outcome into either a decoded
// payload or an *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/s0up4200/adkit/logging"
)

// credentialParam carries the API key on every call
const credentialParam = "key"

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Execute performs one API call and decodes a success payload into T.
//
// The payload is trusted structurally: fields whose JSON type does not match T
// are left at their zero value and logged, the call still succeeds.
func Execute[T any](ctx context.Context, cfg *Config, credential, endpoint, method string, body any) (*T, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	raw, err := Do(ctx, cfg, credential, endpoint, method, body)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, newError(KindMalformed, http.StatusInternalServerError, "response",
				fmt.Sprintf("failed to decode response: %v", err), pkgerrors.WithStack(err))
		}
		cfg.Logger().Warn("API response does not match the expected shape",
			"endpoint", endpoint,
			"field", typeErr.Field,
			"error", err.Error(),
		)
	}
	return &out, nil
}

// Do performs one API call and returns the raw success body, unmodified.
// Every failure is an *Error, except for argument errors detected before any
// network activity.
func Do(ctx context.Context, cfg *Config, credential, endpoint, method string, body any) (json.RawMessage, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if credential == "" {
		return nil, ErrMissingCredential
	}
	method = strings.ToUpper(method)
	if !allowedMethods[method] {
		return nil, fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, method)
	}

	meta := &logging.RequestMetadata{
		RequestID: newRequestID(),
		Method:    method,
		Endpoint:  endpoint,
		Start:     time.Now(),
	}

	verbose := cfg.Verbose()
	events := logging.NewRequestLogger(cfg.Logger())
	if verbose {
		events.LogRequestStart(meta, body)
	}

	payload, apiErr := roundTrip(ctx, cfg, credential, meta, body).result()
	meta.Duration = time.Since(meta.Start)

	if apiErr != nil {
		apiErr.RequestID = meta.RequestID
		if verbose {
			events.LogRequestComplete(meta, apiErr)
		}
		return nil, apiErr
	}

	if verbose {
		events.LogRequestComplete(meta, nil)
	}
	return payload, nil
}

// outcome is either success or failure, decided once in roundTrip
type outcome interface {
	result() (json.RawMessage, *Error)
}

type success struct {
	payload json.RawMessage
}

func (s success) result() (json.RawMessage, *Error) { return s.payload, nil }

type failure struct {
	err *Error
}

func (f failure) result() (json.RawMessage, *Error) { return nil, f.err }

func roundTrip(ctx context.Context, cfg *Config, credential string, meta *logging.RequestMetadata, body any) outcome {
	target, err := buildURL(cfg.BaseURL, meta.Endpoint, credential)
	if err != nil {
		return failure{newError(KindRequest, http.StatusInternalServerError, "request",
			fmt.Sprintf("invalid endpoint %q: %v", meta.Endpoint, err), pkgerrors.WithStack(err))}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return failure{newError(KindRequest, http.StatusInternalServerError, "request",
				fmt.Sprintf("failed to encode request body: %v", err), pkgerrors.WithStack(err))}
		}
		reader = bytes.NewReader(data)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, meta.Method, target, reader)
	if err != nil {
		return failure{newError(KindRequest, http.StatusInternalServerError, "request",
			fmt.Sprintf("failed to create request: %v", redactURLError(err)), pkgerrors.WithStack(redactURLError(err)))}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.userAgent())

	resp, err := cfg.HTTPClient().Do(req)
	if err != nil {
		return failure{transportFailure(ctx, err)}
	}
	defer resp.Body.Close()

	meta.Status = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	meta.Size = len(data)
	if err != nil {
		return failure{transportFailure(ctx, err)}
	}

	return classify(data, resp.StatusCode)
}

func buildURL(baseURL, endpoint, credential string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return "", err
	}

	query := u.Query()
	query.Set(credentialParam, credential)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// transportFailure maps a connection level error, telling timeouts apart
func transportFailure(ctx context.Context, err error) *Error {
	err = redactURLError(err)
	if isTimeout(ctx, err) {
		return newError(KindTimeout, http.StatusRequestTimeout, "request", "request timeout", pkgerrors.WithStack(err))
	}
	return newError(KindTransport, http.StatusInternalServerError, "request",
		fmt.Sprintf("connection error: %v", err), pkgerrors.WithStack(err))
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// redactURLError strips the query string, and with it the credential, from
// the URL embedded in net/http errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	clean := *urlErr
	if u, perr := url.Parse(urlErr.URL); perr == nil {
		u.RawQuery = ""
		clean.URL = u.String()
	} else {
		clean.URL = "<redacted>"
	}
	return &clean
}

// classify decides the outcome of a received body
func classify(data []byte, httpStatus int) outcome {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return failure{newError(KindMalformed, http.StatusInternalServerError, "response",
			fmt.Sprintf("invalid JSON response: %v", err), pkgerrors.WithStack(err))}
	}

	envelope, ok := probe.(map[string]any)
	if !ok || envelope["status"] != StatusFailed {
		return success{payload: json.RawMessage(data)}
	}

	status := httpStatus
	if code, ok := envelope["code"].(float64); ok && code > 0 {
		status = int(code)
	} else if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	messages := normalizeMessages(envelope["messages"])
	if len(messages) == 0 {
		if msg, ok := envelope["message"].(string); ok && msg != "" {
			messages = map[string][]string{"error": {msg}}
		} else {
			messages = map[string][]string{"error": {"request failed"}}
		}
	}

	return failure{&Error{
		Status:   status,
		Messages: messages,
		Kind:     KindApplication,
		Cause:    pkgerrors.Errorf("API returned status %q with code %d", StatusFailed, status),
	}}
}

func normalizeMessages(v any) map[string][]string {
	out := make(map[string][]string)
	switch m := v.(type) {
	case map[string]any:
		for field, raw := range m {
			out[field] = toStrings(raw)
		}
	case []any:
		if len(m) > 0 {
			out["error"] = toStrings(m)
		}
	case string:
		if m != "" {
			out["error"] = []string{m}
		}
	}
	return out
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case nil:
		return []string{}
	default:
		return []string{fmt.Sprint(t)}
	}
}
