package api

// Envelope status values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Response is the success envelope shared by every endpoint
type Response[T any] struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Records int    `json:"records"`
	Data    T      `json:"data"`
}

// String returns a pointer to s, for optional payload fields
func String(s string) *string { return &s }

// Bool returns a pointer to b
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i
func Int(i int) *int { return &i }

// Float64 returns a pointer to f
func Float64(f float64) *float64 { return &f }
