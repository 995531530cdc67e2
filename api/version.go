package api

import (
	"fmt"
	"runtime"
)

// Version is the library version sent in the User-Agent header
var Version = "v1.0.0"

// UserAgent returns the default User-Agent header value
func UserAgent() string {
	return fmt.Sprintf("adkit-go/%s (%s)", Version, runtime.Version())
}
