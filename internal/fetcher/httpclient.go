package fetcher

import (
	"time"

	"resty.dev/v3"
)

// defaultTimeout bounds every outbound call. The upstream sources are public
// endpoints with no SLA; a hung request must not hold a batch worker slot
// until the process is killed.
const defaultTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client for one upstream source.
// A non-positive timeout falls back to the default.
func NewHTTPClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
}
