package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// IsRetryableError reports whether an outbound HTTP failure is worth another
// attempt: transport-level errors, timeouts, 429 and 5xx responses.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	type statusCarrier interface{ HTTPStatusCode() int }
	var sc statusCarrier
	if errors.As(err, &sc) {
		code := sc.HTTPStatusCode()
		return code == http.StatusTooManyRequests || code >= 500
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "eof")
}

// RetryAfterDuration picks the next sleep: the server's Retry-After header
// when present and sane, otherwise the caller's backoff, capped at max.
func RetryAfterDuration(resp *http.Response, backoff, max time.Duration) time.Duration {
	d := backoff
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				d = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && d > max {
		d = max
	}
	return d
}

// JitterSleep spreads a sleep over [d/2, d) so concurrent retries do not
// synchronize against the upstream.
func JitterSleep(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
