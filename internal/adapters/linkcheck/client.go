// internal/adapters/linkcheck/client.go
package linkcheck

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"simlab/internal/domain"
)

const maxAttempts = 4

type Client struct {
	hc *http.Client
	rl *rate.Limiter
	ua string
}

func New(rps float64, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		hc: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// affiliate links bounce through trackers; follow a reasonable chain
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		rl: rate.NewLimiter(rate.Limit(rps), burst),
		ua: "simlab-linkcheck/1.0",
	}
}

// Check resolves url and returns the final status. Servers that refuse HEAD are asked again
// with GET. 429 and transient 5xx are retried, honoring Retry-After. Any other 4xx/5xx wraps
// domain.ErrBrokenLink.
func (c *Client) Check(ctx context.Context, url string) (int, error) {
	st, err := c.do(ctx, http.MethodHead, url)
	if err == nil && (st == http.StatusMethodNotAllowed || st == http.StatusNotImplemented) {
		st, err = c.do(ctx, http.MethodGet, url)
	}
	if err != nil {
		return st, err
	}
	if st >= 400 {
		return st, fmt.Errorf("%s: status %d: %w", url, st, domain.ErrBrokenLink)
	}
	return st, nil
}

// do performs one logical request with client-side rate limiting and retries.
func (c *Client) do(ctx context.Context, method, url string) (int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return 0, err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return 0, err
		}
		req.Header.Set("User-Agent", c.ua)

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && pause(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, lastErr
		}
		// status is all we need
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryDelay(resp.Header, time.Now())
			if wait == 0 {
				wait = backoff(i)
			}
			if i < maxAttempts-1 && pause(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return resp.StatusCode, nil
		default:
			return resp.StatusCode, nil
		}
	}
	return 0, lastErr
}

// pause blocks for d; false means ctx ended first.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// maxRetryWait caps what a server may ask for; the request context still bounds the total.
const maxRetryWait = time.Minute

// retryDelay reads Retry-After as delta-seconds or an HTTP date, relative to now.
func retryDelay(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(now)
	}
	return min(max(d, 0), maxRetryWait)
}

// backoff is 200ms << attempt plus up to half that again.
func backoff(attempt int) time.Duration {
	base := (200 * time.Millisecond) << attempt
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(float64(base)*float64(b[0])/510)
}
