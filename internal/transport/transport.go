// Package transport issues the SDK's HTTP requests: bearer credential on
// every call, JSON bodies, and bounded retries with exponential backoff.
// Retry-After hints from the server always override the computed wait.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	cverr "github.com/codevf/codevf-go/internal/errors"
)

// Sleeper waits for d or until ctx is done. Injectable for tests.
type Sleeper func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Transport performs authenticated JSON round trips against the API.
// It is safe for concurrent use; the only shared state is the pooled
// http.Client.
type Transport struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	userAgent string
	cfg       Config
	sleep     Sleeper
}

// New constructs a Transport. A nil http.Client gets a default one with
// the configured timeout.
func New(baseURL, apiKey, userAgent string, cfg Config, hc *http.Client) *Transport {
	cfg = cfg.withDefaults()
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Transport{
		http:      hc,
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: userAgent,
		cfg:       cfg,
		sleep:     defaultSleep,
	}
}

// Do issues one logical request and decodes a 2xx body into out (when
// out is non-nil). It returns the final HTTP status so facades can tell
// 200 (reused resource) from 201 (created).
func (t *Transport) Do(ctx context.Context, method, path string, body, out any) (int, error) {
	status, _, err := t.DoWithHint(ctx, method, path, body, out)
	return status, err
}

// DoWithHint is Do plus the Retry-After hint from the final response,
// which the server may send even on 200 to pace status polling.
func (t *Transport) DoWithHint(ctx context.Context, method, path string, body, out any) (int, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	var encoded []byte
	if body != nil {
		var err error
		if encoded, err = json.Marshal(body); err != nil {
			return 0, 0, err
		}
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = t.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = t.cfg.MaxInterval
	exp.MaxElapsedTime = 0 // attempts are bounded by MaxAttempts
	exp.Reset()

	for attempt := 1; ; attempt++ {
		status, hint, apiErr := t.once(ctx, method, path, encoded, out)
		if apiErr == nil {
			requestsTotal.WithLabelValues(method, statusLabel(status)).Inc()
			return status, hint, nil
		}

		if !apiErr.Retryable || attempt >= t.cfg.MaxAttempts {
			requestsTotal.WithLabelValues(method, statusLabel(status)).Inc()
			return status, hint, apiErr
		}

		wait := exp.NextBackOff()
		if hint > wait {
			wait = hint
		}
		retriesTotal.WithLabelValues(method).Inc()
		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("retrying request")
		if err := t.sleep(ctx, wait); err != nil {
			return status, hint, err
		}
	}
}

// once performs a single attempt. A nil *cverr.Error means success.
func (t *Transport) once(ctx context.Context, method, path string, encoded []byte, out any) (int, time.Duration, *cverr.Error) {
	var reader io.Reader
	if encoded != nil {
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return 0, 0, cverr.NewConnection(method+" "+path, err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if encoded != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.http.Do(req)
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, 0, cverr.NewConnection(method+" "+path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, 0, cverr.NewConnection(method+" "+path, err)
	}
	hint := parseRetryAfter(resp.Header.Get("Retry-After"))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return resp.StatusCode, hint, &cverr.Error{
					Kind:       cverr.KindAPI,
					Code:       "decode_error",
					Message:    "malformed response body: " + err.Error(),
					Status:     resp.StatusCode,
					Body:       string(respBody),
					Underlying: err,
				}
			}
		}
		return resp.StatusCode, hint, nil
	}

	return resp.StatusCode, hint, cverr.FromResponse(resp.StatusCode, respBody)
}

// parseRetryAfter accepts both forms of the header: delay seconds and
// HTTP-date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
