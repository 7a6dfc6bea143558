package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	cverr "github.com/codevf/codevf-go/internal/errors"
)

func TestListTags_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tags" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"tags":[
			{"id":1,"name":"general","displayName":"General","costMultiplier":1,"isActive":true},
			{"id":2,"name":"senior","displayName":"Senior","costMultiplier":"1.7","isActive":true,"isDeprecated":false},
			{"id":3,"name":"legacy","displayName":"Legacy","costMultiplier":1.2,"isActive":false,"isDeprecated":true}
		]}`))
	}))
	defer srv.Close()

	tags, err := ListTags(context.Background(), testTransport(srv))
	if err != nil || len(tags) != 3 {
		t.Fatalf("ListTags unexpected: got=%d err=%v", len(tags), err)
	}
	if !tags[1].CostMultiplier.Equal(decimal.RequireFromString("1.7")) {
		t.Fatalf("senior multiplier = %s", tags[1].CostMultiplier)
	}
	if tags[2].IsActive || !tags[2].IsDeprecated {
		t.Fatalf("legacy tag flags: %+v", tags[2])
	}
}

func TestListTags_Empty(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tags":[]}`))
	}))
	defer srv.Close()

	tags, err := ListTags(context.Background(), testTransport(srv))
	if err != nil || len(tags) != 0 {
		t.Fatalf("ListTags unexpected: got=%v err=%v", tags, err)
	}
}

func TestListTags_RateLimited(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":"rate_limit_exceeded","message":"slow down","status":429,"retryable":true}}`))
	}))
	defer srv.Close()

	// One initial call plus retries, all rate limited.
	rt := testTransport(srv)
	_, err := ListTags(context.Background(), rt)
	if !cverr.IsKind(err, cverr.KindRateLimit) {
		t.Fatalf("expected RateLimit, got %v", err)
	}
	if !cverr.IsRetryable(err) {
		t.Fatal("rate limit errors carry the retryable flag even after exhaustion")
	}
}
