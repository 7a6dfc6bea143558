// Package codevf is the Go client SDK for the CodeVF task-review API.
//
// The client is a stateless, synchronous facade: each operation issues
// one logical HTTP call plus bounded retries and blocks until a result
// or terminal error is available. It is safe for concurrent use.
package codevf

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/codevf/codevf-go/internal/api"
	cverr "github.com/codevf/codevf-go/internal/errors"
	"github.com/codevf/codevf-go/internal/transport"
	"github.com/codevf/codevf-go/internal/types"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://codevf.com/api/v1"

// EnvAPIKey is consulted once, at construction time, when no key is
// passed explicitly.
const EnvAPIKey = "CODEVF_API_KEY"

// MinPollInterval is the floor enforced between task status polls.
const MinPollInterval = 2 * time.Second

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
	cfg       transport.Config
	rt        *transport.Transport
	sleep     func(ctx context.Context, d time.Duration) error

	// Tags fetched this process run, used for local tag validation and
	// cost estimation. Server data stays authoritative.
	mu   sync.RWMutex
	tags map[int64]Tag
}

// New constructs a Client. An empty apiKey falls back to the CODEVF_API_KEY
// environment variable; if neither is set an authentication error is
// returned. Additional knobs are provided via functional options.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, cverr.NewValidation(cverr.KindAuthentication,
			"API key must be provided explicitly or via %s", EnvAPIKey)
	}

	cfg, err := transport.LoadConfig()
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		userAgent: "codevf-go/" + Version,
		cfg:       cfg,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.rt = transport.New(c.baseURL, c.apiKey, c.userAgent, c.cfg, c.http)
	return c, nil
}

// MustNew constructs a Client with panic-on-error semantics (for testing).
func MustNew(apiKey string, opts ...Option) *Client {
	c, err := New(apiKey, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// --------------------------------------------------------------------
// Project operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateProject creates a project, or returns the existing one when the
// name is already taken. Check Project.Reused to tell the two apart.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	return api.CreateProject(ctx, c.rt, req)
}

// --------------------------------------------------------------------
// Task operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateTask validates the request locally, checks the credit budget
// against the selected tag's multiplier, and submits the task. All
// validation failures are returned before any network call.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	mult, err := c.tagMultiplier(req.TagID)
	if err != nil {
		return nil, err
	}
	task, err := api.CreateTask(ctx, c.rt, req, mult)
	if err != nil {
		return nil, err
	}
	tasksCreatedTotal.WithLabelValues(string(task.Mode)).Inc()
	return task, nil
}

// GetTask fetches the latest task status and deliverables.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	return api.GetTask(ctx, c.rt, taskID)
}

// CancelTask cancels a pending or in-progress task.
func (c *Client) CancelTask(ctx context.Context, taskID string) (*Task, error) {
	return api.CancelTask(ctx, c.rt, taskID)
}

// WaitForTask polls the task until it reaches a terminal status. The
// poll interval never drops below MinPollInterval and stretches to any
// Retry-After hint the server sends. interval <= 0 uses the minimum.
func (c *Client) WaitForTask(ctx context.Context, taskID string, interval time.Duration) (*Task, error) {
	if interval < MinPollInterval {
		interval = MinPollInterval
	}
	sleep := c.sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	for {
		task, hint, err := api.GetTaskWithHint(ctx, c.rt, taskID)
		if err != nil {
			return nil, err
		}
		if task.Terminal() {
			return task, nil
		}
		wait := interval
		if hint > wait {
			wait = hint
		}
		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// --------------------------------------------------------------------
// Credit and tag operations - delegated to internal/api
// --------------------------------------------------------------------

// GetBalance retrieves the current credit balance.
func (c *Client) GetBalance(ctx context.Context) (*CreditBalance, error) {
	return api.GetBalance(ctx, c.rt)
}

// ListTags retrieves the available expertise tags and caches them for
// local tag validation and cost estimation for the rest of the process
// run.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	tags, err := api.ListTags(ctx, c.rt)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.tags = make(map[int64]Tag, len(tags))
	for _, t := range tags {
		c.tags[t.ID] = t
	}
	c.mu.Unlock()
	return tags, nil
}

// EstimateTaskCost returns the final credit cost for the given inputs,
// rounded up to the next whole credit, using the cached multiplier for
// tagID (1.00 when no tags are cached or tagID is zero).
func (c *Client) EstimateTaskCost(maxCredits int, mode ServiceMode, tagID int64) (int64, error) {
	mult, err := c.tagMultiplier(tagID)
	if err != nil {
		return 0, err
	}
	m, err := types.ResolveMode(mode)
	if err != nil {
		return 0, err
	}
	_, rounded := types.FinalCreditCost(maxCredits, m, mult)
	return rounded, nil
}

// tagMultiplier resolves a tag id against the cached tag list. With no
// cache the check is deferred to the server and the default multiplier
// is assumed.
func (c *Client) tagMultiplier(tagID int64) (decimal.Decimal, error) {
	if tagID == 0 {
		return types.DefaultTagMultiplier, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tags == nil {
		return types.DefaultTagMultiplier, nil
	}
	tag, ok := c.tags[tagID]
	if !ok {
		return decimal.Decimal{}, cverr.NewValidation(cverr.KindInvalidTag, "unknown tag id %d", tagID)
	}
	if !tag.IsActive {
		return decimal.Decimal{}, cverr.NewValidation(cverr.KindInvalidTag, "tag %d is inactive", tagID)
	}
	return tag.CostMultiplier, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
