package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	cverr "github.com/codevf/codevf-go/internal/errors"
	"github.com/codevf/codevf-go/internal/transport"
	"github.com/codevf/codevf-go/internal/types"
)

func testTransport(srv *httptest.Server) *transport.Transport {
	return transport.New(srv.URL, "test-key", "codevf-go/test", transport.Config{BaseBackoff: time.Millisecond}, srv.Client())
}

func validTaskRequest() types.CreateTaskRequest {
	return types.CreateTaskRequest{
		Prompt:     "please review the retry logic in my payment worker",
		MaxCredits: 240,
		ProjectID:  42,
	}
}

func TestCreateTask_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/create" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req types.CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("body decode: %v", err)
		}
		if req.Mode != types.ModeStandard {
			t.Errorf("mode = %q, want default standard", req.Mode)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.Task{ID: "task_1", Status: types.StatusPending, Mode: req.Mode, MaxCredits: req.MaxCredits})
	}))
	defer srv.Close()

	task, err := CreateTask(context.Background(), testTransport(srv), validTaskRequest(), decimal.Decimal{})
	if err != nil || task == nil || task.ID != "task_1" {
		t.Fatalf("CreateTask unexpected: got=%+v err=%v", task, err)
	}
	if task.Reused {
		t.Fatal("201 must not be flagged as reused")
	}
}

func TestCreateTask_IdempotentReplay(t *testing.T) {
	t.Parallel()
	// Same key twice: the server answers 201 first, then 200 with the
	// original task. Both are successes with the same ID.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateTaskRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.IdempotencyKey == "" {
			t.Error("idempotency key missing from payload")
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusCreated)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(types.Task{ID: "task_7", Status: types.StatusPending, Mode: types.ModeStandard})
	}))
	defer srv.Close()

	rt := testTransport(srv)
	req := validTaskRequest()
	req.IdempotencyKey = "2c6f10b7-42e3-4a0f-9f51-0f5c6e2a8d11"

	first, err := CreateTask(context.Background(), rt, req, decimal.Decimal{})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := CreateTask(context.Background(), rt, req, decimal.Decimal{})
	if err != nil {
		t.Fatalf("replay create: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("replay returned different task: %s vs %s", first.ID, second.ID)
	}
	if first.Reused || !second.Reused {
		t.Fatalf("reused flags: first=%v second=%v", first.Reused, second.Reused)
	}
}

// failIfCalled returns a server that fails the test when reached, for
// asserting that validation short-circuits before any network I/O.
func failIfCalled(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call: %s %s", r.Method, r.URL.Path)
	}))
}

func TestCreateTask_ValidationShortCircuits(t *testing.T) {
	t.Parallel()
	srv := failIfCalled(t)
	defer srv.Close()
	rt := testTransport(srv)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*types.CreateTaskRequest)
		kind   cverr.Kind
	}{
		{"short prompt", func(r *types.CreateTaskRequest) { r.Prompt = "too short" }, cverr.KindBadRequest},
		{"bad mode", func(r *types.CreateTaskRequest) { r.Mode = "express" }, cverr.KindInvalidMode},
		{"credits below mode range", func(r *types.CreateTaskRequest) { r.Mode = types.ModeRealtimeAnswer; r.MaxCredits = 59 }, cverr.KindMaxCreditsExceeded},
		{"credits above mode range", func(r *types.CreateTaskRequest) { r.Mode = types.ModeRealtimeAnswer; r.MaxCredits = 601 }, cverr.KindMaxCreditsExceeded},
		{"credits above ceiling", func(r *types.CreateTaskRequest) { r.MaxCredits = 1921 }, cverr.KindMaxCreditsExceeded},
		{"negative tag", func(r *types.CreateTaskRequest) { r.TagID = -3 }, cverr.KindInvalidTag},
		{"nested metadata", func(r *types.CreateTaskRequest) { r.Metadata = types.Metadata{"m": map[string]any{}} }, cverr.KindInvalidMetadata},
		{"too many attachments", func(r *types.CreateTaskRequest) {
			r.Attachments = make([]types.Attachment, 6)
			for i := range r.Attachments {
				r.Attachments[i] = types.Attachment{FileName: "a.txt", MimeType: "text/plain", Content: "x"}
			}
		}, cverr.KindAttachmentLimitExceeded},
		{"bad idempotency key", func(r *types.CreateTaskRequest) { r.IdempotencyKey = "nope" }, cverr.KindBadRequest},
	}
	for _, tc := range cases {
		req := validTaskRequest()
		tc.mutate(&req)
		_, err := CreateTask(ctx, rt, req, decimal.Decimal{})
		if !cverr.IsKind(err, tc.kind) {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.kind, err)
		}
	}
}

func TestCreateTask_BudgetCheckedBeforeSubmit(t *testing.T) {
	t.Parallel()
	srv := failIfCalled(t)
	defer srv.Close()

	req := validTaskRequest()
	req.Mode = types.ModeRealtimeAnswer
	req.MaxCredits = 600
	// 600 × 2 × 1.7 = 2040 > 1920
	_, err := CreateTask(context.Background(), testTransport(srv), req, decimal.RequireFromString("1.7"))
	if !cverr.IsKind(err, cverr.KindMaxCreditsExceeded) {
		t.Fatalf("expected MaxCreditsExceeded, got %v", err)
	}
}

func TestCreateTask_ServerRejection(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"code":"insufficient_credits","message":"balance too low","status":402}}`))
	}))
	defer srv.Close()

	_, err := CreateTask(context.Background(), testTransport(srv), validTaskRequest(), decimal.Decimal{})
	if !cverr.IsKind(err, cverr.KindInsufficientCredits) {
		t.Fatalf("expected InsufficientCredits, got %v", err)
	}
}

func TestGetTask_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/task_9" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(types.Task{ID: "task_9", Status: types.StatusProcessing, Mode: types.ModeFast})
	}))
	defer srv.Close()

	task, err := GetTask(context.Background(), testTransport(srv), "task_9")
	if err != nil || task.Status != types.StatusProcessing {
		t.Fatalf("GetTask unexpected: got=%+v err=%v", task, err)
	}
}

func TestGetTask_EmptyID(t *testing.T) {
	t.Parallel()
	srv := failIfCalled(t)
	defer srv.Close()
	if _, err := GetTask(context.Background(), testTransport(srv), ""); err == nil {
		t.Fatal("expected validation error for empty task id")
	}
}

func TestGetTaskWithHint_PollPacing(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		_ = json.NewEncoder(w).Encode(types.Task{ID: "task_9", Status: types.StatusProcessing})
	}))
	defer srv.Close()

	_, hint, err := GetTaskWithHint(context.Background(), testTransport(srv), "task_9")
	if err != nil || hint != 7*time.Second {
		t.Fatalf("hint = %v, err = %v", hint, err)
	}
}

func TestCancelTask_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/task_3/cancel" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(types.Task{ID: "task_3", Status: types.StatusCancelled})
	}))
	defer srv.Close()

	task, err := CancelTask(context.Background(), testTransport(srv), "task_3")
	if err != nil || task.Status != types.StatusCancelled {
		t.Fatalf("CancelTask unexpected: got=%+v err=%v", task, err)
	}
	if !task.Terminal() {
		t.Fatal("cancelled task must be terminal")
	}
}

func TestCreateTask_CtxCanceled(t *testing.T) {
	t.Parallel()
	srv := failIfCalled(t)
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CreateTask(ctx, testTransport(srv), validTaskRequest(), decimal.Decimal{}); err == nil {
		t.Fatal("expected context canceled")
	}
}
