package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	cverr "github.com/codevf/codevf-go/internal/errors"
	"github.com/codevf/codevf-go/internal/transport"
	"github.com/codevf/codevf-go/internal/types"
)

// CreateTask runs every local validator, the credit budget check, and
// then submits the task. Validation failures return before any network
// I/O. tagMultiplier is the multiplier of the selected tag (the default
// 1.00 when no tag was chosen or none is cached).
func CreateTask(ctx context.Context, rt *transport.Transport, req types.CreateTaskRequest, tagMultiplier decimal.Decimal) (*types.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := types.ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}
	mode, err := types.ResolveMode(req.Mode)
	if err != nil {
		return nil, err
	}
	req.Mode = mode
	if err := types.ValidateMaxCredits(req.MaxCredits, mode); err != nil {
		return nil, err
	}
	if err := types.ValidateTagID(req.TagID); err != nil {
		return nil, err
	}
	if err := types.ValidateMetadata(req.Metadata); err != nil {
		return nil, err
	}
	if err := types.ValidateAttachments(req.Attachments); err != nil {
		return nil, err
	}
	if err := types.ValidateIdempotencyKey(req.IdempotencyKey); err != nil {
		return nil, err
	}
	if tagMultiplier.IsZero() {
		tagMultiplier = types.DefaultTagMultiplier
	}
	if err := types.CheckCreditBudget(req.MaxCredits, mode, tagMultiplier); err != nil {
		return nil, err
	}

	var task types.Task
	status, err := rt.Do(ctx, http.MethodPost, "/tasks/create", req, &task)
	if err != nil {
		return nil, err
	}
	// 200 means an idempotency-key replay returned the original task.
	task.Reused = status == http.StatusOK
	return &task, nil
}

// GetTask fetches the latest task status and deliverables.
func GetTask(ctx context.Context, rt *transport.Transport, taskID string) (*types.Task, error) {
	task, _, err := GetTaskWithHint(ctx, rt, taskID)
	return task, err
}

// GetTaskWithHint is GetTask plus the server's Retry-After poll hint,
// which may arrive even on 200.
func GetTaskWithHint(ctx context.Context, rt *transport.Transport, taskID string) (*types.Task, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if taskID == "" {
		return nil, 0, cverr.NewValidation(cverr.KindBadRequest, "taskId is required")
	}

	var task types.Task
	_, hint, err := rt.DoWithHint(ctx, http.MethodGet, "/tasks/"+taskID, nil, &task)
	if err != nil {
		return nil, 0, err
	}
	return &task, hint, nil
}

// CancelTask cancels a pending or in-progress task and returns it with
// its terminal status.
func CancelTask(ctx context.Context, rt *transport.Transport, taskID string) (*types.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if taskID == "" {
		return nil, cverr.NewValidation(cverr.KindBadRequest, "taskId is required")
	}

	var task types.Task
	if _, err := rt.Do(ctx, http.MethodPost, "/tasks/"+taskID+"/cancel", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
