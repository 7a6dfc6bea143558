package types

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ------------------------------
// Service modes
// ------------------------------

// ServiceMode selects the urgency tier for a task. Each mode carries a
// fixed SLA multiplier and an allowed maxCredits band.
type ServiceMode string

const (
	ModeRealtimeAnswer ServiceMode = "realtime_answer"
	ModeFast           ServiceMode = "fast"
	ModeStandard       ServiceMode = "standard"
)

// SLAMultiplier returns the cost factor tied to the mode.
func (m ServiceMode) SLAMultiplier() decimal.Decimal {
	switch m {
	case ModeRealtimeAnswer:
		return decimal.NewFromInt(2)
	case ModeFast:
		return decimal.RequireFromString("1.5")
	default:
		return decimal.NewFromInt(1)
	}
}

// CreditRange returns the inclusive maxCredits band allowed for the mode.
func (m ServiceMode) CreditRange() (min, max int) {
	if m == ModeRealtimeAnswer {
		return 60, 600
	}
	return 240, 115200
}

// Valid reports whether m is one of the three supported modes.
// Mode names are case-sensitive on the wire.
func (m ServiceMode) Valid() bool {
	switch m {
	case ModeRealtimeAnswer, ModeFast, ModeStandard:
		return true
	}
	return false
}

// ------------------------------
// Task status
// ------------------------------

// Task lifecycle states. Transitions happen server-side only; the client
// reflects the last reported value.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// IsTerminalStatus reports whether a task status will never change again.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// ------------------------------
// Core domain entities
// ------------------------------

// Project represents a CodeVF project. Names are unique per account;
// the server returns the existing project on repeated creation.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// Reused is true when the server answered 200 instead of 201,
	// meaning an existing project with the same name was returned.
	Reused bool `json:"-"`
}

// Tag identifies an engineer expertise level and its cost multiplier.
type Tag struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DisplayName    string          `json:"displayName"`
	Description    string          `json:"description,omitempty"`
	CostMultiplier decimal.Decimal `json:"costMultiplier"`
	IsActive       bool            `json:"isActive"`
	SortOrder      int             `json:"sortOrder,omitempty"`
	ValidFrom      *time.Time      `json:"validFrom,omitempty"`
	ValidTo        *time.Time      `json:"validTo,omitempty"`
	IsDeprecated   bool            `json:"isDeprecated,omitempty"`
}

// CreditBalance mirrors GET /credits/balance. Totals are
// server-authoritative and not re-derived locally.
type CreditBalance struct {
	Available decimal.Decimal `json:"available"`
	OnHold    decimal.Decimal `json:"onHold"`
	Total     decimal.Decimal `json:"total"`
}

// TaskDeliverable is a single file produced by a completed task.
type TaskDeliverable struct {
	FileName   string `json:"fileName"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
	MimeType   string `json:"mimeType,omitempty"`
}

/// TaskResult is the standard result shape: a message plus deliverables.
// Tasks submitted with a response schema return caller-defined JSON
// instead; use Task.DecodeResult for those.
type TaskResult struct {
	Message      string            `json:"message,omitempty"`
	Deliverables []TaskDeliverable `json:"deliverables,omitempty"`
}

// Task represents a CodeVF task as last reported by the server.
type Task struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	Mode           ServiceMode     `json:"mode"`
	MaxCredits     int             `json:"maxCredits"`
	ProjectID      int64           `json:"projectId,omitempty"`
	TagID          int64           `json:"tagId,omitempty"`
	CreditsUsed    int             `json:"creditsUsed,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	ResponseSchema json.RawMessage `json:"responseSchema,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`

	// Reused is true when task creation answered 200 instead of 201,
	// meaning an idempotency-key replay returned the original task.
	Reused bool `json:"-"`
}

// Terminal reports whether the task reached completed or cancelled.
func (t *Task) Terminal() bool { return IsTerminalStatus(t.Status) }

// StandardResult decodes the result as the standard message+deliverables
// shape. It returns false when the task carries a response schema or the
// result does not match the standard shape.
func (t *Task) StandardResult() (*TaskResult, bool) {
	if len(t.Result) == 0 || len(t.ResponseSchema) > 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(t.Result))
	dec.DisallowUnknownFields()
	var r TaskResult
	if err := dec.Decode(&r); err != nil {
		return nil, false
	}
	return &r, true
}

// DecodeResult unmarshals the raw result into v. Intended for tasks
// created with a response schema.
func (t *Task) DecodeResult(v any) error {
	return json.Unmarshal(t.Result, v)
}

// Metadata is a flat mapping of string keys to primitive values.
// Nested containers are rejected by ValidateMetadata.
type Metadata map[string]any
