package codevf

import "github.com/codevf/codevf-go/internal/types"

// Public type aliases so SDK consumers can import only the codevf package.
type (
	// Requests
	CreateProjectRequest = types.CreateProjectRequest
	CreateTaskRequest    = types.CreateTaskRequest
	Attachment           = types.Attachment
	Metadata             = types.Metadata

	// Domain entities
	Project         = types.Project
	Task            = types.Task
	TaskResult      = types.TaskResult
	TaskDeliverable = types.TaskDeliverable
	Tag             = types.Tag
	CreditBalance   = types.CreditBalance
	ServiceMode     = types.ServiceMode
)

// Service modes.
const (
	ModeRealtimeAnswer = types.ModeRealtimeAnswer
	ModeFast           = types.ModeFast
	ModeStandard       = types.ModeStandard
)

// Task lifecycle states as reported by the server.
const (
	StatusPending    = types.StatusPending
	StatusProcessing = types.StatusProcessing
	StatusCompleted  = types.StatusCompleted
	StatusCancelled  = types.StatusCancelled
)

// Validation limits, exported for callers that size inputs up front.
const (
	MaxCreditsLimit = types.MaxCredits
	AttachmentLimit = types.AttachmentLimit
	MaxTextBytes    = types.MaxTextBytes
	MaxBinaryBytes  = types.MaxBinaryBytes
)

// Errors re-exported in errors.go
