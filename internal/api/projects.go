package api

import (
	"context"
	"net/http"

	cverr "github.com/codevf/codevf-go/internal/errors"
	"github.com/codevf/codevf-go/internal/transport"
	"github.com/codevf/codevf-go/internal/types"
)

// CreateProject creates a project, or returns the existing one when the
// name is already taken (create-or-reuse, reported via Project.Reused).
func CreateProject(ctx context.Context, rt *transport.Transport, req types.CreateProjectRequest) (*types.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, cverr.NewValidation(cverr.KindBadRequest, "project name is required")
	}

	var project types.Project
	status, err := rt.Do(ctx, http.MethodPost, "/projects/create", req, &project)
	if err != nil {
		return nil, err
	}
	project.Reused = status == http.StatusOK
	return &project, nil
}
