package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cverr "github.com/codevf/codevf-go/internal/errors"
	"github.com/codevf/codevf-go/internal/types"
)

func TestCreateProject_Created(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/create" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.Project{ID: 42, Name: "billing-service"})
	}))
	defer srv.Close()

	project, err := CreateProject(context.Background(), testTransport(srv), types.CreateProjectRequest{Name: "billing-service"})
	if err != nil || project == nil || project.ID != 42 {
		t.Fatalf("CreateProject unexpected: got=%+v err=%v", project, err)
	}
	if project.Reused {
		t.Fatal("201 must not be flagged as reused")
	}
}

func TestCreateProject_ReusedByName(t *testing.T) {
	t.Parallel()
	// Create-or-reuse: 200 means the existing project came back.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(types.Project{ID: 42, Name: "billing-service", Description: "original"})
	}))
	defer srv.Close()

	project, err := CreateProject(context.Background(), testTransport(srv), types.CreateProjectRequest{
		Name:        "billing-service",
		Description: "ignored on reuse",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if !project.Reused {
		t.Fatal("200 must be flagged as reused, not treated as an error")
	}
	if project.Description != "original" {
		t.Fatalf("description = %q, want the server's value", project.Description)
	}
}

func TestCreateProject_EmptyName(t *testing.T) {
	t.Parallel()
	srv := failIfCalled(t)
	defer srv.Close()
	_, err := CreateProject(context.Background(), testTransport(srv), types.CreateProjectRequest{})
	if !cverr.IsKind(err, cverr.KindBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestCreateProject_AuthFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"token_expired","message":"token expired","status":401}}`))
	}))
	defer srv.Close()

	_, err := CreateProject(context.Background(), testTransport(srv), types.CreateProjectRequest{Name: "p"})
	if !cverr.IsKind(err, cverr.KindAuthentication) {
		t.Fatalf("expected Authentication, got %v", err)
	}
}
