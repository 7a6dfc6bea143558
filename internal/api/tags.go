package api

import (
	"context"
	"net/http"

	"github.com/codevf/codevf-go/internal/transport"
	"github.com/codevf/codevf-go/internal/types"
)

// ListTags retrieves the available engineer expertise levels.
func ListTags(ctx context.Context, rt *transport.Transport) ([]types.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var lr types.ListTagsResponse
	if _, err := rt.Do(ctx, http.MethodGet, "/tags", nil, &lr); err != nil {
		return nil, err
	}
	return lr.Tags, nil
}
