package types

// ------------------------------
// Response Types
// ------------------------------

// ListTagsResponse mirrors the GET /tags response shape.
type ListTagsResponse struct {
	Tags []Tag `json:"tags"`
}
