package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is applied when the caller does not specify one.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Request holds windowing parameters for a paginated query.
type Request struct {
	Limit int   `json:"limit"`
	Skip  int64 `json:"skip"`
}

// DefaultRequest returns the default page window.
func DefaultRequest() Request {
	return Request{Limit: DefaultLimit, Skip: 0}
}

// FromHTTP extracts the page window from `limit` and `skip` query parameters,
// falling back to defaults for missing or out-of-range values.
func FromHTTP(r *http.Request) Request {
	req := DefaultRequest()

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxLimit {
			req.Limit = n
		}
	}

	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			req.Skip = n
		}
	}

	return req
}

// Connection is the paginated result envelope: the page of nodes, whether any
// row exists beyond it, and the total matching set size. TotalCount is
// computed by a separate count query and is never derived from len(Nodes).
type Connection[T any] struct {
	Nodes       []T   `json:"nodes"`
	HasNextPage bool  `json:"has_next_page"`
	TotalCount  int64 `json:"total_count"`
}

// NewConnection builds a Connection, normalizing a nil node slice to empty so
// the JSON rendering is always an array.
func NewConnection[T any](nodes []T, hasNextPage bool, totalCount int64) Connection[T] {
	if nodes == nil {
		nodes = []T{}
	}
	return Connection[T]{
		Nodes:       nodes,
		HasNextPage: hasNextPage,
		TotalCount:  totalCount,
	}
}
