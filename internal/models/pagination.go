package models

// Page is one cursor-paginated slice of a backend list. An empty NextCursor
// means the final page.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor"`
}

func (p Page[T]) HasMore() bool {
	return p.NextCursor != ""
}

type PaginatedResponse struct {
	Data       any    `json:"data"`
	NextCursor string `json:"nextCursor,omitempty"`
}
