package kernel

// PaginationOptions carries limit/offset for list queries
type PaginationOptions struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func DefaultPagination() PaginationOptions {
	return PaginationOptions{Limit: 20, Offset: 0}
}

// Paginated wraps a page of results with the total count
type Paginated[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func NewPaginated[T any](items []T, total int, opts PaginationOptions) Paginated[T] {
	return Paginated[T]{
		Items:  items,
		Total:  total,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
}
