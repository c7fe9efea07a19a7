package response

type PaginatedResponse[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageMeta `json:"pagination"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PageMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: pages,
			HasNext:    page < pages,
		},
	}
}
