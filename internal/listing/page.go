package listing

// DefaultPageSize is used when a spec does not set one.
const DefaultPageSize = 10

// Page is one window into a filtered sequence.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Paginate returns items [(page-1)*size, page*size) clamped to the slice.
// The page number is clamped into [1, TotalPages]; TotalPages is at least 1.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := TotalPages(total, size)
	page = Clamp(page, pages)

	start := (page - 1) * size
	end := min(start+size, total)

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
	}
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return max(1, (n+size-1)/size)
}

// Clamp bounds page to [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return max(1, min(page, totalPages))
}

// Empty reports whether the page has nothing to show.
func (p Page[T]) Empty() bool { return len(p.Items) == 0 }

// Start is the 1-based position of the first item shown, or 0.
func (p Page[T]) Start() int {
	if p.Empty() {
		return 0
	}
	return (p.Page-1)*p.PageSize + 1
}

// End is the 1-based position of the last item shown, or 0.
func (p Page[T]) End() int {
	if p.Empty() {
		return 0
	}
	return p.Start() + len(p.Items) - 1
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Meta strips the items, leaving the numbers the API reports.
func (p Page[T]) Meta() Meta {
	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
}

// Meta is the pagination block of list responses.
type Meta struct {
	Page       int `json:"page" yaml:"page"`
	PageSize   int `json:"pageSize" yaml:"pageSize"`
	Total      int `json:"total" yaml:"total"`
	TotalPages int `json:"totalPages" yaml:"totalPages"`
}
