package request

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page selects a 1-based page of a listing.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number and size into range.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
