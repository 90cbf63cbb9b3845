package services

import (
	"math"

	"blogcms/internal/utils"
)

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	TotalCount int64
	PerPage    int
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.TotalPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

// NextPageNumber returns Number+1. Check HasNext first.
func (p *Page[T]) NextPageNumber() int     { return p.Number + 1 }
func (p *Page[T]) PreviousPageNumber() int { return p.Number - 1 }

// PageRange is 1..TotalPages, for rendering page links.
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func totalPages(total int64, perPage int) int {
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	if pages < 1 {
		return 1
	}
	return pages
}

// resolvePage turns a raw page parameter into a valid page number for total items.
// Missing or malformed values and values below 1 give page 1; values past the end give
// the last page.
func resolvePage(raw string, total int64, perPage int) (number, pages int) {
	pages = totalPages(total, perPage)
	number = utils.ParsePositiveInt(raw, 1)
	if number > pages {
		number = pages
	}
	return number, pages
}
