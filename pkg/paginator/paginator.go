// Package paginator splits counted result sets into fixed-size pages.
//
// Page numbers are 1-based. Invalid input never fails: a missing or
// non-numeric page yields the first page and out-of-range numbers are
// clamped to the nearest existing page.
package paginator

import (
	"strconv"
	"strings"
)

const DefaultPerPage = 10

type Page struct {
	Number   int
	NumPages int
	PerPage  int
	Total    int64
}

// New resolves raw (usually the "page" query parameter) against total items.
func New(total int64, perPage int, raw string) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		PerPage:  perPage,
		Total:    total,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// StartIndex is the 1-based index of the first item on the page, 0 when empty.
func (p Page) StartIndex() int64 {
	if p.Total == 0 {
		return 0
	}
	return int64(p.Offset()) + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (p Page) EndIndex() int64 {
	end := int64(p.Number * p.PerPage)
	if end > p.Total {
		end = p.Total
	}
	return end
}
