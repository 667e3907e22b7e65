package core

import (
	"context"
)

// ListResult contains one page of an entity listing.
type ListResult struct {
	Entity     EntityInfo
	Columns    []ListColumn
	Rows       []Row
	Page       int
	PageSize   int
	TotalPages int   // 0 when nothing matches
	TotalItems int64 // Rows matching Query across all pages
	Query      string
}

// HasPrev reports whether a previous page exists.
func (r *ListResult) HasPrev() bool {
	return r.Page > 1
}

// HasNext reports whether a following page exists.
func (r *ListResult) HasNext() bool {
	return r.Page < r.TotalPages
}

// TotalPagesFor returns ceil(count / PageSize).
func TotalPagesFor(count int64) int {
	return int((count + PageSize - 1) / PageSize)
}

// NormalizePage returns page, or 1 when page is below 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ListPage returns one page of an entity listing filtered by query.
// A page past the end yields no rows rather than an error.
func (s *Service) ListPage(ctx context.Context, entity, query string, page int) (*ListResult, error) {
	def, err := MustGet(entity)
	if err != nil {
		return nil, err
	}

	page = NormalizePage(page)

	total, err := s.store.Count(ctx, def, query)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Entity:     def.Info,
		Columns:    def.List.Columns,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: TotalPagesFor(total),
		TotalItems: total,
		Query:      query,
	}
	// Past the last page there is nothing to fetch, and a large page would
	// overflow the offset.
	if page > result.TotalPages {
		return result, nil
	}

	result.Rows, err = s.store.List(ctx, def, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	return result, nil
}
