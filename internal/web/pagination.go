package web

import (
	"net/url"
	"strconv"

	"github.com/JonMunkholm/storeadmin/internal/core"
	"github.com/JonMunkholm/storeadmin/internal/web/templates"
)

// maxPlainPages is the largest page count rendered without ellipses.
const maxPlainPages = 7

// listURL builds a listing URL. Empty query and page 1 are omitted.
func listURL(path, query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set("query", query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// pageNumbers returns the page numbers shown in the pagination bar.
// Zero marks an ellipsis.
//
//	total <= 7:         1 2 3 4 5 6 7
//	current <= 3:       1 2 3 ... n-1 n
//	current >= n-2:     1 2 ... n-2 n-1 n
//	otherwise:          1 ... c-1 c c+1 ... n
func pageNumbers(current, total int) []int {
	if total <= maxPlainPages {
		nums := make([]int, total)
		for i := range nums {
			nums[i] = i + 1
		}
		return nums
	}
	switch {
	case current <= 3:
		return []int{1, 2, 3, 0, total - 1, total}
	case current >= total-2:
		return []int{1, 2, 0, total - 2, total - 1, total}
	default:
		return []int{1, 0, current - 1, current, current + 1, 0, total}
	}
}

// buildPagination builds the pagination bar for a listing result.
func buildPagination(path string, result *core.ListResult) templates.Pagination {
	current, total, query := result.Page, result.TotalPages, result.Query
	p := templates.Pagination{Page: current, TotalPages: total}
	if total <= 1 {
		return p
	}
	if result.HasPrev() {
		p.Prev = listURL(path, query, min(current-1, total))
	}
	if result.HasNext() {
		p.Next = listURL(path, query, current+1)
	}
	for _, n := range pageNumbers(current, total) {
		if n == 0 {
			p.Links = append(p.Links, templates.PageLink{Ellipsis: true})
			continue
		}
		p.Links = append(p.Links, templates.PageLink{
			Number:  n,
			Href:    listURL(path, query, n),
			Current: n == current,
		})
	}
	return p
}
