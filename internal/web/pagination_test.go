package web

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/storeadmin/internal/core"
)

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 0, []int{}},
		{1, 1, []int{1}},
		{4, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{1, 10, []int{1, 2, 3, 0, 9, 10}},
		{3, 10, []int{1, 2, 3, 0, 9, 10}},
		{8, 10, []int{1, 2, 0, 8, 9, 10}},
		{10, 10, []int{1, 2, 0, 8, 9, 10}},
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, pageNumbers(tt.current, tt.total))
		})
	}
}

func TestListURL(t *testing.T) {
	assert.Equal(t, "/dashboard/products", listURL("/dashboard/products", "", 1))
	assert.Equal(t, "/dashboard/products?page=3", listURL("/dashboard/products", "", 3))
	assert.Equal(t, "/dashboard/products?page=2&query=red+shoe", listURL("/dashboard/products", "red shoe", 2))
}

func TestBuildPagination(t *testing.T) {
	page := func(query string, current, total int) *core.ListResult {
		return &core.ListResult{Query: query, Page: current, TotalPages: total}
	}

	single := buildPagination("/dashboard/customers", page("", 1, 1))
	assert.Empty(t, single.Links)

	first := buildPagination("/dashboard/customers", page("a", 1, 3))
	assert.Empty(t, first.Prev)
	assert.Equal(t, "/dashboard/customers?page=2&query=a", first.Next)
	assert.Len(t, first.Links, 3)
	assert.True(t, first.Links[0].Current)

	last := buildPagination("/dashboard/customers", page("", 3, 3))
	assert.Equal(t, "/dashboard/customers?page=2", last.Prev)
	assert.Empty(t, last.Next)

	past := buildPagination("/dashboard/customers", page("", 9, 3))
	assert.Equal(t, "/dashboard/customers?page=3", past.Prev, "previous from past the end goes to the last page")
	assert.Empty(t, past.Next)
}

func TestSafeReturn(t *testing.T) {
	def := core.EntityDefinition{Info: core.EntityInfo{Key: "customers"}}
	tests := []struct {
		raw, want string
	}{
		{"", "/dashboard/customers"},
		{"/dashboard/customers?page=2&confirm=abc", "/dashboard/customers?page=2"},
		{"/dashboard/customers?notice=delete-failed&query=x", "/dashboard/customers?query=x"},
		{"/dashboard/invoices", "/dashboard/customers"},
		{"http://evil.example/dashboard/customers", "/dashboard/customers"},
		{"%zz", "/dashboard/customers"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeReturn(def, tt.raw), tt.raw)
	}
}

func TestWithNotice(t *testing.T) {
	assert.Equal(t, "/dashboard/customers?notice=delete-failed", withNotice("/dashboard/customers", noticeDeleteFailed))
	assert.Equal(t, "/dashboard/customers?notice=delete-failed&page=2", withNotice("/dashboard/customers?page=2", noticeDeleteFailed))
}
