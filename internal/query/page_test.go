package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
		want  Window
	}{
		{"absent inputs use defaults", "", "", Window{Page: 1, PageSize: 10}},
		{"non-numeric inputs use defaults", "abc", "xyz", Window{Page: 1, PageSize: 10}},
		{"zero and negative use defaults", "0", "-5", Window{Page: 1, PageSize: 10}},
		{"valid inputs pass through", "3", "25", Window{Page: 3, PageSize: 25}},
		{"huge page size is not capped", "1", "100000", Window{Page: 1, PageSize: 100000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWindow(tt.page, tt.limit))
		})
	}
}

func TestWindow_Offset(t *testing.T) {
	assert.Equal(t, 0, Window{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, Window{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, 100, Window{Page: 5, PageSize: 25}.Offset())
}

func TestWindow_PageInfo(t *testing.T) {
	info := Window{Page: 2, PageSize: 10}.PageInfo(23)
	assert.Equal(t, PageInfo{TotalUsers: 23, TotalPages: 3, CurrentPage: 2, PageSize: 10}, info)

	// Exact multiple does not round up an extra page.
	assert.Equal(t, 2, Window{Page: 1, PageSize: 10}.PageInfo(20).TotalPages)

	// Empty result set yields zero pages.
	assert.Equal(t, PageInfo{TotalUsers: 0, TotalPages: 0, CurrentPage: 1, PageSize: 10},
		Window{Page: 1, PageSize: 10}.PageInfo(0))

	// A page beyond range still reports true totals.
	beyond := Window{Page: 9, PageSize: 10}.PageInfo(23)
	assert.Equal(t, 9, beyond.CurrentPage)
	assert.Equal(t, 3, beyond.TotalPages)
}
