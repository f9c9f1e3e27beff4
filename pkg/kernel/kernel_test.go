package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, Email("ana@example.com"), NewEmail("  Ana@Example.COM "))
	assert.True(t, NewEmail("ana@example.com").IsValid())
	assert.False(t, Email("ana@").IsValid())
	assert.False(t, Email("@example.com").IsValid())
	assert.False(t, Email("ana@localhost").IsValid())
	assert.True(t, Email("  ").IsEmpty())
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "5511999998888", Phone("+55 (11) 99999-8888").Digits())
	assert.Equal(t, "", Phone("n/a").Digits())
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, IsHexColor("#007bff"))
	assert.True(t, IsHexColor("#FFF"))
	assert.False(t, IsHexColor("007bff"))
	assert.False(t, IsHexColor("#00zbff"))
}

func TestPagination(t *testing.T) {
	opts := PaginationOptions{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.PageSize)
	assert.Equal(t, 40, PaginationOptions{Page: 3, PageSize: 20}.Offset())

	page := NewPaginated([]string{"a", "b"}, PaginationOptions{Page: 1, PageSize: 2}, 5)
	assert.Equal(t, 3, page.Page.Pages)
	assert.False(t, page.Empty)

	empty := NewPaginated[string](nil, PaginationOptions{Page: 1, PageSize: 10}, 0)
	assert.NotNil(t, empty.Items)
	assert.True(t, empty.Empty)

	lengths := MapPaginated(page, func(s string) int { return len(s) })
	assert.Equal(t, []int{1, 1}, lengths.Items)
	assert.Equal(t, page.Page, lengths.Page)
}
