package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagerRequestFiresOnChangeOnly(t *testing.T) {
	var fired []int
	p := NewPager(10, func(page int) { fired = append(fired, page) })
	p.SetCount(23)

	assert.Equal(t, 1, p.State().CurrentPage)
	assert.Equal(t, 3, p.TotalPages())

	assert.True(t, p.Request(2))
	assert.False(t, p.Request(2))
	assert.True(t, p.Request(99))
	assert.False(t, p.Next())
	assert.True(t, p.Request(0))
	assert.False(t, p.Prev())

	assert.Equal(t, []int{2, 3, 1}, fired)
}

func TestPagerNavigation(t *testing.T) {
	p := NewPager(10, nil)
	p.SetCount(45)

	assert.True(t, p.Last())
	assert.Equal(t, 5, p.State().CurrentPage)
	assert.True(t, p.Prev())
	assert.Equal(t, 4, p.State().CurrentPage)
	assert.True(t, p.First())
	assert.Equal(t, 1, p.State().CurrentPage)
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.State().CurrentPage)
}

func TestPagerResetIsSilent(t *testing.T) {
	calls := 0
	p := NewPager(5, func(int) { calls++ })
	p.SetCount(20)
	p.Request(4)
	assert.Equal(t, 1, calls)

	p.SetCount(3)
	assert.Equal(t, 4, p.State().CurrentPage, "SetCount must not move the page")

	p.Reset()
	assert.Equal(t, 1, p.State().CurrentPage)
	assert.Equal(t, 1, calls)
}

func TestPagerEmptyCollection(t *testing.T) {
	calls := 0
	p := NewPager(10, func(int) { calls++ })

	assert.Equal(t, 0, p.TotalPages())
	assert.False(t, p.Request(1))
	assert.False(t, p.Last())
	assert.Equal(t, 1, p.State().CurrentPage)
	assert.Zero(t, calls)
}

func TestPagerSetPageSize(t *testing.T) {
	p := NewPager(10, nil)
	p.SetCount(100)
	p.Request(7)

	p.SetPageSize(25)
	assert.Equal(t, PageState{CurrentPage: 1, PageSize: 25}, p.State())
	assert.Equal(t, 4, p.TotalPages())
}
