package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParamsClamps(t *testing.T) {
	p := NewParams(0, 1000)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = NewParams(3, 0)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 40, p.Offset)
}

func TestNewResponse(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	resp := NewResponse(items, NewParams(2, 2))
	assert.Equal(t, []int{3, 4}, resp.Data)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
	assert.True(t, resp.Meta.HasPrev)

	resp = NewResponse(items, NewParams(4, 2))
	assert.Equal(t, []int{}, resp.Data)
	assert.False(t, resp.Meta.HasNext)
}
