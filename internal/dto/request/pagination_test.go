package request

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequestDefaults(t *testing.T) {
	p := PaginatedRequest{}
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 0, p.Offset())

	p = PaginatedRequest{Page: 3, PerPage: 500}
	assert.Equal(t, 100, p.Limit())
	assert.Equal(t, 200, p.Offset())
}

func TestPaginatedRequestOffsetNeverNegative(t *testing.T) {
	p := PaginatedRequest{Page: math.MaxInt64 / 5, PerPage: 10}
	assert.Equal(t, math.MaxInt, p.Offset())

	p = PaginatedRequest{Page: math.MaxInt, PerPage: 100}
	assert.GreaterOrEqual(t, p.Offset(), 0)
}
