package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageLabel(t *testing.T) {
	assert.Equal(t, "Page 0 of 0", PageLabel(0, 0))
	assert.Equal(t, "Page 1 of 1", PageLabel(0, 1))
	assert.Equal(t, "Page 3 of 7", PageLabel(2, 7))
}

func TestNewListView(t *testing.T) {
	rows := []Property{{ID: 1}, {ID: 2}}

	first := NewListView(rows, 0, 3)
	assert.False(t, first.CanPrev)
	assert.True(t, first.CanNext)
	assert.Equal(t, "Page 1 of 3", first.PageLabel)

	last := NewListView(rows, 2, 3)
	assert.True(t, last.CanPrev)
	assert.False(t, last.CanNext)

	empty := NewListView(nil, 0, 0)
	assert.True(t, empty.Empty())
	assert.False(t, empty.CanPrev)
	assert.False(t, empty.CanNext)

	// строки копируются
	rows[0].Address = "changed"
	assert.Equal(t, "", first.Rows[0].Address)
}

func TestFilterStateIsEmpty(t *testing.T) {
	assert.True(t, FilterState{}.IsEmpty())
	assert.True(t, FilterState{Address: "   "}.IsEmpty())

	zero := 0.0
	assert.False(t, FilterState{MinPrice: &zero}.IsEmpty())
	assert.Equal(t, "Main", FilterState{Address: " Main "}.NormalizedAddress())
}

func TestStatusCodeOf(t *testing.T) {
	status, ok := StatusCodeOf(&APIError{Operation: "create", StatusCode: 500})
	assert.True(t, ok)
	assert.Equal(t, 500, status)

	_, ok = StatusCodeOf(ErrValidation)
	assert.False(t, ok)
}
