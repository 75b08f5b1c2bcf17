package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		pageSize int
		expected [][]int
	}{
		{
			name:     "Even split with remainder",
			pageSize: 3,
			expected: [][]int{{1, 2, 3}, {4, 5, 6}, {7}},
		},
		{
			name:     "Page larger than input",
			pageSize: 10,
			expected: [][]int{{1, 2, 3, 4, 5, 6, 7}},
		},
		{
			name:     "Page of one",
			pageSize: 1,
			expected: [][]int{{1}, {2}, {3}, {4}, {5}, {6}, {7}},
		},
		{
			name:     "Exact split",
			pageSize: 7,
			expected: [][]int{{1, 2, 3, 4, 5, 6, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Paginate(items, tt.pageSize))
		})
	}
}

func TestPaginateDegenerateInputs(t *testing.T) {
	assert.Nil(t, Paginate([]int{}, 3))
	assert.Nil(t, Paginate([]int{1, 2}, 0))
	assert.Nil(t, Paginate([]int{1, 2}, -1))
}

func TestPaginateDocuments(t *testing.T) {
	docs := []Document{{ID: 1}, {ID: 2}, {ID: 3}}
	pages := Paginate(docs, 2)
	assert.Len(t, pages, 2)
	assert.Len(t, pages[0], 2)
	assert.Len(t, pages[1], 1)
	assert.Equal(t, 3, pages[1][0].ID)
}
