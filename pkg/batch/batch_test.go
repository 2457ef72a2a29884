package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	list := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		name  string
		index int
		size  int
		want  []int
	}{
		{"first full page", 0, 5, []int{0, 1, 2, 3, 4}},
		{"middle page", 1, 5, []int{5, 6, 7, 8, 9}},
		{"short last page", 2, 5, []int{10, 11, 12}},
		{"past the end", 3, 5, nil},
		{"far past the end", 100, 5, nil},
		{"negative index", -1, 5, nil},
		{"zero size", 0, 0, nil},
		{"page covering whole list", 0, 50, list},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page(list, tt.index, tt.size))
		})
	}
}

func TestPageExhaustiveAndNonOverlapping(t *testing.T) {
	list := make([]string, 23)
	for i := range list {
		list[i] = string(rune('a' + i))
	}

	var walked []string
	for i := 0; ; i++ {
		page := Page(list, i, 4)
		if len(page) == 0 {
			break
		}
		walked = append(walked, page...)
	}

	require.Equal(t, list, walked)
}

func TestPageEmptyList(t *testing.T) {
	assert.Empty(t, Page([]int(nil), 0, 10))
}
