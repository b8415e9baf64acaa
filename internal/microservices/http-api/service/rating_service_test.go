package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	assert.Nil(t, AverageRating(nil))
	assert.Nil(t, AverageRating([]int{}))

	tests := []struct {
		ratings []int
		want    float64
	}{
		{[]int{5}, 5},
		{[]int{4, 3}, 3.5},
		{[]int{1, 2, 2}, 5.0 / 3.0},
	}
	for _, tt := range tests {
		got := AverageRating(tt.ratings)
		require.NotNil(t, got)
		assert.InDelta(t, tt.want, *got, 1e-9)
	}
}
