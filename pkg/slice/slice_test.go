// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/katha/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
}

func TestTake(t *testing.T) {
	assert.Equal(t, []int{1, 2}, slice.Take([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, slice.Take([]int{1}, 5))
	assert.Empty(t, slice.Take([]int{1}, -1))
}
