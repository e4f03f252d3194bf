package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptions_Skip(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want int64
	}{
		{name: "first page", opts: ListOptions{Page: 1, Size: 10}, want: 0},
		{name: "zero page", opts: ListOptions{Page: 0, Size: 10}, want: 0},
		{name: "third page", opts: ListOptions{Page: 3, Size: 10}, want: 20},
		{name: "zero size", opts: ListOptions{Page: 5, Size: 0}, want: 0},
		{name: "saturates on overflow", opts: ListOptions{Page: 1 << 62, Size: 100}, want: math.MaxInt64},
		{name: "max page", opts: ListOptions{Page: math.MaxInt64, Size: 1}, want: math.MaxInt64 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Skip())
		})
	}
}
