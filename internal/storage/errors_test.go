package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
		wantErr  bool
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "third page", page: 3, pageSize: 25, want: 50},
		{name: "zero page", page: 0, pageSize: 10, wantErr: true},
		{name: "negative page size", page: 1, pageSize: -1, wantErr: true},
		{name: "huge page size on first page", page: 1, pageSize: math.MaxInt, want: 0},
		{name: "offset overflows", page: 3, pageSize: math.MaxInt, wantErr: true},
		{name: "huge page", page: math.MaxInt, pageSize: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Offset(tt.page, tt.pageSize)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, err := Page(items, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, got)

	got, err = Page(items, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, got)

	got, err = Page(items, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Page(items, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = Page(items, 3, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Page(items, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
