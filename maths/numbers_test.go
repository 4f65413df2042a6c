package maths

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMin(t *testing.T) {
	type testCase struct {
		name     string
		a        uint64
		rest     []uint64
		expected uint64
	}

	cases := []testCase{
		{
			name:     "single",
			a:        20,
			expected: 20,
		},
		{
			name:     "normal",
			a:        550,
			rest:     []uint64{8e6},
			expected: 550,
		},
		{
			name:     "zero-value",
			a:        20,
			rest:     []uint64{0, 7},
			expected: 0,
		},
		{
			name:     "same",
			a:        9e15,
			rest:     []uint64{9e15},
			expected: 9e15,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Min(tc.a, tc.rest...))
		})
	}
}

func TestMax(t *testing.T) {
	type testCase struct {
		name     string
		a        int
		rest     []int
		expected int
	}

	cases := []testCase{
		{
			name:     "single",
			a:        -4,
			expected: -4,
		},
		{
			name:     "normal",
			a:        550,
			rest:     []int{8e6},
			expected: 8e6,
		},
		{
			name:     "negative",
			a:        -20,
			rest:     []int{-3, -7},
			expected: -3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Max(tc.a, tc.rest...))
		})
	}
}
