package pqutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriorityQueue(t *testing.T) {
	actual := NewPriorityQueue[int, int](42)

	require.Equal(t, OrderMaxFirst, actual.inner.order)
	require.Equal(t, 42, cap(actual.inner.items))
	require.Zero(t, actual.Len())
}

func TestNewPriorityQueueWithOrder(t *testing.T) {
	actual := NewPriorityQueueWithOrder[uint32, string](8, OrderMinFirst)

	require.Equal(t, OrderMinFirst, actual.inner.order)
	require.Equal(t, 8, cap(actual.inner.items))
}

func TestPriorityQueueEnqueueDequeueNoPriority(t *testing.T) {
	queue := NewPriorityQueue[int, int](5)

	for i := 0; i < 5; i++ {
		queue.Enqueue(Item[int, int]{Payload: i})
	}

	require.Equal(t, 5, queue.Len())

	var (
		expected = map[int]struct{}{0: {}, 1: {}, 2: {}, 3: {}, 4: {}}
		actual   = make(map[int]struct{})
	)

	require.NoError(t, queue.Drain(func(item Item[int, int]) error { actual[item.Payload] = struct{}{}; return nil }))
	require.Equal(t, expected, actual)
}

func TestPriorityQueueEnqueueDequeueWithPriority(t *testing.T) {
	type test struct {
		name     string
		order    Order
		input    []int
		expected []int
	}

	tests := []*test{
		{
			name:     "MaxFirst",
			order:    OrderMaxFirst,
			input:    []int{0, 1, 2, 3, 4},
			expected: []int{4, 3, 2, 1, 0},
		},
		{
			name:     "MinFirst",
			order:    OrderMinFirst,
			input:    []int{4, 3, 2, 1, 0},
			expected: []int{0, 1, 2, 3, 4},
		},
		{
			name:     "MinFirstInterleaved",
			order:    OrderMinFirst,
			input:    []int{7, 1, 9, 3, 3, 0, 12},
			expected: []int{0, 1, 3, 3, 7, 9, 12},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			queue := NewPriorityQueueWithOrder[int, int](len(test.input), test.order)

			for _, p := range test.input {
				queue.Enqueue(Item[int, int]{Payload: p, Priority: p})
			}

			require.Equal(t, len(test.input), queue.Len())

			actual := make([]int, 0, len(test.input))

			require.NoError(t, queue.Drain(func(item Item[int, int]) error {
				actual = append(actual, item.Payload)
				return nil
			}))

			require.Equal(t, test.expected, actual)
		})
	}
}

func TestPriorityQueueTryDequeue(t *testing.T) {
	queue := NewPriorityQueueWithOrder[uint32, string](0, OrderMinFirst)

	_, ok := queue.TryDequeue()
	require.False(t, ok)

	queue.Enqueue(Item[uint32, string]{Payload: "b", Priority: 2})
	queue.Enqueue(Item[uint32, string]{Payload: "a", Priority: 1})

	item, ok := queue.TryDequeue()
	require.True(t, ok)
	require.Equal(t, "a", item.Payload)
	require.Equal(t, 1, queue.Len())
}

func TestPriorityQueuePeek(t *testing.T) {
	queue := NewPriorityQueueWithOrder[uint32, string](0, OrderMinFirst)

	_, ok := queue.Peek()
	require.False(t, ok)

	queue.Enqueue(Item[uint32, string]{Payload: "z", Priority: 26})
	queue.Enqueue(Item[uint32, string]{Payload: "c", Priority: 3})

	item, ok := queue.Peek()
	require.True(t, ok)
	require.Equal(t, "c", item.Payload)
	require.Equal(t, 2, queue.Len())
}

func TestPriorityQueueDrainNoItems(t *testing.T) {
	queue := NewPriorityQueue[int, int](5)

	var run bool

	require.NoError(t, queue.Drain(func(item Item[int, int]) error { run = true; return nil }))
	require.False(t, run)
}

func TestPriorityQueueDrainWithError(t *testing.T) {
	queue := NewPriorityQueue[int, int](5)

	var run int

	err := queue.Drain(func(item Item[int, int]) error { run++; return assert.AnError })
	require.NoError(t, err)
	require.Zero(t, run)

	for i := 0; i < 5; i++ {
		queue.Enqueue(Item[int, int]{Payload: i})
	}

	err = queue.Drain(func(item Item[int, int]) error { run++; return assert.AnError })
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, 1, run)
}

func TestPriorityQueueDequeueReleasesPayload(t *testing.T) {
	queue := NewPriorityQueue[int, *int](1)

	v := 42
	queue.Enqueue(Item[int, *int]{Payload: &v, Priority: 1})

	item := queue.Dequeue()
	require.Equal(t, &v, item.Payload)
	require.Nil(t, queue.inner.items[:1][0].Payload)
}
