package system

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumCPU(t *testing.T) {
	numCPU := NumCPU()
	require.GreaterOrEqual(t, numCPU, 1)
	require.LessOrEqual(t, numCPU, runtime.GOMAXPROCS(0))
}

func TestNumWorkers(t *testing.T) {
	type test struct {
		name     string
		tasks    int
		expected int
	}

	tests := []test{
		{name: "Unknown", tasks: 0, expected: NumCPU()},
		{name: "Negative", tasks: -5, expected: NumCPU()},
		{name: "Single", tasks: 1, expected: 1},
		{name: "Many", tasks: 1 << 20, expected: NumCPU()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, NumWorkers(test.tasks))
		})
	}
}
