package testutil

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/couchbase/prioritysync/log"
)

// MockLogger is a 'log.Logger' which records formatted log lines as mock calls, allowing tests to assert that specific
// events were logged.
//
// NOTE: Lines are formatted before being recorded, expectations should be set using 'On("Log", level, line)'.
type MockLogger struct {
	mock.Mock
}

var _ log.Logger = (*MockLogger)(nil)

// Log records the formatted line.
func (m *MockLogger) Log(level log.Level, format string, args ...any) {
	m.Called(level, fmt.Sprintf(format, args...))
}

// NewPermissiveMockLogger returns a mock logger which accepts any log line, useful where only some lines are asserted
// using 'AssertCalled'.
func NewPermissiveMockLogger() *MockLogger {
	logger := &MockLogger{}
	logger.On("Log", mock.Anything, mock.Anything).Return()

	return logger
}
