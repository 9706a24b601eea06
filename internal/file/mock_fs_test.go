package file

import (
	"github.com/stretchr/testify/mock"
)

// mockFS can be used to count file system operations
type mockFS struct {
	mock.Mock
}

func (m *mockFS) Stat(path string) (FileInfo, error) {
	args := m.Called(path)
	fi, _ := args.Get(0).(FileInfo)

	return fi, args.Error(1)
}

func (m *mockFS) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}
