package file

import (
	"os"
	"strconv"
	"time"

	"gitlab.com/gitlab-org/pages-gateway/metrics"
)

// FileInfo is the subset of stat(2) the handlers care about
type FileInfo struct {
	Inode   uint64
	ModTime time.Time
	Size    int64
	Regular bool
}

// FS abstracts the file system operations needed to serve a single file
type FS interface {
	Stat(path string) (FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// LocalFS reads files from the local disk
type LocalFS struct{}

// Stat follows symlinks, like stat(2)
func (LocalFS) Stat(path string) (FileInfo, error) {
	return stat(path)
}

// ReadFile returns the exact bytes on disk
func (LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Instrumented counts every operation of fs in metrics.FSOperations
func Instrumented(fs FS, name string) FS {
	return &instrumentedFS{fs: fs, name: name}
}

type instrumentedFS struct {
	fs   FS
	name string
}

func (i *instrumentedFS) increment(operation string, err error) {
	metrics.FSOperations.WithLabelValues(i.name, operation, strconv.FormatBool(err == nil)).Inc()
}

func (i *instrumentedFS) Stat(path string) (FileInfo, error) {
	fi, err := i.fs.Stat(path)
	i.increment("Stat", err)
	return fi, err
}

func (i *instrumentedFS) ReadFile(path string) ([]byte, error) {
	b, err := i.fs.ReadFile(path)
	i.increment("ReadFile", err)
	return b, err
}

// DefaultFS is the file system used when none is configured
var DefaultFS = Instrumented(LocalFS{}, "local")
