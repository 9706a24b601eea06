//go:build !linux
// +build !linux

package file

import "os"

// inode numbers are not available here, entity tags fall back to mtime and size
func stat(path string) (FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		ModTime: fi.ModTime(),
		Size:    fi.Size(),
		Regular: fi.Mode().IsRegular(),
	}, nil
}
