package file

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func stat(path string) (FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileInfo{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	return FileInfo{
		Inode:   st.Ino,
		ModTime: time.Unix(st.Mtim.Unix()),
		Size:    st.Size,
		Regular: st.Mode&unix.S_IFMT == unix.S_IFREG,
	}, nil
}
