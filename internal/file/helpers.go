package file

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"
)

// entityTag fingerprints the identity and state of a file, quoted as an
// RFC 7232 strong validator
func entityTag(fi FileInfo) string {
	mtime := float64(fi.ModTime.UnixNano()) / float64(time.Second)
	raw := fmt.Sprintf("%d%s%d", fi.Inode, strconv.FormatFloat(mtime, 'f', -1, 64), fi.Size)

	return `"` + base64.StdEncoding.EncodeToString([]byte(raw)) + `"`
}

// Guess the content type from the file name only, empty when unknown
func contentTypeByName(path string) string {
	return mime.TypeByExtension(filepath.Ext(path))
}

// Detect the content-type by mime-sniffing when the name tells nothing.
// See https://github.com/golang/go/blob/902fc114272978a40d2e65c2510a18e870077559/src/net/http/fs.go#L194
func detectContentType(content []byte) string {
	n := len(content)
	if n > 512 {
		n = 512
	}

	return http.DetectContentType(content[:n])
}

func formatDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
