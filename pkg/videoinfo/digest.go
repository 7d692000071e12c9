package videoinfo

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"strings"
)

// sha1ChunkSize is how much of the file is read per progress callback.
const sha1ChunkSize = 64 * 1024

// SHA1 returns the uppercase SHA-1 hex digest of the video file. The
// digest is computed on first call and cached, so repeated calls are
// free. progress, when non-nil, is invoked after every chunk with the
// number of bytes hashed so far and the file size.
func (v *Video) SHA1(progress func(done, total int64)) (string, error) {
	if v.sha1sum != "" {
		return v.sha1sum, nil
	}

	f, err := os.Open(v.Path)
	if err != nil {
		return "", fmt.Errorf("videoinfo: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("videoinfo: %w", err)
	}
	total := fi.Size()

	h := sha1.New()
	buf := make([]byte, sha1ChunkSize)
	var done int64
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
			done += int64(n)
			if progress != nil {
				progress(done, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("videoinfo: %w", err)
		}
	}

	v.sha1sum = strings.ToUpper(fmt.Sprintf("%x", h.Sum(nil)))
	return v.sha1sum, nil
}
