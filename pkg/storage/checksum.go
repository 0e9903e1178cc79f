package storage

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// Content hashes are streamed through the digest in fixed-size blocks so
// large artifacts never need to fit in memory.
const hashBlockSize = 4096

// HashReader computes the lowercase hex MD5 digest of everything read
// from r. The digest matches the entity tag an object store reports for
// single-part uploads.
func HashReader(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.CopyBuffer(h, r, make([]byte, hashBlockSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile computes the content hash of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return HashReader(f)
}
