package catalogue

import (
	"crypto/md5" //nolint:gosec // the catalogue format records MD5 digests
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// HashLength is the length of a hex encoded digest in a catalogue.
const HashLength = md5.Size * 2

// hashChunkSize is the read size used when hashing files.
const hashChunkSize = 64 * 1024

// Hash returns the hex encoded MD5 digest of everything read from r.
func Hash(r io.Reader) (string, error) {
	h := md5.New() //nolint:gosec
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("hashing: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex encoded MD5 digest of data.
func HashBytes(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// FileHash returns the hex encoded MD5 digest of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Hash(f)
}

// NormalizeHash lower-cases and trims a digest read from a document.
func NormalizeHash(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
