package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taigrr/colorhash"
)

// TagModulus bounds the values TreeTag can produce.
const TagModulus = 1000

// TreeTag derives a short, stable tag from the level-one names of a tree so
// two trees can be told apart at a glance. It is not a checksum of the
// payload.
func TreeTag(rootNames []string) string {
	hInt := colorhash.HashString(strings.Join(rootNames, "/"))
	if hInt < 0 {
		hInt = -hInt
	}
	return fmt.Sprintf("%03d", hInt%TagModulus)
}

// Hashes a file and returns the hash as a hex string.
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
