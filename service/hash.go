package service

import (
	"strconv"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// documentID hashes the document name and content.
func documentID(doc Document) (string, error) {
	h, err := highwayhash.New64(key)
	if err != nil {
		return "", err
	}
	if _, err = h.Write([]byte(doc.Name)); err != nil {
		return "", err
	}
	if _, err = h.Write([]byte{0}); err != nil {
		return "", err
	}
	if _, err = h.Write(doc.Data); err != nil {
		return "", err
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}
