package utils

import (
	"hash"

	"github.com/minio/highwayhash"
)

// fingerprintKey seeds the hash used for tree fingerprints. It must stay
// stable so fingerprints remain comparable across runs.
var fingerprintKey = []byte("cubeimport-tree-fingerprint-key1")

// NewFingerprint returns a 64-bit running hash used to fingerprint the content
// transferred by a tree operation.
func NewFingerprint() (hash.Hash64, error) {
	return highwayhash.New64(fingerprintKey)
}
