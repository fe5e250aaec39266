package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters
func (h Hash) Short() string {
	if len(h) > 12 {
		return string(h[:12])
	}
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// ComputeTableHash fingerprints a header row and its records in order.
// Cells are separated by unit/record separators so shifted values hash differently.
func ComputeTableHash(headers []string, rows [][]string) Hash {
	h := sha256.New()
	write := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				h.Write([]byte{0x1f})
			}
			h.Write([]byte(c))
		}
		h.Write([]byte{0x1e})
	}
	write(headers)
	for _, row := range rows {
		write(row)
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}
