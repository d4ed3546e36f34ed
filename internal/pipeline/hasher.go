package pipeline

import (
	"crypto/hmac"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/sha3"
)

const (
	// Algorithm names the keyed hash in reports.
	Algorithm = "HMAC (SHA3-256)"

	// DigestHexLen is the length of a hex encoded digest.
	DigestHexLen = 2 * 32
)

// Hasher computes HMAC-SHA3-256 tags keyed with the run secret. It reuses
// its internal state between calls and is not safe for concurrent use.
type Hasher struct {
	mac hash.Hash
	sum []byte
}

// NewHasher returns a Hasher keyed with secret.
func NewHasher(secret []byte) *Hasher {
	return &Hasher{
		mac: hmac.New(sha3.New256, secret),
		sum: make([]byte, 0, 32),
	}
}

// AppendHex appends the lowercase hex digest of value to dst.
func (h *Hasher) AppendHex(dst []byte, value string) []byte {
	h.mac.Reset()
	h.mac.Write([]byte(value))
	h.sum = h.mac.Sum(h.sum[:0])
	return hex.AppendEncode(dst, h.sum)
}

// Hex returns the lowercase hex digest of value.
func (h *Hasher) Hex(value string) string {
	return string(h.AppendHex(make([]byte, 0, DigestHexLen), value))
}
