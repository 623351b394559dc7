package service

import (
	"crypto/rand"
	"encoding/hex"
	"hash"
	"strconv"
	"time"
)

const tokenNonceSize = 16

func newTokenNonce() []byte {
	nonce := make([]byte, tokenNonceSize)
	_, _ = rand.Read(nonce)
	return nonce
}

// mintToken derives an opaque session token from the username, the current
// time and a random nonce, hex-encoding the digest. Without a hash
// constructor it falls back to the plain username+timestamp concatenation.
func mintToken(newHash func() hash.Hash, username string, now time.Time, nonce []byte) string {
	seed := username + strconv.FormatInt(now.UnixNano(), 10)
	if newHash == nil {
		return seed
	}
	h := newHash()
	_, _ = h.Write([]byte(seed))
	_, _ = h.Write(nonce)
	return hex.EncodeToString(h.Sum(nil))
}
