package service

import (
	"crypto/rand"
	"math/big"
)

// maxNonceStart bounds the random starting point of nonce counters.
const maxNonceStart = 1_000_000

// randomNonceStart returns a value in [1, maxNonceStart] so counters of
// different users do not line up.
func randomNonceStart() uint64 {
	n, err := rand.Int(rand.Reader, big.NewInt(maxNonceStart))
	if err != nil {
		return 1
	}
	return n.Uint64() + 1
}
