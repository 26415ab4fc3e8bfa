// Package ethsig builds packed, Keccak-hashed messages and signs them with
// EIP-191 personal signatures.
package ethsig

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// SignatureLength is the size of an r||s||v signature.
const SignatureLength = 65

var (
	ErrSignatureLength = errors.New("signature must be 65 bytes")
	ErrSignatureHex    = errors.New("signature is not valid hex")
)

// Packer concatenates values the way Solidity's abi.encodePacked does.
// The first error sticks and is reported by Digest.
type Packer struct {
	buf []byte
	err error
}

// NewPacker returns an empty Packer.
func NewPacker() *Packer {
	return &Packer{buf: make([]byte, 0, 256)}
}

// String appends the raw UTF-8 bytes of s.
func (p *Packer) String(s string) *Packer {
	p.buf = append(p.buf, s...)
	return p
}

// Address appends the 20 address bytes. Malformed addresses are an error.
func (p *Packer) Address(addr string) *Packer {
	if p.err != nil {
		return p
	}
	if !common.IsHexAddress(addr) {
		p.err = fmt.Errorf("invalid address %q", addr)
		return p
	}
	p.buf = append(p.buf, common.HexToAddress(addr).Bytes()...)
	return p
}

// Uint256 appends v as a 32-byte big-endian word.
func (p *Packer) Uint256(v *big.Int) *Packer {
	if p.err != nil {
		return p
	}
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		p.err = fmt.Errorf("value out of uint256 range: %v", v)
		return p
	}
	p.buf = append(p.buf, common.LeftPadBytes(v.Bytes(), 32)...)
	return p
}

// Uint64 appends v as a 32-byte word.
func (p *Packer) Uint64(v uint64) *Packer {
	return p.Uint256(new(big.Int).SetUint64(v))
}

// Int64 appends a non-negative v as a 32-byte word.
func (p *Packer) Int64(v int64) *Packer {
	return p.Uint256(big.NewInt(v))
}

// Bytes32 appends a fixed 32-byte word.
func (p *Packer) Bytes32(b [32]byte) *Packer {
	p.buf = append(p.buf, b[:]...)
	return p
}

// Bytes returns the packed message.
func (p *Packer) Bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.buf, nil
}

// Digest returns the Keccak-256 of the packed message.
func (p *Packer) Digest() ([]byte, error) {
	msg, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	return Keccak256(msg), nil
}

// Keccak256 hashes data with the legacy (pre-NIST) Keccak used by Ethereum.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Keccak256Word is Keccak256 as a fixed-size word.
func Keccak256Word(data []byte) [32]byte {
	var w [32]byte
	copy(w[:], Keccak256(data))
	return w
}

// Sign produces a 0x-prefixed personal signature over msg, with v in {27, 28}.
func Sign(key *ecdsa.PrivateKey, msg []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// Recover returns the address that produced the personal signature over msg.
func Recover(msg []byte, signature string) (common.Address, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "0x"))
	if err != nil {
		return common.Address{}, ErrSignatureHex
	}
	if len(raw) != SignatureLength {
		return common.Address{}, ErrSignatureLength
	}

	sig := make([]byte, SignatureLength)
	copy(sig, raw)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(msg), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verify reports whether signature over msg was produced by expected.
func Verify(msg []byte, signature string, expected common.Address) bool {
	addr, err := Recover(msg, signature)
	if err != nil {
		return false
	}
	return addr == expected
}
