package phtlctest

import (
	"crypto/rand"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a random key.
func NewCondition() phtlc.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns a random 32 byte identifier, suitable as escrow id or
// hashlock preimage.
func SequenceID() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
