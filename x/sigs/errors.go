package sigs

import "github.com/iov-one/phtlc/errors"

// ABCI Response Codes
// x/sigs reserves 120 ~ 129.
var (
	// ErrInvalidSequence is returned when the signature nonce does not
	// match the current account nonce.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
