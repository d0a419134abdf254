package token

import "github.com/iov-one/phtlc/errors"

// ABCI Response Codes
// x/token reserves 140 ~ 149.
var (
	ErrNoAccount       = errors.Register(140, "account not open")
	ErrAccountNotEmpty = errors.Register(141, "account not empty")
)
