package htlc

import "github.com/iov-one/phtlc/errors"

// ABCI Response Codes
// x/htlc reserves 1200 ~ 1219.
var (
	ErrFundsNotSent          = errors.Register(1200, "funds not sent")
	ErrInvalidTimeLock       = errors.Register(1201, "invalid timelock")
	ErrNotFutureTimeLock     = errors.Register(1202, "timelock not in the future")
	ErrNotPastTimeLock       = errors.Register(1203, "timelock not yet passed")
	ErrInvalidRewardTimeLock = errors.Register(1204, "invalid reward timelock")
	ErrHashlockNotSet        = errors.Register(1205, "hashlock not set")
	ErrHashlockNoMatch       = errors.Register(1206, "hashlock does not match")
	ErrHashlockAlreadySet    = errors.Register(1207, "hashlock already set")
	ErrAlreadyClaimed        = errors.Register(1208, "already claimed")
	ErrWrongAsset            = errors.Register(1209, "wrong asset")
	ErrRewardAlreadySet      = errors.Register(1210, "reward already set")
)
