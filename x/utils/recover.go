package utils

import (
	"context"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ phtlc.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx context.Context, store phtlc.KVStore, tx phtlc.Tx, next phtlc.Checker) (_ *phtlc.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx context.Context, store phtlc.KVStore, tx phtlc.Tx, next phtlc.Deliverer) (_ *phtlc.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
