package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signerHandler records the signers visible in the context.
type signerHandler struct {
	phtlctest.Handler
	signers []phtlc.Condition
}

func (h *signerHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return h.Handler.Check(ctx, db, tx)
}

func (h *signerHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return h.Handler.Deliver(ctx, db, tx)
}

func TestDecorator(t *testing.T) {
	const chainID = "deco-rate"
	ctx := phtlc.WithChainID(context.Background(), chainID)
	db := store.MemStore()

	key := phtlctest.NewKey()
	tx := newSignedTx([]byte("deliver me"))
	sig, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)

	h := &signerHandler{}
	auth := phtlctest.Decorate(h, NewDecorator())

	// no signatures present
	_, err = auth.Check(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = phtlctest.Decorate(h, NewDecorator().AllowMissingSigs()).Check(ctx, db, tx)
	assert.NoError(t, err)
	assert.Empty(t, h.signers)

	// unsigned transaction type
	_, err = auth.Check(ctx, db, &phtlctest.Tx{})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	tx.signatures = []*StdSignature{sig}
	res, err := auth.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.EqualValues(t, signatureVerifyCost, res.GasPayment)
	assert.Equal(t, []phtlc.Condition{key.PublicKey().Condition()}, h.signers)
	assert.True(t, Authenticate{}.HasAddress(withSigners(ctx, h.signers), key.PublicKey().Address()))

	// sequence was incremented by the check call
	_, err = auth.Deliver(ctx, db, tx)
	assert.True(t, ErrInvalidSequence.Is(err))

	next, err := SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	tx.signatures = []*StdSignature{next}
	_, err = auth.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}
