package app

import (
	"context"
	"testing"

	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
		tx  = &phtlctest.Tx{}
	)

	first := &phtlctest.Decorator{}
	second := &phtlctest.Decorator{}
	var missing *phtlctest.Decorator
	h := &phtlctest.Handler{}

	stack := ChainDecorators(first, nil, missing).Chain(second).WithHandler(h)

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	assert.Equal(t, 1, first.CheckCallCount())
	assert.Equal(t, 1, first.DeliverCallCount())
	assert.Equal(t, 1, second.CheckCallCount())
	assert.Equal(t, 1, second.DeliverCallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsOnError(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
		tx  = &phtlctest.Tx{}
	)

	first := &phtlctest.Decorator{}
	failing := &phtlctest.Decorator{DeliverErr: errors.ErrUnauthorized}
	last := &phtlctest.Decorator{}
	h := &phtlctest.Handler{}

	stack := ChainDecorators(first, failing, last).WithHandler(h)

	_, err := stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, first.DeliverCallCount())
	assert.Equal(t, 1, failing.DeliverCallCount())
	assert.Equal(t, 0, last.DeliverCallCount())
	assert.Equal(t, 0, h.DeliverCallCount())

	_, err = stack.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
}
