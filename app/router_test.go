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

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &phtlctest.Handler{}
	bad := &phtlctest.Handler{DeliverErr: errors.ErrUnauthorized}
	r.Handle("good/path", good)
	r.Handle("bad", bad)

	assert.Panics(t, func() { r.Handle("good/path", good) }, "duplicate route")
	assert.Panics(t, func() { r.Handle("l:7", good) }, "invalid route")

	txFor := func(path string) *phtlctest.Tx {
		return &phtlctest.Tx{Msg: &phtlctest.Msg{RoutePath: path}}
	}
	ctx := context.Background()
	db := store.MemStore()

	_, err := r.Check(ctx, db, txFor("good/path"))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, db, txFor("good/path"))
	require.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, txFor("bad"))
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, bad.DeliverCallCount())

	_, err = r.Check(ctx, db, txFor("missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, db, txFor("missing"))
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(ctx, db, &phtlctest.Tx{Err: errors.ErrMsg})
	assert.True(t, errors.ErrMsg.Is(err))
}
