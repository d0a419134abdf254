package phtlc_test

import (
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/stretchr/testify/assert"
)

type staticQuery []phtlc.Model

func (q staticQuery) Query(phtlc.ReadOnlyKVStore, string, []byte) ([]phtlc.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	r := phtlc.NewQueryRouter()
	wallets := staticQuery{phtlc.Pair([]byte("a"), []byte("1"))}
	r.RegisterAll(
		func(r phtlc.QueryRouter) { r.Register("/wallets", wallets) },
		func(r phtlc.QueryRouter) { r.Register("/htlc", staticQuery{}) },
	)

	assert.Equal(t, wallets, r.Handler("/wallets"))
	assert.NotNil(t, r.Handler("/htlc"))
	assert.Nil(t, r.Handler("/tokens"))
	assert.Panics(t, func() { r.Register("/htlc", staticQuery{}) })
}
