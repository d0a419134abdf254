package token

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"token": {
			"mints": [
				{"ticker": "USDC", "name": "US Dollar Coin", "authority": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}
			],
			"balances": [
				{"address": "C30A2424104F542576EF01FECA2FF558F5EAA61A", "coins": ["40 USDC"]}
			]
		}
	}`
	var opts phtlc.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	control := NewController()
	mint, err := control.GetMint(db, "USDC")
	require.NoError(t, err)
	assert.EqualValues(t, 40, mint.Supply)

	addr, err := phtlc.ParseAddress("C30A2424104F542576EF01FECA2FF558F5EAA61A")
	require.NoError(t, err)
	got, err := control.Balance(db, addr, "USDC")
	require.NoError(t, err)
	assert.EqualValues(t, 40, got.Amount)
}

func TestGenesisUnknownMint(t *testing.T) {
	const genesis = `{"token": {"balances": [
		{"address": "C30A2424104F542576EF01FECA2FF558F5EAA61A", "coins": ["40 DAI"]}
	]}}`
	var opts phtlc.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))
	assert.Error(t, Initializer{}.FromGenesis(opts, store.MemStore()))
}
