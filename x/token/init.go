package token

import (
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
)

const optKey = "token"

// Genesis is the token state loaded from the genesis file.
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Balances []GenesisBalance `json:"balances"`
}

// GenesisMint declares a token.
type GenesisMint struct {
	Ticker    string        `json:"ticker"`
	Name      string        `json:"name"`
	Authority phtlc.Address `json:"authority"`
}

// GenesisBalance issues tokens to an address. Supply of the mint is
// increased accordingly.
type GenesisBalance struct {
	Address phtlc.Address `json:"address"`
	Coins   []coin.Coin   `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ phtlc.Initializer = Initializer{}

// FromGenesis registers all mints and issues the initial balances.
func (Initializer) FromGenesis(opts phtlc.Options, kv phtlc.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	control := NewController()
	for _, m := range gen.Mints {
		mint := Mint{Ticker: m.Ticker, Name: m.Name, Authority: m.Authority}
		if err := control.CreateMint(kv, &mint); err != nil {
			return errors.Wrapf(err, "mint %s", m.Ticker)
		}
	}
	for i, b := range gen.Balances {
		if err := b.Address.Validate(); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
		for _, c := range b.Coins {
			if err := control.Issue(kv, b.Address, c); err != nil {
				return errors.Wrapf(err, "balance %d", i)
			}
		}
	}
	return nil
}
