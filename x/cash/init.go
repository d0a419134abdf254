package cash

import (
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use phtlc.Address, so address in hex, not base64
type GenesisAccount struct {
	Address phtlc.Address `json:"address"`
	Coins   []coin.Coin   `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ phtlc.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts phtlc.Options, kv phtlc.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, "cash", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	control := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range acct.Coins {
			if err := control.IssueCoins(kv, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
