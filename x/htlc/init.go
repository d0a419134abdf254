package htlc

import (
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
)

// Initializer stores the configuration declared in genesis. Without one
// the defaults are used and the configuration cannot be updated.
type Initializer struct{}

var _ phtlc.Initializer = Initializer{}

func (Initializer) FromGenesis(opts phtlc.Options, kv phtlc.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(kv, opts, "htlc", &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}
	return nil
}
