package app

import (
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
)

// CommitStore keeps two caches over the committed state. CheckTx runs on
// one, DeliverTx on the other, and only the deliver cache reaches the disk
// on Commit.
type CommitStore struct {
	committed phtlc.CommitKVStore
	deliver   phtlc.KVCacheWrap
	check     phtlc.KVCacheWrap
}

// NewCommitStore opens the latest version of given store. It panics if the
// store cannot be loaded, there is no way for a node to start without it.
func NewCommitStore(store phtlc.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and app hash of the last commit.
func (cs *CommitStore) CommitInfo() (phtlc.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the previous commit. Pending
// check state is dropped.
func (cs *CommitStore) Commit() (phtlc.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return phtlc.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() phtlc.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() phtlc.CacheableKVStore {
	return cs.deliver
}

// chainIDKey is reserved for the application, no bucket uses the _phtlc
// name.
var chainIDKey = []byte("_phtlc:chain_id")

// mustLoadChainID returns the chain id written at genesis or an empty
// string before genesis.
func mustLoadChainID(db phtlc.ReadOnlyKVStore) string {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID writes the chain id once. It is never changed afterwards.
func saveChainID(db phtlc.KVStore, chainID string) error {
	if !phtlc.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
