package store

import "github.com/iov-one/phtlc"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = phtlc.ReadOnlyKVStore
	SetDeleter       = phtlc.SetDeleter
	KVStore          = phtlc.KVStore
	Batch            = phtlc.Batch
	CacheableKVStore = phtlc.CacheableKVStore
	KVCacheWrap      = phtlc.KVCacheWrap
	CommitKVStore    = phtlc.CommitKVStore
	CommitID         = phtlc.CommitID
	Model            = phtlc.Model
)

// Pair constructs a model from a key-value pair
var Pair = phtlc.Pair
