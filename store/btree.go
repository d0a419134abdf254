package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of every cache tree.
const btreeDegree = 2

// BTreeCacheable gives any KVStore a btree based CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache that is flushed into the wrapped store on
// Write.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store that lives only in memory. Use it in tests.
func MemStore() CacheableKVStore {
	empty := EmptyKVStore{}
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree in front of a read only
// parent. Every write is also recorded in a batch that is applied to the
// parent on Write.
type BTreeCacheWrap struct {
	tree    *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	pending Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent. All writes must go through
// pending, parent is never modified directly.
//
// Nested caches share the free list of their parent. Pass nil to allocate
// a new one.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, pending Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:    btree.NewWithFreeList(btreeDegree, free),
		free:    free,
		parent:  parent,
		pending: pending,
	}
}

// CacheWrap stacks another cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing into this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all pending changes into the parent store and empties
// the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.pending.Write()
	b.Discard()
	return err
}

// Discard drops all pending changes. Tree nodes go back to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.pending.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.pending.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

// lookup returns the cached entry of key. The second value is false when
// the key was never written to this cache.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// entry is a cached write. Deletes are kept as tombstones so that they
// hide the value of the parent store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
