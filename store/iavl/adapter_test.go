package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/phtlc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeBase returns the working cache of a fresh in-memory tree.
func makeBase() (store.CacheableKVStore, func()) {
	commit := MockCommitStore()
	return commit.CacheWrap(), commit.Close
}

func TestIavlCacheGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestIavlCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestCommitVisibility(t *testing.T) {
	commit := MockCommitStore()
	defer commit.Close()

	k, v := []byte("escrow"), []byte("active")

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))

	// not committed, not visible
	got, err := commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestPersistenceOnDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-commit")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	k, v := []byte("key"), []byte("value")

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	require.NoError(t, cache.Write())
	first, err := commit.Commit()
	require.NoError(t, err)
	commit.Close()

	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, first, latest)

	got, err := reopened.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
