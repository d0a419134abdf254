package x

import (
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
)

// AssetKind tells apart the ledgers an asset can be held in.
type AssetKind int

const (
	// NativeAsset is the single coin of the chain, held in wallets.
	NativeAsset AssetKind = iota + 1
	// TokenAsset is any coin issued by a registered mint, held in token
	// accounts.
	TokenAsset
)

func (k AssetKind) String() string {
	switch k {
	case NativeAsset:
		return "native"
	case TokenAsset:
		return "token"
	default:
		return "unknown"
	}
}

// AssetMover is implemented by every ledger that can move value between
// two addresses.
type AssetMover interface {
	// Supports returns true if coins of given ticker are held by this
	// ledger.
	Supports(db phtlc.ReadOnlyKVStore, ticker string) bool
	Kind() AssetKind
	// Transfer moves amount from src to dst. ErrInsufficientAmount is
	// returned if src does not hold enough funds and no state is changed.
	Transfer(db phtlc.KVStore, src, dst phtlc.Address, amount coin.Coin) error
}

// CustodyOpener is implemented by ledgers that require a holding slot to
// exist before it can receive funds.
type CustodyOpener interface {
	OpenCustody(db phtlc.KVStore, owner phtlc.Address, ticker string) ([]byte, error)
}

// CustodyCloser is implemented by ledgers that can release an empty holding
// slot. It returns true if the slot was closed.
type CustodyCloser interface {
	CloseIfEmpty(db phtlc.KVStore, owner phtlc.Address, ticker string) (bool, error)
}

// AssetRouter picks the mover that holds coins of a given ticker.
type AssetRouter []AssetMover

// Mover returns the first mover supporting given ticker or nil.
func (r AssetRouter) Mover(db phtlc.ReadOnlyKVStore, ticker string) AssetMover {
	for _, m := range r {
		if m.Supports(db, ticker) {
			return m
		}
	}
	return nil
}

// ByKind returns the first mover of given kind or nil.
func (r AssetRouter) ByKind(kind AssetKind) AssetMover {
	for _, m := range r {
		if m.Kind() == kind {
			return m
		}
	}
	return nil
}
