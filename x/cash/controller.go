package cash

import (
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/x"
)

// Controller moves native coins between wallets.
type Controller struct {
	bucket Bucket
}

var _ x.AssetMover = Controller{}

// NewController returns a controller using the default bucket.
func NewController() Controller {
	return Controller{bucket: NewBucket()}
}

// Balance returns the amount of given ticker held by the address.
func (c Controller) Balance(db phtlc.ReadOnlyKVStore, addr phtlc.Address, ticker string) (coin.Coin, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	return w.Balance(ticker), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c Controller) MoveCoins(db phtlc.KVStore, src, dest phtlc.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if !sender.Balance(amount.Ticker).IsGTE(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has less than %s", src, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c Controller) IssueCoins(db phtlc.KVStore, dest phtlc.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

// save removes wallets that hold nothing.
func (c Controller) save(db phtlc.KVStore, addr phtlc.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.bucket.Put(db, addr, w)
}

// Supports returns true only for the configured native ticker.
func (c Controller) Supports(db phtlc.ReadOnlyKVStore, ticker string) bool {
	conf, err := loadConf(db)
	if err != nil {
		return false
	}
	return conf.NativeTicker == ticker
}

// Kind returns x.NativeAsset.
func (Controller) Kind() x.AssetKind {
	return x.NativeAsset
}

// Transfer moves native coins. Any other ticker is rejected.
func (c Controller) Transfer(db phtlc.KVStore, src, dst phtlc.Address, amount coin.Coin) error {
	if !c.Supports(db, amount.Ticker) {
		return errors.Wrapf(errors.ErrType, "%s is not the native coin", amount.Ticker)
	}
	return c.MoveCoins(db, src, dst, amount)
}
