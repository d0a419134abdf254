package token

import (
	"math"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/orm"
	"github.com/iov-one/phtlc/x"
)

// Controller manages mints and token accounts.
type Controller struct {
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

var (
	_ x.AssetMover    = Controller{}
	_ x.CustodyOpener = Controller{}
	_ x.CustodyCloser = Controller{}
)

// NewController returns a controller using the default buckets.
func NewController() Controller {
	return Controller{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

// CreateMint registers a new token. ErrDuplicate is returned if a mint with
// the same ticker exists.
func (c Controller) CreateMint(db phtlc.KVStore, m *Mint) error {
	if m.Supply != 0 {
		return errors.Wrap(errors.ErrState, "new mint must have no supply")
	}
	return c.mints.Create(db, []byte(m.Ticker), m)
}

// GetMint returns the mint of given ticker.
func (c Controller) GetMint(db phtlc.ReadOnlyKVStore, ticker string) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, []byte(ticker), &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", ticker)
	}
	return &m, nil
}

// OpenAccount creates an empty account of given owner. The mint must exist.
// It returns the key the account is stored under.
func (c Controller) OpenAccount(db phtlc.KVStore, owner phtlc.Address, ticker string) ([]byte, error) {
	return c.open(db, owner, ticker, false)
}

// OpenCustody creates an empty account holding escrowed funds.
func (c Controller) OpenCustody(db phtlc.KVStore, owner phtlc.Address, ticker string) ([]byte, error) {
	return c.open(db, owner, ticker, true)
}

func (c Controller) open(db phtlc.KVStore, owner phtlc.Address, ticker string, custody bool) ([]byte, error) {
	if _, err := c.GetMint(db, ticker); err != nil {
		return nil, err
	}
	key := AccountKey(owner, ticker)
	acc := Account{Owner: owner, Ticker: ticker, Custody: custody}
	if err := c.accounts.Create(db, key, &acc); err != nil {
		return nil, errors.Wrap(err, "open account")
	}
	return key, nil
}

// CloseAccount removes an empty account. ErrAccountNotEmpty is returned if
// the account still holds funds.
func (c Controller) CloseAccount(db phtlc.KVStore, owner phtlc.Address, ticker string) error {
	acc, err := c.account(db, owner, ticker)
	if err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(ErrAccountNotEmpty, "holds %d", acc.Amount)
	}
	return c.accounts.Delete(db, AccountKey(owner, ticker))
}

// CloseIfEmpty removes the account if it exists and holds no funds. It
// returns true if the account was removed.
func (c Controller) CloseIfEmpty(db phtlc.KVStore, owner phtlc.Address, ticker string) (bool, error) {
	switch err := c.CloseAccount(db, owner, ticker); {
	case err == nil:
		return true, nil
	case ErrNoAccount.Is(err), ErrAccountNotEmpty.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Balance returns the funds held by the owner. A missing account holds
// nothing.
func (c Controller) Balance(db phtlc.ReadOnlyKVStore, owner phtlc.Address, ticker string) (coin.Coin, error) {
	acc, err := c.account(db, owner, ticker)
	switch {
	case err == nil:
		return acc.Balance(), nil
	case ErrNoAccount.Is(err):
		return coin.NewCoin(0, ticker), nil
	default:
		return coin.Coin{}, err
	}
}

func (c Controller) account(db phtlc.ReadOnlyKVStore, owner phtlc.Address, ticker string) (*Account, error) {
	var acc Account
	switch err := c.accounts.One(db, AccountKey(owner, ticker), &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNoAccount, "%s %s", owner, ticker)
	default:
		return nil, err
	}
}

// accountOrOpen returns the account, opening it if needed. The mint must
// exist.
func (c Controller) accountOrOpen(db phtlc.KVStore, owner phtlc.Address, ticker string) (*Account, error) {
	acc, err := c.account(db, owner, ticker)
	if !ErrNoAccount.Is(err) {
		return acc, err
	}
	if _, err := c.OpenAccount(db, owner, ticker); err != nil {
		return nil, err
	}
	return c.account(db, owner, ticker)
}

// Supports returns true if a mint of given ticker exists.
func (c Controller) Supports(db phtlc.ReadOnlyKVStore, ticker string) bool {
	return c.mints.Has(db, []byte(ticker)) == nil
}

// Kind returns x.TokenAsset.
func (Controller) Kind() x.AssetKind {
	return x.TokenAsset
}

// Transfer moves tokens from the src account to the dst account. The src
// account must be open, the dst account is opened if it does not exist.
func (c Controller) Transfer(db phtlc.KVStore, src, dst phtlc.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if !c.Supports(db, amount.Ticker) {
		return errors.Wrapf(errors.ErrType, "no mint for %s", amount.Ticker)
	}

	from, err := c.account(db, src, amount.Ticker)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if from.Amount < amount.Amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has less than %s", src, amount)
	}
	if src.Equals(dst) {
		return nil
	}
	to, err := c.accountOrOpen(db, dst, amount.Ticker)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if to.Amount > math.MaxUint64-amount.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination")
	}

	from.Amount -= amount.Amount
	to.Amount += amount.Amount
	if err := c.accounts.Put(db, AccountKey(src, amount.Ticker), from); err != nil {
		return err
	}
	return c.accounts.Put(db, AccountKey(dst, amount.Ticker), to)
}

// Issue creates new tokens in the dst account, increasing the supply of the
// mint.
func (c Controller) Issue(db phtlc.KVStore, dst phtlc.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	mint, err := c.GetMint(db, amount.Ticker)
	if err != nil {
		return err
	}
	if mint.Supply > math.MaxUint64-amount.Amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	to, err := c.accountOrOpen(db, dst, amount.Ticker)
	if err != nil {
		return err
	}
	mint.Supply += amount.Amount
	to.Amount += amount.Amount
	if err := c.mints.Put(db, []byte(mint.Ticker), mint); err != nil {
		return err
	}
	return c.accounts.Put(db, AccountKey(dst, amount.Ticker), to)
}
