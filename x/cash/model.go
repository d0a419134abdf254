package cash

import (
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the set of coins owned by a single address. Coins are kept
// sorted by ticker, with no duplicates and no zero values.
type Wallet struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins" json:"coins"`
}

func (w *Wallet) Reset()         { *w = Wallet{} }
func (w *Wallet) String() string { return proto.CompactTextString(w) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

// Validate requires that all coins are valid, positive and sorted.
func (w *Wallet) Validate() error {
	for i, c := range w.Coins {
		if c == nil || c.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "coin %d is empty", i)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if i > 0 && w.Coins[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrState, "coins not sorted")
		}
	}
	return nil
}

// Balance returns the amount of given ticker held in the wallet. A zero
// coin is returned if there is none.
func (w *Wallet) Balance(ticker string) coin.Coin {
	for _, c := range w.Coins {
		if c.Ticker == ticker {
			return *c
		}
	}
	return coin.NewCoin(0, ticker)
}

// Add modifies the wallet to add given coin.
func (w *Wallet) Add(c coin.Coin) error {
	if c.IsZero() {
		return nil
	}
	for i, have := range w.Coins {
		if have.Ticker != c.Ticker {
			continue
		}
		sum, err := have.Add(c)
		if err != nil {
			return err
		}
		w.Coins[i] = &sum
		return nil
	}
	w.Coins = append(w.Coins, &c)
	sort.Slice(w.Coins, func(i, j int) bool {
		return w.Coins[i].Ticker < w.Coins[j].Ticker
	})
	return nil
}

// Subtract modifies the wallet to remove given coin. ErrInsufficientAmount
// is returned if the wallet does not hold enough.
func (w *Wallet) Subtract(c coin.Coin) error {
	if c.IsZero() {
		return nil
	}
	for i, have := range w.Coins {
		if have.Ticker != c.Ticker {
			continue
		}
		left, err := have.Subtract(c)
		if err != nil {
			return err
		}
		if left.IsZero() {
			w.Coins = append(w.Coins[:i], w.Coins[i+1:]...)
		} else {
			w.Coins[i] = &left
		}
		return nil
	}
	return errors.Wrapf(errors.ErrInsufficientAmount, "no %s in wallet", c.Ticker)
}

// Bucket stores wallets by the owner address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// GetOrCreate returns the wallet of given address or an empty one if none
// was stored yet.
func (b Bucket) GetOrCreate(db phtlc.ReadOnlyKVStore, addr phtlc.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr phtlc.QueryRouter) {
	NewBucket().Register("wallets", qr)
}
