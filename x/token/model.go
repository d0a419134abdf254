package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

// Mint is the issuer of a single token.
type Mint struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Name   string `protobuf:"bytes,2,opt,name=name,proto3" json:"name"`
	// Authority is the only address allowed to issue new tokens.
	Authority phtlc.Address `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority"`
	// Supply is the total amount issued so far.
	Supply uint64 `protobuf:"varint,4,opt,name=supply,proto3" json:"supply"`
}

func (m *Mint) Reset()         { *m = Mint{} }
func (m *Mint) String() string { return proto.CompactTextString(m) }
func (*Mint) ProtoMessage()    {}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrType, "invalid ticker %q", m.Ticker)
	}
	if !isTokenName(m.Name) {
		return errors.Wrapf(errors.ErrInput, "invalid token name %q", m.Name)
	}
	return errors.Wrap(m.Authority.Validate(), "authority")
}

// Account holds the balance of a single token for a single owner.
type Account struct {
	Owner  phtlc.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Ticker string        `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker"`
	Amount uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	// Custody is set for accounts holding escrowed funds.
	Custody bool `protobuf:"varint,4,opt,name=custody,proto3" json:"custody"`
}

func (a *Account) Reset()         { *a = Account{} }
func (a *Account) String() string { return proto.CompactTextString(a) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !coin.IsCC(a.Ticker) {
		return errors.Wrapf(errors.ErrType, "invalid ticker %q", a.Ticker)
	}
	return nil
}

// Balance returns the account funds as a coin.
func (a *Account) Balance() coin.Coin {
	return coin.NewCoin(a.Amount, a.Ticker)
}

// AccountKey returns the key an account of given owner and ticker is stored
// under.
func AccountKey(owner phtlc.Address, ticker string) []byte {
	key := make([]byte, 0, len(owner)+len(ticker))
	key = append(key, owner...)
	return append(key, ticker...)
}

// NewMintBucket returns the bucket of all mints, keyed by ticker.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens", &Mint{})
}

// NewAccountBucket returns the bucket of all token accounts, keyed by
// AccountKey.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("accounts", &Account{})
}

// RegisterQuery will register the mints as "/tokens" and the accounts as
// "/accounts".
func RegisterQuery(qr phtlc.QueryRouter) {
	NewMintBucket().Register("tokens", qr)
	NewAccountBucket().Register("accounts", qr)
}
