package htlc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/orm"
)

const (
	// IDLength is the length of every escrow id.
	IDLength = 32
	// HashLength is the length of a hashlock and of a secret.
	HashLength = 32
)

// Status of an escrow. Values match the codes used by the other ledgers
// taking part in a swap.
type Status int32

const (
	StatusActive   Status = 1
	StatusRefunded Status = 2
	StatusRedeemed Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusRefunded:
		return "refunded"
	case StatusRedeemed:
		return "redeemed"
	default:
		return "invalid"
	}
}

// Validate returns an error if the status is not one of the known values.
func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusRefunded, StatusRedeemed:
		return nil
	}
	return errors.Wrapf(errors.ErrState, "invalid status %d", s)
}

// Escrow is the state of a single swap.
type Escrow struct {
	ID       []byte        `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Sender   phtlc.Address `protobuf:"bytes,2,opt,name=sender,proto3" json:"sender"`
	Receiver phtlc.Address `protobuf:"bytes,3,opt,name=receiver,proto3" json:"receiver"`
	// Hashlock is empty until the escrow is locked.
	Hashlock []byte `protobuf:"bytes,4,opt,name=hashlock,proto3" json:"hashlock"`
	// Secret is empty until the escrow is redeemed.
	Secret         []byte         `protobuf:"bytes,5,opt,name=secret,proto3" json:"secret"`
	Amount         *coin.Coin     `protobuf:"bytes,6,opt,name=amount" json:"amount"`
	Timelock       phtlc.UnixTime `protobuf:"varint,7,opt,name=timelock,proto3" json:"timelock"`
	Reward         *coin.Coin     `protobuf:"bytes,8,opt,name=reward" json:"reward"`
	RewardTimelock phtlc.UnixTime `protobuf:"varint,9,opt,name=reward_timelock,proto3" json:"reward_timelock"`
	Status         Status         `protobuf:"varint,10,opt,name=status,proto3" json:"status"`
	DstChain       string         `protobuf:"bytes,11,opt,name=dst_chain,proto3" json:"dst_chain"`
	DstAsset       string         `protobuf:"bytes,12,opt,name=dst_asset,proto3" json:"dst_asset"`
	DstAddress     string         `protobuf:"bytes,13,opt,name=dst_address,proto3" json:"dst_address"`
	SrcAsset       string         `protobuf:"bytes,14,opt,name=src_asset,proto3" json:"src_asset"`
	// Address is the custody address holding the escrowed funds.
	Address phtlc.Address `protobuf:"bytes,15,opt,name=address,proto3" json:"address"`
	// TokenContract is the mint of a token escrow. Empty for the native
	// coin.
	TokenContract string `protobuf:"bytes,16,opt,name=token_contract,proto3" json:"token_contract"`
	// TokenWallet is the key of the custody account of a token escrow.
	TokenWallet []byte `protobuf:"bytes,17,opt,name=token_wallet,proto3" json:"token_wallet"`
}

func (e *Escrow) Reset()         { *e = Escrow{} }
func (e *Escrow) String() string { return proto.CompactTextString(e) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

// Validate checks the invariants every stored escrow must hold.
func (e *Escrow) Validate() error {
	if len(e.ID) != IDLength {
		return errors.Wrap(errors.ErrModel, "invalid id")
	}
	if err := e.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := e.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if len(e.Hashlock) != 0 && len(e.Hashlock) != HashLength {
		return errors.Wrap(errors.ErrModel, "invalid hashlock")
	}
	if len(e.Secret) != 0 && len(e.Secret) != HashLength {
		return errors.Wrap(errors.ErrModel, "invalid secret")
	}
	if coin.IsEmpty(e.Amount) {
		return errors.Wrap(ErrFundsNotSent, "amount")
	}
	if err := e.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := e.Timelock.Validate(); err != nil {
		return errors.Wrap(err, "timelock")
	}
	if e.HasReward() {
		if !e.Reward.SameType(*e.Amount) {
			return errors.Wrap(ErrWrongAsset, "reward")
		}
		if e.RewardTimelock >= e.Timelock {
			return errors.Wrap(ErrInvalidRewardTimeLock, "not before timelock")
		}
	}
	if err := e.Status.Validate(); err != nil {
		return err
	}
	if e.Status == StatusRedeemed && len(e.Secret) == 0 {
		return errors.Wrap(errors.ErrModel, "redeemed without secret")
	}
	return errors.Wrap(e.Address.Validate(), "address")
}

// IsLocked returns true if the hashlock is set.
func (e *Escrow) IsLocked() bool {
	return len(e.Hashlock) != 0
}

// HasReward returns true if a reward was attached.
func (e *Escrow) HasReward() bool {
	return !coin.IsEmpty(e.Reward)
}

// Total returns the amount together with the reward, the value held in
// custody while the escrow is active.
func (e *Escrow) Total() (coin.Coin, error) {
	if !e.HasReward() {
		return *e.Amount, nil
	}
	return e.Amount.Add(*e.Reward)
}

// CustodyAddress returns the address holding the funds of the escrow with
// given id. Nobody can sign for it, only this extension moves its funds.
func CustodyAddress(id []byte) phtlc.Address {
	return phtlc.NewCondition("htlc", "escrow", id).Address()
}

// Bucket stores escrows by id. Escrows are never deleted.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns the escrow bucket.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket("htlc", &Escrow{}),
	}
}

// GetEscrow loads the escrow of given id. ErrNotFound is returned if there
// is none.
func (b Bucket) GetEscrow(db phtlc.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := b.One(db, id, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", id)
	}
	return &e, nil
}

// Details returns the escrow of given id without any authorization.
func Details(db phtlc.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	return NewBucket().GetEscrow(db, id)
}

// RegisterQuery will register this bucket as "/htlc"
func RegisterQuery(qr phtlc.QueryRouter) {
	NewBucket().Register("htlc", qr)
}
