package htlc

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/crypto"
	"github.com/iov-one/phtlc/errors"
)

const (
	pathCommit              = "htlc/commit"
	pathLock                = "htlc/lock"
	pathAddLock             = "htlc/add_lock"
	pathAddLockSig          = "htlc/add_lock_sig"
	pathLockReward          = "htlc/lock_reward"
	pathRedeem              = "htlc/redeem"
	pathRefund              = "htlc/refund"
	pathUpdateConfiguration = "htlc/update_configuration"

	maxMetadataSize = 256
	maxHops         = 16
)

var (
	_ phtlc.Msg = (*CommitMsg)(nil)
	_ phtlc.Msg = (*LockMsg)(nil)
	_ phtlc.Msg = (*AddLockMsg)(nil)
	_ phtlc.Msg = (*AddLockSigMsg)(nil)
	_ phtlc.Msg = (*LockRewardMsg)(nil)
	_ phtlc.Msg = (*RedeemMsg)(nil)
	_ phtlc.Msg = (*RefundMsg)(nil)
	_ phtlc.Msg = (*UpdateConfigurationMsg)(nil)
)

// CommitMsg creates an escrow without a hashlock.
type CommitMsg struct {
	ID []byte `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	// Sender is optional, the main signer is used when not set.
	Sender   phtlc.Address  `protobuf:"bytes,2,opt,name=sender,proto3" json:"sender,omitempty"`
	Receiver phtlc.Address  `protobuf:"bytes,3,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Amount   *coin.Coin     `protobuf:"bytes,4,opt,name=amount" json:"amount,omitempty"`
	Timelock phtlc.UnixTime `protobuf:"varint,5,opt,name=timelock,proto3" json:"timelock,omitempty"`
	// Routing metadata is stored as given and never interpreted.
	DstChain   string `protobuf:"bytes,6,opt,name=dst_chain,proto3" json:"dst_chain,omitempty"`
	DstAsset   string `protobuf:"bytes,7,opt,name=dst_asset,proto3" json:"dst_asset,omitempty"`
	DstAddress string `protobuf:"bytes,8,opt,name=dst_address,proto3" json:"dst_address,omitempty"`
	SrcAsset   string `protobuf:"bytes,9,opt,name=src_asset,proto3" json:"src_asset,omitempty"`
	// Hop vectors describe the path of a multi hop swap. They are checked
	// for consistency and are not stored.
	HopChains    []string `protobuf:"bytes,10,rep,name=hop_chains" json:"hop_chains,omitempty"`
	HopAssets    []string `protobuf:"bytes,11,rep,name=hop_assets" json:"hop_assets,omitempty"`
	HopAddresses []string `protobuf:"bytes,12,rep,name=hop_addresses" json:"hop_addresses,omitempty"`
}

func (m *CommitMsg) Reset()         { *m = CommitMsg{} }
func (m *CommitMsg) String() string { return proto.CompactTextString(m) }
func (*CommitMsg) ProtoMessage()    {}

func (CommitMsg) Path() string {
	return pathCommit
}

func (m *CommitMsg) Validate() error {
	if err := validateCreate(m.ID, m.Sender, m.Receiver, m.Amount, m.Timelock); err != nil {
		return err
	}
	if err := validateMetadata(m.DstChain, m.DstAsset, m.DstAddress, m.SrcAsset); err != nil {
		return err
	}
	if len(m.HopChains) != len(m.HopAssets) || len(m.HopChains) != len(m.HopAddresses) {
		return errors.Wrap(errors.ErrInput, "hop vectors must be of equal length")
	}
	if len(m.HopChains) > maxHops {
		return errors.Wrap(errors.ErrInput, "too many hops")
	}
	return nil
}

// LockMsg creates an escrow with the hashlock set.
type LockMsg struct {
	ID []byte `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	// Sender is optional, the main signer is used when not set.
	Sender     phtlc.Address  `protobuf:"bytes,2,opt,name=sender,proto3" json:"sender,omitempty"`
	Receiver   phtlc.Address  `protobuf:"bytes,3,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Amount     *coin.Coin     `protobuf:"bytes,4,opt,name=amount" json:"amount,omitempty"`
	Timelock   phtlc.UnixTime `protobuf:"varint,5,opt,name=timelock,proto3" json:"timelock,omitempty"`
	DstChain   string         `protobuf:"bytes,6,opt,name=dst_chain,proto3" json:"dst_chain,omitempty"`
	DstAsset   string         `protobuf:"bytes,7,opt,name=dst_asset,proto3" json:"dst_asset,omitempty"`
	DstAddress string         `protobuf:"bytes,8,opt,name=dst_address,proto3" json:"dst_address,omitempty"`
	SrcAsset   string         `protobuf:"bytes,9,opt,name=src_asset,proto3" json:"src_asset,omitempty"`
	Hashlock   []byte         `protobuf:"bytes,10,opt,name=hashlock,proto3" json:"hashlock,omitempty"`
}

func (m *LockMsg) Reset()         { *m = LockMsg{} }
func (m *LockMsg) String() string { return proto.CompactTextString(m) }
func (*LockMsg) ProtoMessage()    {}

func (LockMsg) Path() string {
	return pathLock
}

func (m *LockMsg) Validate() error {
	if err := validateCreate(m.ID, m.Sender, m.Receiver, m.Amount, m.Timelock); err != nil {
		return err
	}
	if err := validateMetadata(m.DstChain, m.DstAsset, m.DstAddress, m.SrcAsset); err != nil {
		return err
	}
	return validateHashlock(m.Hashlock)
}

// AddLockMsg attaches the hashlock to a committed escrow. It must be signed
// by the sender.
type AddLockMsg struct {
	ID       []byte         `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Hashlock []byte         `protobuf:"bytes,2,opt,name=hashlock,proto3" json:"hashlock,omitempty"`
	Timelock phtlc.UnixTime `protobuf:"varint,3,opt,name=timelock,proto3" json:"timelock,omitempty"`
}

func (m *AddLockMsg) Reset()         { *m = AddLockMsg{} }
func (m *AddLockMsg) String() string { return proto.CompactTextString(m) }
func (*AddLockMsg) ProtoMessage()    {}

func (AddLockMsg) Path() string {
	return pathAddLock
}

func (m *AddLockMsg) Validate() error {
	return validateAddLock(m.ID, m.Hashlock, m.Timelock)
}

// AddLockSigMsg attaches the hashlock to a committed escrow on behalf of
// the sender. Anyone can submit it, the signature of the sender over
// AddLockSignBytes authorizes it.
type AddLockSigMsg struct {
	ID        []byte            `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Hashlock  []byte            `protobuf:"bytes,2,opt,name=hashlock,proto3" json:"hashlock,omitempty"`
	Timelock  phtlc.UnixTime    `protobuf:"varint,3,opt,name=timelock,proto3" json:"timelock,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,4,opt,name=pubkey" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,5,opt,name=signature" json:"signature,omitempty"`
}

func (m *AddLockSigMsg) Reset()         { *m = AddLockSigMsg{} }
func (m *AddLockSigMsg) String() string { return proto.CompactTextString(m) }
func (*AddLockSigMsg) ProtoMessage()    {}

func (AddLockSigMsg) Path() string {
	return pathAddLockSig
}

func (m *AddLockSigMsg) Validate() error {
	if err := validateAddLock(m.ID, m.Hashlock, m.Timelock); err != nil {
		return err
	}
	if m.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if err := m.Pubkey.Validate(); err != nil {
		return errors.Wrap(err, "public key")
	}
	if m.Signature == nil || len(m.Signature.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "signature")
	}
	return nil
}

// LockRewardMsg attaches a reward to an escrow. It must be signed by the
// sender.
type LockRewardMsg struct {
	ID             []byte         `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Reward         *coin.Coin     `protobuf:"bytes,2,opt,name=reward" json:"reward,omitempty"`
	RewardTimelock phtlc.UnixTime `protobuf:"varint,3,opt,name=reward_timelock,proto3" json:"reward_timelock,omitempty"`
}

func (m *LockRewardMsg) Reset()         { *m = LockRewardMsg{} }
func (m *LockRewardMsg) String() string { return proto.CompactTextString(m) }
func (*LockRewardMsg) ProtoMessage()    {}

func (LockRewardMsg) Path() string {
	return pathLockReward
}

func (m *LockRewardMsg) Validate() error {
	if err := validateID(m.ID); err != nil {
		return err
	}
	if coin.IsEmpty(m.Reward) {
		return errors.Wrap(ErrFundsNotSent, "reward")
	}
	if err := m.Reward.Validate(); err != nil {
		return errors.Wrap(err, "reward")
	}
	if m.RewardTimelock <= 0 {
		return errors.Wrap(ErrInvalidRewardTimeLock, "missing")
	}
	return nil
}

// RedeemMsg releases the escrow to the receiver by revealing the secret.
// Anyone can submit it.
type RedeemMsg struct {
	ID     []byte `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Secret []byte `protobuf:"bytes,2,opt,name=secret,proto3" json:"secret,omitempty"`
}

func (m *RedeemMsg) Reset()         { *m = RedeemMsg{} }
func (m *RedeemMsg) String() string { return proto.CompactTextString(m) }
func (*RedeemMsg) ProtoMessage()    {}

func (RedeemMsg) Path() string {
	return pathRedeem
}

// Validate checks the secret size only. Any preimage, including all zero
// bytes, is a valid secret.
func (m *RedeemMsg) Validate() error {
	if err := validateID(m.ID); err != nil {
		return err
	}
	if len(m.Secret) != HashLength {
		return errors.Wrapf(errors.ErrInput, "secret must be %d bytes", HashLength)
	}
	return nil
}

// RefundMsg returns the escrowed funds to the sender once the timelock
// passed. It must be signed by the sender.
type RefundMsg struct {
	ID []byte `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

func (RefundMsg) Path() string {
	return pathRefund
}

func (m *RefundMsg) Validate() error {
	return validateID(m.ID)
}

// UpdateConfigurationMsg carries a configuration patch. Only the non-zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,2,opt,name=patch" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (*UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}

func validateID(id []byte) error {
	if len(id) != IDLength {
		return errors.Wrapf(errors.ErrInput, "id must be %d bytes", IDLength)
	}
	return nil
}

// validateHashlock requires a 32 byte value that is not all zero. A zero
// hashlock is how the other ledgers of a swap express "not set".
func validateHashlock(h []byte) error {
	if len(h) != HashLength {
		return errors.Wrapf(errors.ErrInput, "hashlock must be %d bytes", HashLength)
	}
	if bytes.Equal(h, make([]byte, HashLength)) {
		return errors.Wrap(errors.ErrInput, "hashlock must not be zero")
	}
	return nil
}

func validateMetadata(values ...string) error {
	for _, s := range values {
		if len(s) > maxMetadataSize {
			return errors.Wrap(errors.ErrInput, "metadata too long")
		}
	}
	return nil
}

func validateCreate(id []byte, sender, receiver phtlc.Address, amount *coin.Coin, timelock phtlc.UnixTime) error {
	if err := validateID(id); err != nil {
		return err
	}
	if len(sender) != 0 {
		if err := sender.Validate(); err != nil {
			return errors.Wrap(err, "sender")
		}
	}
	if err := receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if coin.IsEmpty(amount) {
		return errors.Wrap(ErrFundsNotSent, "amount")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if timelock <= 0 {
		return errors.Wrap(ErrInvalidTimeLock, "missing")
	}
	return nil
}

func validateAddLock(id, hashlock []byte, timelock phtlc.UnixTime) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateHashlock(hashlock); err != nil {
		return err
	}
	if timelock <= 0 {
		return errors.Wrap(ErrInvalidTimeLock, "missing")
	}
	return nil
}
