package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves native coins from the source wallet to the destination.
type SendMsg struct {
	Source      phtlc.Address `protobuf:"bytes,2,opt,name=src,proto3" json:"src,omitempty"`
	Destination phtlc.Address `protobuf:"bytes,3,opt,name=dest,proto3" json:"dest,omitempty"`
	Amount      *coin.Coin    `protobuf:"bytes,4,opt,name=amount" json:"amount,omitempty"`
	Memo        string        `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// Ensure we implement the Msg interface
var _ phtlc.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if coin.IsEmpty(m.Amount) {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	return nil
}

// UpdateConfigurationMsg carries a configuration patch. Only the non-zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,2,opt,name=patch" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

var _ phtlc.Msg = (*UpdateConfigurationMsg)(nil)

func (*UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}

// Validate will skip any zero fields and validate the set ones
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if m.Patch.NativeTicker != "" && !coin.IsCC(m.Patch.NativeTicker) {
		return errors.Wrap(errors.ErrType, "native ticker")
	}
	return nil
}
