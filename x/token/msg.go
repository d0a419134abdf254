package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
)

const (
	pathCreateMint   = "token/create_mint"
	pathIssue        = "token/issue"
	pathTransfer     = "token/transfer"
	pathCloseAccount = "token/close_account"
)

var (
	_ phtlc.Msg = (*CreateMintMsg)(nil)
	_ phtlc.Msg = (*IssueMsg)(nil)
	_ phtlc.Msg = (*TransferMsg)(nil)
	_ phtlc.Msg = (*CloseAccountMsg)(nil)
)

// CreateMintMsg registers a new token. The authority must sign it.
type CreateMintMsg struct {
	Ticker    string        `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Name      string        `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Authority phtlc.Address `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority,omitempty"`
}

func (m *CreateMintMsg) Reset()         { *m = CreateMintMsg{} }
func (m *CreateMintMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMintMsg) ProtoMessage()    {}

func (CreateMintMsg) Path() string {
	return pathCreateMint
}

func (m *CreateMintMsg) Validate() error {
	mint := Mint{Ticker: m.Ticker, Name: m.Name, Authority: m.Authority}
	return mint.Validate()
}

// IssueMsg creates new tokens. The mint authority must sign it.
type IssueMsg struct {
	Destination phtlc.Address `protobuf:"bytes,1,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin    `protobuf:"bytes,2,opt,name=amount" json:"amount,omitempty"`
}

func (m *IssueMsg) Reset()         { *m = IssueMsg{} }
func (m *IssueMsg) String() string { return proto.CompactTextString(m) }
func (*IssueMsg) ProtoMessage()    {}

func (IssueMsg) Path() string {
	return pathIssue
}

func (m *IssueMsg) Validate() error {
	if err := validAmount(m.Amount); err != nil {
		return err
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// TransferMsg moves tokens between two accounts. The source must sign it.
type TransferMsg struct {
	Source      phtlc.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination phtlc.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin    `protobuf:"bytes,3,opt,name=amount" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	if err := validAmount(m.Amount); err != nil {
		return err
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// CloseAccountMsg removes an empty account. The owner must sign it.
type CloseAccountMsg struct {
	Owner  phtlc.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Ticker string        `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (m *CloseAccountMsg) Reset()         { *m = CloseAccountMsg{} }
func (m *CloseAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CloseAccountMsg) ProtoMessage()    {}

func (CloseAccountMsg) Path() string {
	return pathCloseAccount
}

func (m *CloseAccountMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrType, "invalid ticker %q", m.Ticker)
	}
	return errors.Wrap(m.Owner.Validate(), "owner")
}

func validAmount(c *coin.Coin) error {
	if coin.IsEmpty(c) {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return errors.Wrap(c.Validate(), "amount")
}
