package app

import (
	"fmt"
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/x/sigs"
)

// Tx is the transaction envelope: a single message and the signatures
// authorizing it. The message is carried serialized next to its path, use
// TxCodec to resolve it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`
	MsgPath    string               `protobuf:"bytes,2,opt,name=msg_path,proto3" json:"msg_path,omitempty"`
	MsgData    []byte               `protobuf:"bytes,3,opt,name=msg_data,proto3" json:"msg_data,omitempty"`
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg phtlc.Msg) (*Tx, error) {
	raw, err := codec.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "msg")
	}
	return &Tx{MsgPath: msg.Path(), MsgData: raw}, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the canonical byte representation of the
// transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return codec.Marshal(&Tx{MsgPath: tx.MsgPath, MsgData: tx.MsgData})
}

// decodedTx is a transaction with its message resolved.
type decodedTx struct {
	*Tx
	msg phtlc.Msg
}

var _ phtlc.Tx = (*decodedTx)(nil)
var _ sigs.SignedTx = (*decodedTx)(nil)

func (tx *decodedTx) GetMsg() (phtlc.Msg, error) {
	return tx.msg, nil
}

// TxCodec decodes transactions carrying any of the registered messages.
type TxCodec struct {
	msgs map[string]reflect.Type
}

// NewTxCodec returns a codec for given message types. Each message must be
// a pointer and must have a unique path.
func NewTxCodec(msgs ...phtlc.Msg) *TxCodec {
	c := &TxCodec{msgs: make(map[string]reflect.Type, len(msgs))}
	for _, m := range msgs {
		t := reflect.TypeOf(m)
		if t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message %T must be a pointer", m))
		}
		if _, ok := c.msgs[m.Path()]; ok {
			panic(fmt.Sprintf("message path %q already registered", m.Path()))
		}
		c.msgs[m.Path()] = t.Elem()
	}
	return c
}

// Decode parses raw bytes into a transaction with its message resolved. It
// can be used as the phtlc.TxDecoder of an application.
func (c *TxCodec) Decode(raw []byte) (phtlc.Tx, error) {
	var tx Tx
	if err := codec.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrap(err, "tx")
	}
	t, ok := c.msgs[tx.MsgPath]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", tx.MsgPath)
	}
	msg := reflect.New(t).Interface().(phtlc.Msg)
	if err := codec.Unmarshal(tx.MsgData, msg); err != nil {
		return nil, errors.Wrapf(err, "message %q", tx.MsgPath)
	}
	return &decodedTx{Tx: &tx, msg: msg}, nil
}
