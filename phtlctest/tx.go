package phtlctest

import "github.com/iov-one/phtlc"

// Tx represents a transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg phtlc.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ phtlc.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (phtlc.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message. It is never serialized.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by any method call.
	Err error
}

var _ phtlc.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return m.RoutePath }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
