package phtlctest

import (
	"context"

	"github.com/iov-one/phtlc"
)

// Handler is a mock implementation of the phtlc.Handler interface.
//
// If WriteKey is set, the value is written to the store before returning,
// regardless of the returned error. This allows to test rollbacks.
type Handler struct {
	checkCall   int
	CheckResult phtlc.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult phtlc.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte

	// Panic if set is used as the panic value of every call.
	Panic interface{}
}

var _ phtlc.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	h.checkCall++
	if err := h.call(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	h.deliverCall++
	if err := h.call(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) call(db phtlc.KVStore) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.WriteKey != nil {
		return db.Set(h.WriteKey, h.WriteValue)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
