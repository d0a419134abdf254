package cash

import (
	"context"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
	"github.com/iov-one/phtlc/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r phtlc.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
	r.Handle((&UpdateConfigurationMsg{}).Path(), NewConfigHandler(auth))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ phtlc.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx context.Context, store phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the coins from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx context.Context, store phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &phtlc.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx context.Context, tx phtlc.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// NewConfigHandler returns a handler of UpdateConfigurationMsg.
func NewConfigHandler(auth x.Authenticator) phtlc.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler("cash", &conf, auth)
}
