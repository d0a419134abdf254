package token

import (
	"context"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/x"
	"github.com/iov-one/phtlc/x/cash"
)

const (
	createMintCost   = 300
	issueCost        = 100
	transferCost     = 100
	closeAccountCost = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r phtlc.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathCreateMint, CreateMintHandler{auth: auth, control: control})
	r.Handle(pathIssue, IssueHandler{auth: auth, control: control})
	r.Handle(pathTransfer, TransferHandler{auth: auth, control: control})
	r.Handle(pathCloseAccount, CloseAccountHandler{auth: auth, control: control})
}

// CreateMintHandler registers new tokens.
type CreateMintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ phtlc.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	mint := Mint{Ticker: msg.Ticker, Name: msg.Name, Authority: msg.Authority}
	if err := h.control.CreateMint(db, &mint); err != nil {
		return nil, err
	}
	phtlc.GetLogger(ctx).Info("mint created", "ticker", mint.Ticker)
	return &phtlc.DeliverResult{}, nil
}

func (h CreateMintHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	if h.control.Supports(db, msg.Ticker) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "mint %s", msg.Ticker)
	}
	native, err := cash.NativeTicker(db)
	if err != nil {
		return nil, err
	}
	if msg.Ticker == native {
		return nil, errors.Wrapf(errors.ErrDuplicate, "%s is the native coin", msg.Ticker)
	}
	return &msg, nil
}

// IssueHandler creates new tokens.
type IssueHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ phtlc.Handler = IssueHandler{}

func (h IssueHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: issueCost}, nil
}

func (h IssueHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Issue(db, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &phtlc.DeliverResult{}, nil
}

func (h IssueHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	mint, err := h.control.GetMint(db, msg.Amount.Ticker)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, mint.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return &msg, nil
}

// TransferHandler moves tokens between accounts.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ phtlc.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &phtlc.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx context.Context, tx phtlc.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// CloseAccountHandler removes empty accounts.
type CloseAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ phtlc.Handler = CloseAccountHandler{}

func (h CloseAccountHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: closeAccountCost}, nil
}

func (h CloseAccountHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.CloseAccount(db, msg.Owner, msg.Ticker); err != nil {
		return nil, err
	}
	return &phtlc.DeliverResult{}, nil
}

func (h CloseAccountHandler) validate(ctx context.Context, tx phtlc.Tx) (*CloseAccountMsg, error) {
	var msg CloseAccountMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
