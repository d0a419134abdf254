package htlc

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
	"github.com/iov-one/phtlc/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createEscrowCost int64 = 300
	addLockCost      int64 = 100
	lockRewardCost   int64 = 200
	redeemCost       int64 = 0
	refundCost       int64 = 0
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Movers are consulted in the given order, the first one that
// supports the ticker of an escrow holds its funds.
func RegisterRoutes(r phtlc.Registry, auth x.Authenticator, movers ...x.AssetMover) {
	b := base{
		auth:   auth,
		bucket: NewBucket(),
		assets: x.AssetRouter(movers),
	}
	r.Handle(pathCommit, CommitHandler{b})
	r.Handle(pathLock, LockHandler{b})
	r.Handle(pathAddLock, AddLockHandler{b})
	r.Handle(pathAddLockSig, AddLockSigHandler{b})
	r.Handle(pathLockReward, LockRewardHandler{b})
	r.Handle(pathRedeem, RedeemHandler{b})
	r.Handle(pathRefund, RefundHandler{b})
	r.Handle(pathUpdateConfiguration, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler of UpdateConfigurationMsg.
func NewConfigHandler(auth x.Authenticator) phtlc.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler("htlc", &conf, auth)
}

// base holds what all escrow handlers share.
type base struct {
	auth   x.Authenticator
	bucket Bucket
	assets x.AssetRouter
}

// loadActive returns the escrow if it can still be modified.
func (b base) loadActive(db phtlc.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	e, err := b.bucket.GetEscrow(db, id)
	if err != nil {
		return nil, err
	}
	if e.Status != StatusActive {
		return nil, errors.Wrapf(ErrAlreadyClaimed, "escrow is %s", e.Status)
	}
	return e, nil
}

// loadBySender returns the escrow if it can still be modified and the
// sender signed the transaction.
func (b base) loadBySender(ctx context.Context, db phtlc.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	e, err := b.loadActive(db, id)
	if err != nil {
		return nil, err
	}
	if !b.auth.HasAddress(ctx, e.Sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	return e, nil
}

func (b base) mover(db phtlc.ReadOnlyKVStore, ticker string) (x.AssetMover, error) {
	m := b.assets.Mover(db, ticker)
	if m == nil {
		return nil, errors.Wrapf(ErrWrongAsset, "%s is not held by any ledger", ticker)
	}
	return m, nil
}

// escrowMover returns the ledger holding the funds of an existing escrow.
// It is picked by the asset kind recorded at creation, the ticker alone is
// ambiguous once a mint shadows the native coin.
func (b base) escrowMover(e *Escrow) (x.AssetMover, error) {
	kind := x.NativeAsset
	if e.TokenContract != "" {
		kind = x.TokenAsset
	}
	m := b.assets.ByKind(kind)
	if m == nil {
		return nil, errors.Wrapf(ErrWrongAsset, "no %s ledger", kind)
	}
	return m, nil
}

// sender returns the funding address. When not declared it is the main
// signer, otherwise it must have signed.
func (b base) sender(ctx context.Context, declared phtlc.Address) (phtlc.Address, error) {
	if len(declared) == 0 {
		signer := x.MainSigner(ctx, b.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		return signer.Address(), nil
	}
	if !b.auth.HasAddress(ctx, declared) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	return declared, nil
}

// checkTimelock ensures the timelock is in the future and not closer than
// the horizon configured for given asset kind.
func checkTimelock(ctx context.Context, db phtlc.ReadOnlyKVStore, kind x.AssetKind, timelock phtlc.UnixTime, notFuture *errors.Error) error {
	if !phtlc.InTheFuture(ctx, timelock) {
		return errors.Wrapf(notFuture, "%s is not in the future", timelock)
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	now, _ := phtlc.BlockTime(ctx)
	if min := phtlc.AsUnixTime(now) + phtlc.UnixTime(conf.Horizon(kind)); timelock < min {
		return errors.Wrapf(ErrInvalidTimeLock, "%s asset timelock must be at least %s", kind, min)
	}
	return nil
}

// closeCustody releases the custody slot of an emptied escrow when the
// ledger supports it. Failure is logged and does not fail the operation.
func closeCustody(ctx context.Context, db phtlc.KVStore, m x.AssetMover, e *Escrow) {
	closer, ok := m.(x.CustodyCloser)
	if !ok {
		return
	}
	log := phtlc.GetLogger(ctx).With("id", hex.EncodeToString(e.ID))
	closed, err := closer.CloseIfEmpty(db, e.Address, e.Amount.Ticker)
	switch {
	case err != nil:
		log.Error("cannot close custody", "err", err)
	case closed:
		log.Info("custody closed")
	}
}

func escrowTags(e *Escrow) []common.KVPair {
	return []common.KVPair{
		{Key: []byte("htlc.id"), Value: []byte(hex.EncodeToString(e.ID))},
		{Key: []byte("htlc.status"), Value: []byte(e.Status.String())},
	}
}

// create stores a new escrow and moves the funds into custody.
func (b base) create(ctx context.Context, db phtlc.KVStore, e *Escrow, m x.AssetMover) (*phtlc.DeliverResult, error) {
	e.Status = StatusActive
	e.Address = CustodyAddress(e.ID)
	if m.Kind() == x.TokenAsset {
		e.TokenContract = e.Amount.Ticker
	}
	if opener, ok := m.(x.CustodyOpener); ok {
		key, err := opener.OpenCustody(db, e.Address, e.Amount.Ticker)
		if err != nil {
			return nil, errors.Wrap(err, "open custody")
		}
		e.TokenWallet = key
	}
	if err := b.bucket.Create(db, e.ID, e); err != nil {
		return nil, err
	}
	if err := m.Transfer(db, e.Sender, e.Address, *e.Amount); err != nil {
		return nil, errors.Wrap(err, "fund escrow")
	}

	phtlc.GetLogger(ctx).Info("escrow created",
		"id", hex.EncodeToString(e.ID),
		"status", e.Status,
		"amount", e.Amount,
		"locked", e.IsLocked())
	return &phtlc.DeliverResult{Data: e.ID, Tags: escrowTags(e)}, nil
}

// validateCreate runs the checks shared by commit and lock.
func (b base) validateCreate(ctx context.Context, db phtlc.KVStore, id []byte, declared phtlc.Address, amount *coin.Coin, timelock phtlc.UnixTime) (phtlc.Address, x.AssetMover, error) {
	sender, err := b.sender(ctx, declared)
	if err != nil {
		return nil, nil, err
	}
	m, err := b.mover(db, amount.Ticker)
	if err != nil {
		return nil, nil, err
	}
	if err := checkTimelock(ctx, db, m.Kind(), timelock, ErrInvalidTimeLock); err != nil {
		return nil, nil, err
	}
	if err := b.bucket.Has(db, id); err == nil {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %X", id)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, nil, err
	}
	return sender, m, nil
}

//---- commit

// CommitHandler creates escrows without a hashlock.
type CommitHandler struct {
	base
}

var _ phtlc.Handler = CommitHandler{}

func (h CommitHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: createEscrowCost}, nil
}

func (h CommitHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, sender, m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	e := &Escrow{
		ID:         msg.ID,
		Sender:     sender,
		Receiver:   msg.Receiver,
		Amount:     msg.Amount,
		Timelock:   msg.Timelock,
		DstChain:   msg.DstChain,
		DstAsset:   msg.DstAsset,
		DstAddress: msg.DstAddress,
		SrcAsset:   msg.SrcAsset,
	}
	return h.create(ctx, db, e, m)
}

func (h CommitHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*CommitMsg, phtlc.Address, x.AssetMover, error) {
	var msg CommitMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	sender, m, err := h.validateCreate(ctx, db, msg.ID, msg.Sender, msg.Amount, msg.Timelock)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, sender, m, nil
}

//---- lock

// LockHandler creates escrows with the hashlock set.
type LockHandler struct {
	base
}

var _ phtlc.Handler = LockHandler{}

func (h LockHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: createEscrowCost}, nil
}

func (h LockHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, sender, m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	e := &Escrow{
		ID:         msg.ID,
		Sender:     sender,
		Receiver:   msg.Receiver,
		Hashlock:   msg.Hashlock,
		Amount:     msg.Amount,
		Timelock:   msg.Timelock,
		DstChain:   msg.DstChain,
		DstAsset:   msg.DstAsset,
		DstAddress: msg.DstAddress,
		SrcAsset:   msg.SrcAsset,
	}
	return h.create(ctx, db, e, m)
}

func (h LockHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*LockMsg, phtlc.Address, x.AssetMover, error) {
	var msg LockMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	sender, m, err := h.validateCreate(ctx, db, msg.ID, msg.Sender, msg.Amount, msg.Timelock)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, sender, m, nil
}

//---- add lock

// validateAddLock runs the checks shared by both ways of attaching a
// hashlock. Authorization is done by the caller.
func (b base) validateAddLock(ctx context.Context, db phtlc.ReadOnlyKVStore, e *Escrow, timelock phtlc.UnixTime) error {
	if e.IsLocked() {
		return errors.Wrap(ErrHashlockAlreadySet, "cannot overwrite")
	}
	m, err := b.escrowMover(e)
	if err != nil {
		return err
	}
	if err := checkTimelock(ctx, db, m.Kind(), timelock, ErrNotFutureTimeLock); err != nil {
		return err
	}
	if e.HasReward() && timelock <= e.RewardTimelock {
		return errors.Wrap(ErrInvalidTimeLock, "must be after the reward timelock")
	}
	return nil
}

func (b base) addLock(ctx context.Context, db phtlc.KVStore, e *Escrow, hashlock []byte, timelock phtlc.UnixTime) (*phtlc.DeliverResult, error) {
	e.Hashlock = hashlock
	e.Timelock = timelock
	if err := b.bucket.Put(db, e.ID, e); err != nil {
		return nil, err
	}
	phtlc.GetLogger(ctx).Info("escrow locked",
		"id", hex.EncodeToString(e.ID),
		"timelock", e.Timelock)
	return &phtlc.DeliverResult{Data: e.ID, Tags: escrowTags(e)}, nil
}

// AddLockHandler attaches the hashlock when signed by the sender.
type AddLockHandler struct {
	base
}

var _ phtlc.Handler = AddLockHandler{}

func (h AddLockHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: addLockCost}, nil
}

func (h AddLockHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, e, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.addLock(ctx, db, e, msg.Hashlock, msg.Timelock)
}

func (h AddLockHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*AddLockMsg, *Escrow, error) {
	var msg AddLockMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	e, err := h.loadBySender(ctx, db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := h.validateAddLock(ctx, db, e, msg.Timelock); err != nil {
		return nil, nil, err
	}
	return &msg, e, nil
}

// AddLockSigHandler attaches the hashlock when the message carries a
// signature of the sender.
type AddLockSigHandler struct {
	base
}

var _ phtlc.Handler = AddLockSigHandler{}

func (h AddLockSigHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: addLockCost}, nil
}

func (h AddLockSigHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, e, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.addLock(ctx, db, e, msg.Hashlock, msg.Timelock)
}

func (h AddLockSigHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*AddLockSigMsg, *Escrow, error) {
	var msg AddLockSigMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	e, err := h.loadActive(db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if !msg.Pubkey.Address().Equals(e.Sender) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "key does not belong to the sender")
	}
	if !msg.Pubkey.Verify(AddLockSignBytes(msg.ID, msg.Hashlock, msg.Timelock), msg.Signature) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := h.validateAddLock(ctx, db, e, msg.Timelock); err != nil {
		return nil, nil, err
	}
	return &msg, e, nil
}

//---- lock reward

// LockRewardHandler attaches a reward to an escrow.
type LockRewardHandler struct {
	base
}

var _ phtlc.Handler = LockRewardHandler{}

func (h LockRewardHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: lockRewardCost}, nil
}

func (h LockRewardHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, e, m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	e.Reward = msg.Reward
	e.RewardTimelock = msg.RewardTimelock
	if err := h.bucket.Put(db, e.ID, e); err != nil {
		return nil, err
	}
	if err := m.Transfer(db, e.Sender, e.Address, *e.Reward); err != nil {
		return nil, errors.Wrap(err, "fund reward")
	}
	phtlc.GetLogger(ctx).Info("reward locked",
		"id", hex.EncodeToString(e.ID),
		"reward", e.Reward,
		"reward_timelock", e.RewardTimelock)
	return &phtlc.DeliverResult{Data: e.ID, Tags: escrowTags(e)}, nil
}

func (h LockRewardHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*LockRewardMsg, *Escrow, x.AssetMover, error) {
	var msg LockRewardMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	e, err := h.loadBySender(ctx, db, msg.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if e.HasReward() {
		return nil, nil, nil, errors.Wrap(ErrRewardAlreadySet, "cannot overwrite")
	}
	if !msg.Reward.SameType(*e.Amount) {
		return nil, nil, nil, errors.Wrapf(ErrWrongAsset, "reward must be paid in %s", e.Amount.Ticker)
	}
	if _, err := e.Amount.Add(*msg.Reward); err != nil {
		return nil, nil, nil, errors.Wrap(err, "reward")
	}
	if msg.RewardTimelock >= e.Timelock {
		return nil, nil, nil, errors.Wrap(ErrInvalidRewardTimeLock, "must be before the timelock")
	}
	if !phtlc.InTheFuture(ctx, msg.RewardTimelock) {
		return nil, nil, nil, errors.Wrap(ErrInvalidRewardTimeLock, "not in the future")
	}
	m, err := h.escrowMover(e)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, e, m, nil
}

//---- redeem

// RedeemHandler releases escrows whose secret is revealed.
type RedeemHandler struct {
	base
}

var _ phtlc.Handler = RedeemHandler{}

func (h RedeemHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: redeemCost}, nil
}

func (h RedeemHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	msg, e, m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	caller := x.MainSigner(ctx, h.auth).Address()
	rewardDue := e.HasReward() && phtlc.IsExpired(ctx, e.RewardTimelock)
	payments := RedeemPayout(e, caller, rewardDue)

	e.Status = StatusRedeemed
	e.Secret = msg.Secret
	if err := h.bucket.Put(db, e.ID, e); err != nil {
		return nil, err
	}
	log := phtlc.GetLogger(ctx).With("id", hex.EncodeToString(e.ID))
	for _, p := range payments {
		if err := m.Transfer(db, e.Address, p.To, p.Amount); err != nil {
			return nil, errors.Wrap(err, "payout")
		}
		log.Debug("escrow payout", "to", p.To, "amount", p.Amount)
	}
	closeCustody(ctx, db, m, e)

	log.Info("escrow redeemed", "status", e.Status, "payments", len(payments), "reward_due", rewardDue)
	return &phtlc.DeliverResult{Tags: escrowTags(e)}, nil
}

func (h RedeemHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*RedeemMsg, *Escrow, x.AssetMover, error) {
	var msg RedeemMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	e, err := h.loadActive(db, msg.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !e.IsLocked() {
		return nil, nil, nil, errors.Wrap(ErrHashlockNotSet, "cannot redeem")
	}
	if !bytes.Equal(HashSecret(msg.Secret), e.Hashlock) {
		return nil, nil, nil, errors.Wrap(ErrHashlockNoMatch, "invalid secret")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	m, err := h.escrowMover(e)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, e, m, nil
}

//---- refund

// RefundHandler returns the funds of expired escrows to the sender.
type RefundHandler struct {
	base
}

var _ phtlc.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &phtlc.CheckResult{GasAllocated: refundCost}, nil
}

func (h RefundHandler) Deliver(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*phtlc.DeliverResult, error) {
	e, m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	total, err := e.Total()
	if err != nil {
		return nil, err
	}

	e.Status = StatusRefunded
	if err := h.bucket.Put(db, e.ID, e); err != nil {
		return nil, err
	}
	if err := m.Transfer(db, e.Address, e.Sender, total); err != nil {
		return nil, errors.Wrap(err, "refund")
	}
	closeCustody(ctx, db, m, e)

	phtlc.GetLogger(ctx).Info("escrow refunded",
		"id", hex.EncodeToString(e.ID),
		"status", e.Status,
		"total", total)
	return &phtlc.DeliverResult{Tags: escrowTags(e)}, nil
}

func (h RefundHandler) validate(ctx context.Context, db phtlc.KVStore, tx phtlc.Tx) (*Escrow, x.AssetMover, error) {
	var msg RefundMsg
	if err := phtlc.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	e, err := h.loadBySender(ctx, db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if !phtlc.IsExpired(ctx, e.Timelock) {
		return nil, nil, errors.Wrapf(ErrNotPastTimeLock, "refund possible from %s", e.Timelock)
	}
	m, err := h.escrowMover(e)
	if err != nil {
		return nil, nil, err
	}
	return e, m, nil
}
