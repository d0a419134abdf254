package token

import (
	"context"
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/store"
	"github.com/iov-one/phtlc/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type router map[string]phtlc.Handler

func (r router) Handle(path string, h phtlc.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	auth := &phtlctest.CtxAuth{Key: "auth"}
	r := make(router)
	RegisterRoutes(r, auth, control)

	authority := phtlctest.NewCondition()
	alice := phtlctest.NewCondition()
	bob := phtlctest.NewCondition()

	deliver := func(signer phtlc.Condition, msg phtlc.Msg) error {
		ctx := auth.SetConditions(context.Background(), signer)
		tx := &phtlctest.Tx{Msg: msg}
		if _, err := r[msg.Path()].Check(ctx, db, tx); err != nil {
			return err
		}
		_, err := r[msg.Path()].Deliver(ctx, db, tx)
		return err
	}

	create := &CreateMintMsg{Ticker: "USDC", Name: "US Dollar Coin", Authority: authority.Address()}
	assert.True(t, errors.ErrUnauthorized.Is(deliver(alice, create)))
	require.NoError(t, deliver(authority, create))
	assert.True(t, errors.ErrDuplicate.Is(deliver(authority, create)))

	// The native coin ticker cannot be claimed by a mint.
	require.NoError(t, gconf.Save(db, "cash", &cash.Configuration{NativeTicker: "ETH"}))
	shadow := &CreateMintMsg{Ticker: "ETH", Name: "Fake Ether", Authority: authority.Address()}
	assert.True(t, errors.ErrDuplicate.Is(deliver(authority, shadow)))
	assert.False(t, control.Supports(db, "ETH"))

	issue := &IssueMsg{Destination: alice.Address(), Amount: coin.NewCoinp(500, "USDC")}
	assert.True(t, errors.ErrUnauthorized.Is(deliver(alice, issue)))
	require.NoError(t, deliver(authority, issue))

	send := &TransferMsg{Source: alice.Address(), Destination: bob.Address(), Amount: coin.NewCoinp(500, "USDC")}
	assert.True(t, errors.ErrUnauthorized.Is(deliver(bob, send)))
	require.NoError(t, deliver(alice, send))

	closeAcc := &CloseAccountMsg{Owner: bob.Address(), Ticker: "USDC"}
	assert.True(t, ErrAccountNotEmpty.Is(deliver(bob, closeAcc)))
	require.NoError(t, deliver(alice, &CloseAccountMsg{Owner: alice.Address(), Ticker: "USDC"}))

	got, err := control.Balance(db, bob.Address(), "USDC")
	require.NoError(t, err)
	assert.EqualValues(t, 500, got.Amount)
}
