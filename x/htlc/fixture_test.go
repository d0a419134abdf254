package htlc

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/gconf"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/store"
	"github.com/iov-one/phtlc/x/cash"
	"github.com/iov-one/phtlc/x/token"
	"github.com/iov-one/phtlc/x/utils"
	"github.com/stretchr/testify/require"
)

const (
	native = "ETH"
	tok    = "USDC"
)

// blockNow is the block time of T in every test.
var blockNow = time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)

// at returns the block time offset by given seconds from blockNow.
func at(sec int64) phtlc.UnixTime {
	return phtlc.AsUnixTime(blockNow) + phtlc.UnixTime(sec)
}

type routes map[string]phtlc.Handler

func (r routes) Handle(path string, h phtlc.Handler) {
	r[path] = phtlctest.Decorate(h, utils.NewSavepoint().OnDeliver())
}

// fixture is a ledger with the native ETH coin and the USDC token. Movers
// are registered in the order the application uses.
type fixture struct {
	db     store.CacheableKVStore
	auth   *phtlctest.CtxAuth
	routes routes
	cash   cash.Controller
	token  token.Controller
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		auth:   &phtlctest.CtxAuth{Key: "htlc"},
		routes: make(routes),
		cash:   cash.NewController(),
		token:  token.NewController(),
	}
	require.NoError(t, gconf.Save(f.db, "cash", &cash.Configuration{NativeTicker: native}))
	mint := token.Mint{Ticker: tok, Name: "usd coin", Authority: phtlctest.NewCondition().Address()}
	require.NoError(t, f.token.CreateMint(f.db, &mint))
	RegisterRoutes(f.routes, f.auth, f.token, f.cash)
	return f
}

// fund gives the address given amount of coins of each of the assets.
func (f *fixture) fund(t testing.TB, addr phtlc.Address, amount uint64) {
	t.Helper()
	require.NoError(t, f.cash.IssueCoins(f.db, addr, coin.NewCoin(amount, native)))
	require.NoError(t, f.token.Issue(f.db, addr, coin.NewCoin(amount, tok)))
}

func (f *fixture) balance(t testing.TB, addr phtlc.Address, ticker string) uint64 {
	t.Helper()
	var (
		c   coin.Coin
		err error
	)
	if ticker == native {
		c, err = f.cash.Balance(f.db, addr, ticker)
	} else {
		c, err = f.token.Balance(f.db, addr, ticker)
	}
	require.NoError(t, err)
	return c.Amount
}

// ctx returns a context at given block time signed by given conditions.
func (f *fixture) ctx(now phtlc.UnixTime, signers ...phtlc.Condition) context.Context {
	ctx := phtlc.WithBlockTime(context.Background(), now.Time())
	return f.auth.SetConditions(ctx, signers...)
}

// deliver runs the check and, when it passes, the deliver of the message.
func (f *fixture) deliver(ctx context.Context, msg phtlc.Msg) (*phtlc.DeliverResult, error) {
	h, ok := f.routes[msg.Path()]
	if !ok {
		panic("no handler for " + msg.Path())
	}
	tx := &phtlctest.Tx{Msg: msg}
	if _, err := h.Check(ctx, f.db, tx); err != nil {
		return nil, err
	}
	return h.Deliver(ctx, f.db, tx)
}

func (f *fixture) escrow(t testing.TB, id []byte) *Escrow {
	t.Helper()
	e, err := Details(f.db, id)
	require.NoError(t, err)
	return e
}
