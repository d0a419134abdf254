package app

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/app"
	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/crypto"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/x/cash"
	"github.com/iov-one/phtlc/x/htlc"
	"github.com/iov-one/phtlc/x/sigs"
	"github.com/iov-one/phtlc/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

const chainID = "phtlc-test"

// node drives the application the way tendermint does.
type node struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func (n *node) block(at time.Time, txs ...[]byte) []abci.ResponseDeliverTx {
	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: n.height, Time: at}})
	var res []abci.ResponseDeliverTx
	for _, tx := range txs {
		n.app.CheckTx(tx)
		res = append(res, n.app.DeliverTx(tx))
	}
	n.app.EndBlock(abci.RequestEndBlock{})
	n.app.Commit()
	return res
}

func (n *node) query(path string, key []byte, dest phtlc.Persistent) {
	res := n.app.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(n.t, uint32(0), res.Code, res.Log)
	require.NoError(n.t, app.UnmarshalOneResult(res.Value, dest))
}

func (n *node) wallet(addr phtlc.Address) coin.Coin {
	var w cash.Wallet
	n.query("/wallets", addr, &w)
	return w.Balance("ETH")
}

func signed(t *testing.T, key *crypto.PrivateKey, seq int64, msg phtlc.Msg) []byte {
	t.Helper()
	tx, err := app.NewTx(msg)
	require.NoError(t, err)
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := codec.Marshal(tx)
	require.NoError(t, err)
	return raw
}

func TestApplication(t *testing.T) {
	alice := phtlctest.NewKey()
	relayer := phtlctest.NewKey()
	bob := phtlctest.NewCondition().Address()
	aliceAddr := alice.PublicKey().Address()

	base, err := Application(Options{})
	require.NoError(t, err)
	n := &node{t: t, app: base}

	genesis := fmt.Sprintf(`{
		"conf": {
			"cash": {"native_ticker": "ETH"},
			"htlc": {"min_token_timelock_horizon": 900}
		},
		"cash": [{"address": %[1]q, "coins": ["1000 ETH"]}],
		"token": {
			"mints": [{"ticker": "USDC", "name": "US Dollar Coin", "authority": %[1]q}],
			"balances": [{"address": %[1]q, "coins": ["500 USDC"]}]
		}
	}`, aliceAddr.String())
	n.app.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(genesis)})

	t0 := time.Unix(1600000000, 0).UTC()
	n.block(t0)
	assert.Equal(t, coin.NewCoin(1000, "ETH"), n.wallet(aliceAddr))

	secret := bytes.Repeat([]byte{7}, 32)
	nativeID := phtlctest.SequenceID()
	tokenID := phtlctest.SequenceID()
	at := func(sec int64) phtlc.UnixTime { return phtlc.AsUnixTime(t0.Add(time.Duration(sec) * time.Second)) }

	res := n.block(t0.Add(10*time.Second),
		signed(t, alice, 0, &htlc.LockMsg{
			ID:       nativeID,
			Receiver: bob,
			Amount:   coin.NewCoinp(100, "ETH"),
			Timelock: at(3600),
			Hashlock: htlc.HashSecret(secret),
		}),
		signed(t, alice, 1, &htlc.LockRewardMsg{
			ID:             nativeID,
			Reward:         coin.NewCoinp(10, "ETH"),
			RewardTimelock: at(1800),
		}),
		signed(t, alice, 2, &htlc.CommitMsg{
			ID:       tokenID,
			Receiver: bob,
			Amount:   coin.NewCoinp(50, "USDC"),
			Timelock: at(1000),
		}),
	)
	for i, r := range res {
		require.Equal(t, uint32(0), r.Code, "tx %d: %s", i, r.Log)
	}
	assert.Equal(t, nativeID, res[0].Data)
	assert.Contains(t, res[0].Tags, tag("action", "htlc/lock"))
	assert.Equal(t, coin.NewCoin(890, "ETH"), n.wallet(aliceAddr))

	// A failing transaction leaves no trace but the consumed nonce.
	res = n.block(t0.Add(20*time.Second),
		signed(t, alice, 3, &htlc.RefundMsg{ID: nativeID}),
	)
	assert.Equal(t, htlc.ErrNotPastTimeLock.ABCICode(), res[0].Code)

	res = n.block(t0.Add(2000*time.Second),
		signed(t, relayer, 0, &htlc.RedeemMsg{ID: nativeID, Secret: secret}),
		signed(t, alice, 4, &htlc.RefundMsg{ID: tokenID}),
	)
	for i, r := range res {
		require.Equal(t, uint32(0), r.Code, "tx %d: %s", i, r.Log)
	}

	var e htlc.Escrow
	n.query("/htlc", nativeID, &e)
	assert.Equal(t, htlc.StatusRedeemed, e.Status)
	assert.Equal(t, secret, e.Secret)

	assert.Equal(t, coin.NewCoin(100, "ETH"), n.wallet(bob))
	assert.Equal(t, coin.NewCoin(10, "ETH"), n.wallet(relayer.PublicKey().Address()))
	assert.Equal(t, coin.NewCoin(890, "ETH"), n.wallet(aliceAddr))

	n.query("/htlc", tokenID, &e)
	assert.Equal(t, htlc.StatusRefunded, e.Status)

	var acc token.Account
	n.query("/accounts", token.AccountKey(aliceAddr, "USDC"), &acc)
	assert.Equal(t, uint64(500), acc.Amount)

	var user sigs.UserData
	n.query("/auth", aliceAddr, &user)
	assert.Equal(t, int64(5), user.Sequence)
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
