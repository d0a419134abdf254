package htlc

import (
	"testing"

	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEscrow() Escrow {
	id := phtlctest.SequenceID()
	return Escrow{
		ID:             id,
		Sender:         phtlctest.NewCondition().Address(),
		Receiver:       phtlctest.NewCondition().Address(),
		Hashlock:       HashSecret([]byte("secret")),
		Amount:         coin.NewCoinp(50, "ETH"),
		Timelock:       at(1000),
		Reward:         coin.NewCoinp(10, "ETH"),
		RewardTimelock: at(500),
		Status:         StatusActive,
		DstChain:       "bitcoin",
		DstAsset:       "BTC",
		DstAddress:     "bc1qexample",
		SrcAsset:       "ETH",
		Address:        CustodyAddress(id),
	}
}

func TestEscrowValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Escrow)
		wantErr *errors.Error
	}{
		"valid":           {mutate: func(*Escrow) {}},
		"unlocked":        {mutate: func(e *Escrow) { e.Hashlock = nil }},
		"short id":        {mutate: func(e *Escrow) { e.ID = []byte("x") }, wantErr: errors.ErrModel},
		"zero amount":     {mutate: func(e *Escrow) { e.Amount = coin.NewCoinp(0, "ETH") }, wantErr: ErrFundsNotSent},
		"reward asset":    {mutate: func(e *Escrow) { e.Reward = coin.NewCoinp(1, "IOV") }, wantErr: ErrWrongAsset},
		"reward too late": {mutate: func(e *Escrow) { e.RewardTimelock = e.Timelock }, wantErr: ErrInvalidRewardTimeLock},
		"bad status":      {mutate: func(e *Escrow) { e.Status = 7 }, wantErr: errors.ErrState},
		"redeemed without secret": {
			mutate:  func(e *Escrow) { e.Status = StatusRedeemed },
			wantErr: errors.ErrModel,
		},
		"missing custody": {mutate: func(e *Escrow) { e.Address = nil }, wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := validEscrow()
			tc.mutate(&e)
			err := e.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
			}
		})
	}
}

func TestEscrowSerialization(t *testing.T) {
	e := validEscrow()
	e.Status = StatusRedeemed
	e.Secret = []byte("secret")
	e.TokenContract = "USDC"
	e.TokenWallet = []byte("wallet")

	raw, err := codec.Marshal(&e)
	require.NoError(t, err)
	var got Escrow
	require.NoError(t, codec.Unmarshal(raw, &got))
	assert.Equal(t, e, got)
}

func TestBucket(t *testing.T) {
	f := newFixture(t)
	e := validEscrow()
	b := NewBucket()

	require.NoError(t, b.Create(f.db, e.ID, &e))
	assert.True(t, errors.ErrDuplicate.Is(b.Create(f.db, e.ID, &e)))

	got, err := Details(f.db, e.ID)
	require.NoError(t, err)
	assert.Equal(t, &e, got)

	_, err = Details(f.db, phtlctest.SequenceID())
	assert.True(t, errors.ErrNotFound.Is(err))
}
