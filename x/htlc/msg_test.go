package htlc

import (
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgValidate(t *testing.T) {
	id := phtlctest.SequenceID()
	hash := HashSecret([]byte("secret"))
	receiver := phtlctest.NewCondition().Address()
	key := phtlctest.NewKey()

	cases := map[string]struct {
		msg     phtlc.Msg
		wantErr *errors.Error
	}{
		"valid commit": {
			msg: &CommitMsg{ID: id, Receiver: receiver, Amount: coin.NewCoinp(1, "ETH"), Timelock: 10},
		},
		"commit without receiver": {
			msg:     &CommitMsg{ID: id, Amount: coin.NewCoinp(1, "ETH"), Timelock: 10},
			wantErr: errors.ErrInput,
		},
		"commit without timelock": {
			msg:     &CommitMsg{ID: id, Receiver: receiver, Amount: coin.NewCoinp(1, "ETH")},
			wantErr: ErrInvalidTimeLock,
		},
		"commit with long metadata": {
			msg: &CommitMsg{
				ID: id, Receiver: receiver, Amount: coin.NewCoinp(1, "ETH"), Timelock: 10,
				DstAddress: string(make([]byte, maxMetadataSize+1)),
			},
			wantErr: errors.ErrInput,
		},
		"lock without hashlock": {
			msg:     &LockMsg{ID: id, Receiver: receiver, Amount: coin.NewCoinp(1, "ETH"), Timelock: 10},
			wantErr: errors.ErrInput,
		},
		"add lock with short id": {
			msg:     &AddLockMsg{ID: id[:31], Hashlock: hash, Timelock: 10},
			wantErr: errors.ErrInput,
		},
		"add lock sig without signature": {
			msg:     &AddLockSigMsg{ID: id, Hashlock: hash, Timelock: 10, Pubkey: key.PublicKey()},
			wantErr: errors.ErrEmpty,
		},
		"lock reward without reward timelock": {
			msg:     &LockRewardMsg{ID: id, Reward: coin.NewCoinp(1, "ETH")},
			wantErr: ErrInvalidRewardTimeLock,
		},
		"redeem with short secret": {
			msg:     &RedeemMsg{ID: id, Secret: []byte("secret")},
			wantErr: errors.ErrInput,
		},
		"redeem with zero secret": {
			msg: &RedeemMsg{ID: id, Secret: make([]byte, HashLength)},
		},
		"lock with zero hashlock": {
			msg: &LockMsg{
				ID: id, Receiver: receiver, Amount: coin.NewCoinp(1, "ETH"), Timelock: 10,
				Hashlock: make([]byte, HashLength),
			},
			wantErr: errors.ErrInput,
		},
		"refund": {
			msg: &RefundMsg{ID: id},
		},
		"configuration without patch": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: errors.ErrEmpty,
		},
		"negative horizon": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{MinTokenTimelockHorizon: -1}},
			wantErr: errors.ErrState,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
			}
		})
	}
}

func TestMsgSerialization(t *testing.T) {
	key := phtlctest.NewKey()
	sig, err := key.Sign([]byte("payload"))
	require.NoError(t, err)

	msgs := []phtlc.Msg{
		&CommitMsg{
			ID:           phtlctest.SequenceID(),
			Sender:       phtlctest.NewCondition().Address(),
			Receiver:     phtlctest.NewCondition().Address(),
			Amount:       coin.NewCoinp(7, "ETH"),
			Timelock:     1234,
			DstChain:     "bitcoin",
			DstAsset:     "BTC",
			DstAddress:   "bc1q",
			SrcAsset:     "ETH",
			HopChains:    []string{"a", ""},
			HopAssets:    []string{"b", "c"},
			HopAddresses: []string{"d", "e"},
		},
		&LockMsg{
			ID:       phtlctest.SequenceID(),
			Receiver: phtlctest.NewCondition().Address(),
			Amount:   coin.NewCoinp(7, "USDC"),
			Timelock: 99,
			Hashlock: HashSecret([]byte("x")),
			SrcAsset: "USDC",
		},
		&AddLockSigMsg{
			ID:        phtlctest.SequenceID(),
			Hashlock:  HashSecret([]byte("y")),
			Timelock:  5,
			Pubkey:    key.PublicKey(),
			Signature: sig,
		},
		&LockRewardMsg{ID: phtlctest.SequenceID(), Reward: coin.NewCoinp(1, "ETH"), RewardTimelock: 3},
		&UpdateConfigurationMsg{Patch: &Configuration{Owner: phtlctest.NewCondition().Address(), MinTokenTimelockHorizon: 900}},
	}
	for _, msg := range msgs {
		raw, err := codec.Marshal(msg)
		require.NoError(t, err)

		got := newEmpty(msg)
		require.NoError(t, codec.Unmarshal(raw, got))
		assert.Equal(t, msg, got)
	}
}

func newEmpty(m phtlc.Msg) phtlc.Msg {
	switch m.(type) {
	case *CommitMsg:
		return &CommitMsg{}
	case *LockMsg:
		return &LockMsg{}
	case *AddLockSigMsg:
		return &AddLockSigMsg{}
	case *LockRewardMsg:
		return &LockRewardMsg{}
	case *UpdateConfigurationMsg:
		return &UpdateConfigurationMsg{}
	}
	panic("unknown message")
}
