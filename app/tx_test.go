package app

import (
	"testing"

	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/store"
	"github.com/iov-one/phtlc/x/cash"
	"github.com/iov-one/phtlc/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxCodec(t *testing.T) {
	const chainID = "test-chain"
	key := phtlctest.NewKey()

	msg := &cash.SendMsg{
		Source:      key.PublicKey().Address(),
		Destination: phtlctest.NewCondition().Address(),
		Amount:      coin.NewCoinp(10, "ETH"),
		Memo:        "hello",
	}
	tx, err := NewTx(msg)
	require.NoError(t, err)
	sig, err := sigs.SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	raw, err := codec.Marshal(tx)
	require.NoError(t, err)

	txc := NewTxCodec(&cash.SendMsg{}, &cash.UpdateConfigurationMsg{})
	decoded, err := txc.Decode(raw)
	require.NoError(t, err)

	got, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	signed, ok := decoded.(sigs.SignedTx)
	require.True(t, ok)
	require.Len(t, signed.GetSignatures(), 1)
	conds, err := sigs.VerifyTxSignatures(store.MemStore(), signed, chainID)
	require.NoError(t, err)
	require.Len(t, conds, 1)
	assert.True(t, key.PublicKey().Condition().Equals(conds[0]))

	// A signature is only valid for the chain it was created for.
	_, err = sigs.VerifyTxSignatures(store.MemStore(), signed, "other-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}

func TestTxCodecRejects(t *testing.T) {
	txc := NewTxCodec(&cash.SendMsg{})

	unknown, err := NewTx(&cash.UpdateConfigurationMsg{Patch: &cash.Configuration{NativeTicker: "ETH"}})
	require.NoError(t, err)
	raw, err := codec.Marshal(unknown)
	require.NoError(t, err)
	_, err = txc.Decode(raw)
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = txc.Decode([]byte{0xff, 0xff})
	assert.True(t, errors.ErrInput.Is(err))

	broken := &Tx{MsgPath: (&cash.SendMsg{}).Path(), MsgData: []byte{0x0a, 0x05, 0x01}}
	raw, err = codec.Marshal(broken)
	require.NoError(t, err)
	_, err = txc.Decode(raw)
	assert.True(t, errors.ErrInput.Is(err))

	assert.Panics(t, func() { NewTxCodec(&cash.SendMsg{}, &cash.SendMsg{}) })
}

func TestSignBytesIgnoreSignatures(t *testing.T) {
	tx, err := NewTx(&cash.SendMsg{
		Source:      phtlctest.NewCondition().Address(),
		Destination: phtlctest.NewCondition().Address(),
		Amount:      coin.NewCoinp(1, "ETH"),
	})
	require.NoError(t, err)
	want, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(phtlctest.NewKey(), tx, "test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	got, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := codec.Marshal(tx)
	require.NoError(t, err)
	var again Tx
	require.NoError(t, codec.Unmarshal(raw, &again))
	got, err = again.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
