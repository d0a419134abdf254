package htlc

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
)

// Payment is a single transfer out of the custody address.
type Payment struct {
	To     phtlc.Address
	Amount coin.Coin
}

// RedeemPayout returns how the funds of a redeemed escrow are split.
//
// Without a reward the amount goes to the receiver. Before the reward
// timelock the reward returns to the sender, even when the receiver
// redeems. After it, the reward goes to the caller, the main signer of the
// redeem transaction, which is the receiver itself if it redeemed unaided. Payments always sum to amount and reward.
//
// rewardDue is true when the block time is at or past the reward timelock.
func RedeemPayout(e *Escrow, caller phtlc.Address, rewardDue bool) []Payment {
	if !e.HasReward() {
		return []Payment{{To: e.Receiver, Amount: *e.Amount}}
	}
	switch {
	case !rewardDue:
		return []Payment{
			{To: e.Receiver, Amount: *e.Amount},
			{To: e.Sender, Amount: *e.Reward},
		}
	case caller.Equals(e.Receiver):
		// Amount and reward are of the same ticker and the reward was
		// already added to the amount at lockReward, it cannot overflow.
		total, err := e.Total()
		if err != nil {
			panic(err)
		}
		return []Payment{{To: e.Receiver, Amount: total}}
	default:
		return []Payment{
			{To: e.Receiver, Amount: *e.Amount},
			{To: caller, Amount: *e.Reward},
		}
	}
}

// AddLockSignBytes returns the message the sender signs to let anyone
// attach the hashlock in its name:
//
//	sha256(id | hashlock | uint64 little endian timelock)
func AddLockSignBytes(id, hashlock []byte, timelock phtlc.UnixTime) []byte {
	ts := make([]byte, 8)
	binary.LittleEndian.PutUint64(ts, uint64(timelock))

	h := sha256.New()
	h.Write(id)
	h.Write(hashlock)
	h.Write(ts)
	return h.Sum(nil)
}

// HashSecret returns the hashlock of given secret.
func HashSecret(secret []byte) []byte {
	h := sha256.Sum256(secret)
	return h[:]
}
