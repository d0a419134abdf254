/*
Package htlc implements hashed and pre-hashed timelock escrows.

An escrow locks an amount of a native coin or of a token until either the
preimage of its hashlock is revealed (redeem) or its timelock passes
(refund). An escrow created with commit has no hashlock yet; the sender
attaches one later with add lock, or anyone can attach it with a signature
of the sender.

The sender may attach a reward for whoever redeems the escrow on the
receiver's behalf. The reward is paid to such relayer only when the redeem
happens after the reward timelock; an early redeem returns the reward to the
sender.

Funds are held by a custody address derived from the escrow id. Every
operation moves funds as its last step, so a failed transfer leaves the
escrow untouched.
*/
package htlc
