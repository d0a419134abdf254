/*
Package token implements a token ledger.

A token is issued by a registered Mint. Balances are held in token accounts,
one per owner and mint. An account must be opened before it can send funds;
a transfer opens the destination account when it does not exist yet.

The Controller is the token AssetMover used by escrows. Every escrow holding
a token owns a custody account, opened when the escrow is created and
closed once it is emptied by a redeem or a refund.
*/
package token
