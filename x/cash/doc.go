/*
Package cash holds the balances of the native coin of the chain.

Every address owns a wallet. The Controller moves coins between wallets and
is the native AssetMover used when an escrow locks the native coin. Which
ticker is native is decided by the package configuration, stored in genesis
under conf.cash.
*/
package cash
