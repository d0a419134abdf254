/*
Package phtlc defines the common interfaces that tie the escrow application
together: messages and transactions, handlers and decorators, the key value
store abstraction and the context helpers that carry per block information
(height, chain id, block time and logger) down to the handlers.

Extensions live under x/ and depend only on this package and the shared
infrastructure packages (errors, store, orm, coin, gconf). The ABCI wiring
lives in app/ and the daemon in cmd/phtlcd.

Every value that can be set on the context comes with a pair of functions:

	WithXYZ(context.Context, T) context.Context
	GetXYZ(context.Context) (val T, ok bool)

Height and chain id may be set only once, an attempt to overwrite them
panics so that a lower level module cannot change them.
*/
package phtlc
