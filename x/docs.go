/*
Package x contains the extensions of the escrow application.

Extensions implement common functionality (Handler, Decorator, Initializer,
etc.) and are combined together in the app package. This package itself
defines the Authenticator, the interface every handler uses to learn who
signed the transaction being processed, and the AssetMover implemented by
every ledger able to hold escrowed funds.
*/
package x
