// Package phtlctest provides mocks and helpers shared by the tests of all
// packages: signing conditions, authenticators driven by the context, mock
// handlers, decorators and transactions.
package phtlctest
