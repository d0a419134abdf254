/*
Package app links together all the various components
to construct the phtlcd application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/app"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/store/iavl"
	"github.com/iov-one/phtlc/x"
	"github.com/iov-one/phtlc/x/cash"
	"github.com/iov-one/phtlc/x/htlc"
	"github.com/iov-one/phtlc/x/sigs"
	"github.com/iov-one/phtlc/x/token"
	"github.com/iov-one/phtlc/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the ABCI Info call.
const Name = "phtlcd"

// Authenticator returns the authentication used by all handlers: public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failing message is fully reverted but the
		// signature nonce is still incremented
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns the router of all messages understood by the
// application. Escrows can hold both tokens and the native coin.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cashCtrl := cash.NewController()
	tokenCtrl := token.NewController()
	cash.RegisterRoutes(r, authFn, cashCtrl)
	token.RegisterRoutes(r, authFn, tokenCtrl)
	htlc.RegisterRoutes(r, authFn, tokenCtrl, cashCtrl)
	return r
}

// QueryRouter returns the query router, allowing access to "/htlc",
// "/wallets", "/tokens", "/accounts" and "/auth".
func QueryRouter() phtlc.QueryRouter {
	r := phtlc.NewQueryRouter()
	r.RegisterAll(
		htlc.RegisterQuery,
		cash.RegisterQuery,
		token.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions. The native
// coin configuration must be loaded first.
func Initializers() phtlc.Initializer {
	return phtlc.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		htlc.Initializer{},
	)
}

// TxCodec returns the codec of all transactions accepted by the
// application.
func TxCodec() *app.TxCodec {
	return app.NewTxCodec(
		&cash.SendMsg{},
		&cash.UpdateConfigurationMsg{},
		&token.CreateMintMsg{},
		&token.IssueMsg{},
		&token.TransferMsg{},
		&token.CloseAccountMsg{},
		&htlc.CommitMsg{},
		&htlc.LockMsg{},
		&htlc.AddLockMsg{},
		&htlc.AddLockSigMsg{},
		&htlc.LockRewardMsg{},
		&htlc.RedeemMsg{},
		&htlc.RefundMsg{},
		&htlc.UpdateConfigurationMsg{},
	)
}

// Stack wires up the router with the decorator chain. This can be passed
// into BaseApp.
func Stack() phtlc.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Options configure the application instance.
type Options struct {
	// DBPath is the location of the state database. In-memory storage is
	// used if empty.
	DBPath  string
	Logger  log.Logger
	Debug   bool
	Metrics *app.Metrics
}

// Application constructs the ABCI application.
func Application(opts Options) (app.BaseApp, error) {
	kv, err := CommitKVStore(opts.DBPath)
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "cannot open store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithLogger(logger).
		WithDebug(opts.Debug)
	return app.NewBaseApp(store, TxCodec().Decode, Stack(), opts.Metrics), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (phtlc.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
