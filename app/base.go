package app

import (
	"time"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder phtlc.TxDecoder
	handler phtlc.Handler
	metrics *Metrics
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application. Metrics are optional.
func NewBaseApp(store *StoreApp, decoder phtlc.TxDecoder, handler phtlc.Handler, metrics *Metrics) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		metrics:  metrics,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	start := time.Now()
	tx, err := b.loadTx(txBytes)
	if err != nil {
		res := DeliverTxError(err, b.debug)
		b.metrics.observe("deliver_tx", "(invalid)", res.Code, start)
		return res
	}

	path := phtlc.GetPath(tx)
	ctx := phtlc.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", path)

	result, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	res := DeliverOrError(result, err, b.debug)
	b.metrics.observe("deliver_tx", path, res.Code, start)
	return res
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	start := time.Now()
	tx, err := b.loadTx(txBytes)
	if err != nil {
		res := CheckTxError(err, b.debug)
		b.metrics.observe("check_tx", "(invalid)", res.Code, start)
		return res
	}

	path := phtlc.GetPath(tx)
	ctx := phtlc.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", path)

	result, err := b.handler.Check(ctx, b.CheckStore(), tx)
	res := CheckOrError(result, err, b.debug)
	b.metrics.observe("check_tx", path, res.Code, start)
	return res
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx phtlc.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
