package main

import (
	"net/http"
	"os"

	"github.com/iov-one/phtlc/app"
	phtlcd "github.com/iov-one/phtlc/cmd/phtlcd/app"
	"github.com/iov-one/phtlc/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli"
)

func start(c *cli.Context) error {
	conf, err := configFromContext(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(prometheus.NewGoCollector()); err != nil {
		return errors.Wrap(err, "register go collector")
	}
	metrics, err := app.NewMetrics(reg)
	if err != nil {
		return errors.Wrap(err, "register metrics")
	}

	application, err := phtlcd.Application(phtlcd.Options{
		DBPath:  conf.DBPath(),
		Logger:  logger.With("module", "app"),
		Debug:   conf.Debug,
		Metrics: metrics,
	})
	if err != nil {
		return err
	}

	if conf.MetricsAddr != "" {
		go serveMetrics(logger.With("module", "metrics"), conf.MetricsAddr, reg)
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind, "home", conf.Home)
	srv, err := server.NewServer(conf.Bind, "socket", application)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	srv.SetLogger(logger.With("module", "abci-server"))
	if err := srv.Start(); err != nil {
		return errors.Wrap(err, "cannot start server")
	}

	cmn.TrapSignal(logger, func() {
		if err := srv.Stop(); err != nil {
			logger.Error("Cannot stop server", "err", err)
		}
	})
	// TrapSignal exits the process once the server is stopped.
	select {}
}

func serveMetrics(logger log.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "err", err)
	}
}

// newLogger returns a logfmt logger writing to stdout, filtered by given
// level description.
func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}
