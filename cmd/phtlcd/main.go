// Command phtlcd runs the escrow application as an ABCI server, to be
// connected with a tendermint node.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"
)

const (
	flagHome        = "home"
	flagBind        = "bind"
	flagLogLevel    = "log_level"
	flagMetricsAddr = "metrics_addr"
	flagDebug       = "debug"
)

func main() {
	app := cli.NewApp()
	app.Name = "phtlcd"
	app.Usage = "Hashed timelock escrow ABCI application"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  flagHome,
			Value: defaultHome(),
			Usage: "directory holding the configuration and the state",
		},
	}
	app.Commands = []cli.Command{
		initCommand,
		startCommand,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".phtlcd"
	}
	return filepath.Join(home, ".phtlcd")
}

var initCommand = cli.Command{
	Name:   "init",
	Usage:  "write the default configuration file into the home directory",
	Action: initConfig,
}

func initConfig(c *cli.Context) error {
	conf := DefaultConfig(c.GlobalString(flagHome))
	if err := WriteConfig(conf); err != nil {
		return err
	}
	fmt.Printf("configuration written to %s\n", filepath.Join(conf.Home, configFile))
	return nil
}

var startCommand = cli.Command{
	Name:  "start",
	Usage: "run the ABCI server",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  flagBind,
			Usage: "address server listens on",
		},
		cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "log level: debug, info, error or none",
		},
		cli.StringFlag{
			Name:  flagMetricsAddr,
			Usage: "address of the prometheus metrics endpoint",
		},
		cli.BoolFlag{
			Name:  flagDebug,
			Usage: "call stack returned on error",
		},
	},
	Action: start,
}

// configFromContext loads the configuration file and applies the flags
// that were explicitly set.
func configFromContext(c *cli.Context) (Config, error) {
	conf, err := LoadConfig(c.GlobalString(flagHome))
	if err != nil {
		return conf, err
	}
	if c.IsSet(flagBind) {
		conf.Bind = c.String(flagBind)
	}
	if c.IsSet(flagLogLevel) {
		conf.LogLevel = c.String(flagLogLevel)
	}
	if c.IsSet(flagMetricsAddr) {
		conf.MetricsAddr = c.String(flagMetricsAddr)
	}
	if c.IsSet(flagDebug) {
		conf.Debug = c.Bool(flagDebug)
	}
	return conf, conf.Validate()
}
