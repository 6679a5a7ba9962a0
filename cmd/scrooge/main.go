// Package main is a command line tool for checking and applying batches of transactions against
// a UTXO pool.
//
// Usage:
//
//	scrooge validate --file batch.json
//	scrooge handle --file batch.json
//	scrooge keygen
//	scrooge sign --file tx.json --key <hex> --input 0
package main

import (
	"io"
	"os"

	"github.com/Diffblue-benchmarks/ScroogeCoin/settings"
	"github.com/Diffblue-benchmarks/ScroogeCoin/ulogger"
	"github.com/urfave/cli/v2"
)

func main() {
	tSettings := settings.NewSettings()

	logger := ulogger.New(tSettings.ClientName,
		ulogger.WithLevel(tSettings.LogLevel),
		ulogger.WithLoggerType(tSettings.LoggerType),
		ulogger.WithWriter(os.Stderr),
		ulogger.WithPretty(tSettings.PrettyLogs),
	)

	if err := newApp(logger, tSettings, os.Stdout).Run(os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}

func newApp(logger ulogger.Logger, tSettings *settings.Settings, out io.Writer) *cli.App {
	fileFlag := &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "path of the JSON file to read",
		Required: true,
	}

	strategyFlag := &cli.StringFlag{
		Name:  "strategy",
		Usage: "batch ordering: greedy or fee",
		Value: tSettings.Ledger.SelectionStrategy,
	}

	zeroFeeFlag := &cli.BoolFlag{
		Name:  "allow-zero-fee",
		Usage: "accept transactions whose outputs equal their inputs",
		Value: tSettings.Ledger.AllowZeroFee,
	}

	c := &commands{
		logger:   logger,
		settings: tSettings,
		out:      out,
	}

	return &cli.App{
		Name:      "scrooge",
		Usage:     "validate and apply transactions against a UTXO pool",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "report whether each transaction in the batch is valid against the pool, without applying any",
				Action: c.validate,
				Flags:  []cli.Flag{fileFlag, zeroFeeFlag},
			},
			{
				Name:   "handle",
				Usage:  "apply the batch to the pool and print the accepted transactions and the resulting pool",
				Action: c.handle,
				Flags:  []cli.Flag{fileFlag, strategyFlag, zeroFeeFlag},
			},
			{
				Name:   "keygen",
				Usage:  "generate a secp256k1 key pair",
				Action: c.keygen,
			},
			{
				Name:   "sign",
				Usage:  "sign one input of a transaction and print the finalized transaction",
				Action: c.sign,
				Flags: []cli.Flag{
					fileFlag,
					&cli.StringFlag{
						Name:     "key",
						Usage:    "hex encoded private key",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "input",
						Usage: "index of the input to sign",
					},
				},
			},
		},
	}
}
