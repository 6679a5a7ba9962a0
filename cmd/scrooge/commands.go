package main

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/services/validator"
	"github.com/Diffblue-benchmarks/ScroogeCoin/settings"
	"github.com/Diffblue-benchmarks/ScroogeCoin/ulogger"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/urfave/cli/v2"
)

type commands struct {
	logger   ulogger.Logger
	settings *settings.Settings
	out      io.Writer
}

type validateResult struct {
	Hash   string `json:"hash"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

type handleResult struct {
	Accepted []string    `json:"accepted"`
	Pool     []poolEntry `json:"pool"`
}

type keyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

func (c *commands) newValidator(cCtx *cli.Context, b *batch) (*validator.Validator, error) {
	store, err := b.store(c.settings.Ledger.InitialPoolCapacity)
	if err != nil {
		return nil, err
	}

	opts := []validator.Option{
		validator.WithAllowZeroFee(cCtx.Bool("allow-zero-fee")),
	}

	if cCtx.IsSet("strategy") {
		strategy, err := validator.NewSelectionStrategy(cCtx.String("strategy"))
		if err != nil {
			return nil, err
		}

		opts = append(opts, validator.WithSelectionStrategy(strategy))
	}

	return validator.New(c.logger, c.settings, store, opts...)
}

// validate checks every transaction against the initial pool. Nothing is applied, so
// transactions that depend on each other are each judged on their own.
func (c *commands) validate(cCtx *cli.Context) error {
	b, err := readBatch(cCtx.String("file"))
	if err != nil {
		return err
	}

	v, err := c.newValidator(cCtx, b)
	if err != nil {
		return err
	}

	results := make([]validateResult, 0, len(b.Transactions))

	for _, tx := range b.Transactions {
		reason := v.ValidateTx(tx)

		results = append(results, validateResult{
			Hash:   tx.String(),
			Valid:  reason.IsValid(),
			Reason: reason.String(),
		})
	}

	return c.write(results)
}

func (c *commands) handle(cCtx *cli.Context) error {
	b, err := readBatch(cCtx.String("file"))
	if err != nil {
		return err
	}

	v, err := c.newValidator(cCtx, b)
	if err != nil {
		return err
	}

	accepted := v.HandleTxs(b.Transactions)

	c.logger.Infof("[handle] accepted %d of %d transactions", len(accepted), len(b.Transactions))

	result := handleResult{
		Accepted: make([]string, 0, len(accepted)),
		Pool:     poolEntries(v.Pool()),
	}

	for _, tx := range accepted {
		result.Accepted = append(result.Accepted, tx.String())
	}

	return c.write(result)
}

func (c *commands) keygen(_ *cli.Context) error {
	privateKey, err := bec.NewPrivateKey()
	if err != nil {
		return errors.NewProcessingError("could not generate key", err)
	}

	return c.write(keyPair{
		PrivateKey: hex.EncodeToString(privateKey.Serialize()),
		PublicKey:  hex.EncodeToString(privateKey.PubKey().Compressed()),
	})
}

func (c *commands) sign(cCtx *cli.Context) error {
	data, err := os.ReadFile(cCtx.String("file"))
	if err != nil {
		return errors.NewProcessingError("could not read %s", cCtx.String("file"), err)
	}

	tx := &model.Transaction{}
	if err = tx.UnmarshalJSON(data); err != nil {
		return err
	}

	privateKey, err := bec.PrivateKeyFromHex(cCtx.String("key"))
	if err != nil {
		return errors.NewInvalidArgumentError("invalid private key", err)
	}

	if err = model.Sign(privateKey, tx, cCtx.Int("input")); err != nil {
		return err
	}

	tx.Finalize()

	return c.write(tx)
}

func (c *commands) write(v interface{}) error {
	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return errors.NewProcessingError("could not write output", err)
	}

	return nil
}
