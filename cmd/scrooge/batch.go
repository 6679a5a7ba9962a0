package main

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo/memory"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// poolEntry is one UTXO and the output it holds.
type poolEntry struct {
	Hash    string `json:"hash"`
	Index   uint32 `json:"index"`
	Value   string `json:"value"`
	Address string `json:"address"`
}

// batch is the file format read by the validate and handle commands.
type batch struct {
	Pool         []poolEntry          `json:"pool"`
	Transactions []*model.Transaction `json:"transactions"`
}

func readBatch(path string) (*batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewProcessingError("could not open %s", path, err)
	}
	defer f.Close()

	return decodeBatch(f)
}

func decodeBatch(r io.Reader) (*batch, error) {
	b := &batch{}

	if err := json.NewDecoder(r).Decode(b); err != nil {
		return nil, errors.NewInvalidArgumentError("could not decode batch", err)
	}

	return b, nil
}

// store builds a pool from the batch entries. A UTXO listed twice is an error.
func (b *batch) store(capacity int) (utxo.Store, error) {
	if capacity < len(b.Pool) {
		capacity = len(b.Pool)
	}

	pool := memory.New(capacity)

	for i, entry := range b.Pool {
		hash, err := chainhash.NewHashFromStr(entry.Hash)
		if err != nil {
			return nil, errors.NewInvalidArgumentError("pool entry %d has invalid hash", i, err)
		}

		u := model.NewUTXO(*hash, entry.Index)
		if pool.Contains(u) {
			return nil, errors.NewTxAlreadyExistsError("pool entry %d repeats utxo %s", i, u)
		}

		value, err := decimal.NewFromString(entry.Value)
		if err != nil {
			return nil, errors.NewInvalidArgumentError("pool entry %d has invalid value %q", i, entry.Value, err)
		}

		address, err := model.ParsePublicKey(entry.Address)
		if err != nil {
			return nil, errors.NewInvalidArgumentError("pool entry %d has invalid address", i, err)
		}

		pool.Add(u, model.NewOutput(value, address))
	}

	return pool, nil
}

func poolEntries(store utxo.Store) []poolEntry {
	entries := make([]poolEntry, 0, store.Count())

	store.Iterate(func(u model.UTXO, output *model.Output) bool {
		entry := poolEntry{
			Hash:  u.Hash.String(),
			Index: u.Index,
			Value: output.Value.String(),
		}

		if output.Address != nil {
			entry.Address = hex.EncodeToString(output.Address.Compressed())
		}

		entries = append(entries, entry)

		return true
	})

	return entries
}
