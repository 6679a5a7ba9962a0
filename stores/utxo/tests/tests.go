// Package tests holds behavioral checks shared by every utxo.Store implementation.
package tests

import (
	"testing"

	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	Hash, _  = chainhash.NewHashFromStr("5e3bc5947f48cec766090aa17f309fd16259de029dcef5d306b514848c9687c7")
	Hash2, _ = chainhash.NewHashFromStr("663bc5947f48cec766090aa17f309fd16259de029dcef5d306b514848c9687c8")

	UTXO0 = model.NewUTXO(*Hash, 0)
	UTXO1 = model.NewUTXO(*Hash, 1)
	UTXO2 = model.NewUTXO(*Hash2, 0)
)

func newOutput(t *testing.T, value int64) *model.Output {
	key, err := bec.NewPrivateKey()
	require.NoError(t, err)

	return model.NewOutput(decimal.NewFromInt(value), key.PubKey())
}

// Store exercises membership, lookup, insertion and removal.
func Store(t *testing.T, db utxo.Store) {
	require.Equal(t, 0, db.Count())
	require.False(t, db.Contains(UTXO0))

	_, err := db.Get(UTXO0)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrTxNotFound))
	require.True(t, utxo.IsNotFound(err))

	out0 := newOutput(t, 10)
	db.Add(UTXO0, out0)

	require.True(t, db.Contains(UTXO0))
	require.False(t, db.Contains(UTXO1))
	require.Equal(t, 1, db.Count())

	got, err := db.Get(UTXO0)
	require.NoError(t, err)
	require.True(t, out0.Value.Equal(got.Value))
	require.True(t, out0.Address.IsEqual(got.Address))

	// overwrite keeps a single entry
	out0b := newOutput(t, 11)
	db.Add(UTXO0, out0b)
	require.Equal(t, 1, db.Count())

	got, err = db.Get(UTXO0)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(11).Equal(got.Value))

	require.True(t, db.Remove(UTXO0))
	require.False(t, db.Remove(UTXO0))
	require.False(t, db.Contains(UTXO0))
	require.Equal(t, 0, db.Count())
}

// Clone checks that a clone and its source never observe each other's mutations.
func Clone(t *testing.T, db utxo.Store) {
	db.Add(UTXO0, newOutput(t, 1))
	db.Add(UTXO1, newOutput(t, 2))

	clone := db.Clone()
	require.Equal(t, 2, clone.Count())

	clone.Remove(UTXO0)
	clone.Add(UTXO2, newOutput(t, 3))

	assert.True(t, db.Contains(UTXO0))
	assert.False(t, db.Contains(UTXO2))
	assert.Equal(t, 2, db.Count())

	// outputs are copied too
	cloned, err := clone.Get(UTXO1)
	require.NoError(t, err)

	cloned.Value = decimal.NewFromInt(100)

	original, err := db.Get(UTXO1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(original.Value))

	db.Remove(UTXO1)
	assert.True(t, clone.Contains(UTXO1))
}

// Iterate checks that every entry is visited in UTXO order and that iteration can stop early.
func Iterate(t *testing.T, db utxo.Store) {
	db.Add(UTXO2, newOutput(t, 3))
	db.Add(UTXO1, newOutput(t, 2))
	db.Add(UTXO0, newOutput(t, 1))

	var visited []model.UTXO

	db.Iterate(func(u model.UTXO, _ *model.Output) bool {
		visited = append(visited, u)
		return true
	})

	require.Equal(t, []model.UTXO{UTXO0, UTXO1, UTXO2}, visited)

	count := 0

	db.Iterate(func(model.UTXO, *model.Output) bool {
		count++
		return false
	})

	assert.Equal(t, 1, count)

	// removing while iterating is allowed
	db.Iterate(func(u model.UTXO, _ *model.Output) bool {
		db.Remove(u)
		return true
	})

	assert.Equal(t, 0, db.Count())
}
