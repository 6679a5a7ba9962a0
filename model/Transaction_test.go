package model

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *bec.PrivateKey {
	t.Helper()

	key, err := bec.NewPrivateKey()
	require.NoError(t, err)

	return key
}

func testTx(t *testing.T) (*Transaction, *bec.PrivateKey) {
	t.Helper()

	owner := newKey(t)
	receiver := newKey(t)

	tx := NewTransaction()
	tx.AddInput(chainhash.DoubleHashH([]byte("coinbase")), 0)
	tx.AddOutput(decimal.NewFromInt(7), receiver.PubKey())

	return tx, owner
}

func TestTransaction_Finalize(t *testing.T) {
	t.Run("hash is nil until finalized", func(t *testing.T) {
		tx, _ := testTx(t)
		assert.Nil(t, tx.Hash())
		assert.False(t, tx.IsFinalized())
		assert.Equal(t, "<unfinalized>", tx.String())

		hash := tx.Finalize()
		require.NotNil(t, hash)
		assert.True(t, tx.IsFinalized())
		assert.Equal(t, hash.String(), tx.String())
	})

	t.Run("finalize is deterministic", func(t *testing.T) {
		tx, _ := testTx(t)
		first := *tx.Finalize()
		second := *tx.Finalize()
		assert.Equal(t, first, second)
	})

	t.Run("mutation clears the hash", func(t *testing.T) {
		tx, owner := testTx(t)

		tx.Finalize()
		tx.AddOutput(decimal.NewFromInt(1), owner.PubKey())
		assert.Nil(t, tx.Hash())

		tx.Finalize()
		tx.AddInput(chainhash.Hash{}, 1)
		assert.Nil(t, tx.Hash())

		tx.Finalize()
		require.NoError(t, tx.AddSignature([]byte{1, 2, 3}, 0))
		assert.Nil(t, tx.Hash())

		tx.Finalize()
		require.NoError(t, tx.RemoveInput(1))
		assert.Nil(t, tx.Hash())
	})

	t.Run("signatures change the identity", func(t *testing.T) {
		tx, owner := testTx(t)
		unsigned := *tx.Finalize()

		require.NoError(t, Sign(owner, tx, 0))
		signed := *tx.Finalize()

		assert.NotEqual(t, unsigned, signed)
	})
}

func TestTransaction_RawDataToSign(t *testing.T) {
	t.Run("excludes signatures", func(t *testing.T) {
		tx, owner := testTx(t)
		before := tx.RawDataToSign(0)

		require.NoError(t, Sign(owner, tx, 0))
		assert.Equal(t, before, tx.RawDataToSign(0))
	})

	t.Run("binds the input position", func(t *testing.T) {
		tx, _ := testTx(t)
		tx.AddInput(tx.Inputs[0].PrevTxHash, tx.Inputs[0].OutputIndex)

		assert.NotEqual(t, tx.RawDataToSign(0), tx.RawDataToSign(1))
	})

	t.Run("covers outputs", func(t *testing.T) {
		tx, owner := testTx(t)
		before := tx.RawDataToSign(0)

		tx.Outputs[0].Value = decimal.NewFromInt(8)
		assert.NotEqual(t, before, tx.RawDataToSign(0))

		tx.Outputs[0].Address = owner.PubKey()
		assert.NotEqual(t, before, tx.RawDataToSign(0))
	})

	t.Run("out of range", func(t *testing.T) {
		tx, _ := testTx(t)
		assert.Nil(t, tx.RawDataToSign(-1))
		assert.Nil(t, tx.RawDataToSign(1))
	})
}

func TestTransaction_InputMutators(t *testing.T) {
	tx, _ := testTx(t)

	require.Error(t, tx.RemoveInput(5))
	require.Error(t, tx.AddSignature([]byte{1}, -1))

	signature := []byte{1, 2, 3}
	require.NoError(t, tx.AddSignature(signature, 0))

	signature[0] = 9
	assert.Equal(t, byte(1), tx.Inputs[0].Signature[0])

	require.NoError(t, tx.RemoveInput(0))
	assert.Empty(t, tx.Inputs)
}

func TestSign(t *testing.T) {
	tx, owner := testTx(t)
	require.NoError(t, Sign(owner, tx, 0))

	sig, err := bec.ParseDERSignature(tx.Inputs[0].Signature)
	require.NoError(t, err)

	digest := MessageDigest(tx.RawDataToSign(0))
	assert.True(t, sig.Verify(digest, owner.PubKey()))
	assert.False(t, sig.Verify(digest, newKey(t).PubKey()))

	require.Error(t, Sign(owner, tx, 3))
}

func TestTransaction_TotalOutputValue(t *testing.T) {
	tx, owner := testTx(t)
	tx.AddOutput(decimal.RequireFromString("0.5"), owner.PubKey())

	assert.True(t, decimal.RequireFromString("7.5").Equal(tx.TotalOutputValue()))
	assert.True(t, decimal.Zero.Equal(NewTransaction().TotalOutputValue()))
}

func TestOutput_Clone(t *testing.T) {
	owner := newKey(t)
	output := NewOutput(decimal.NewFromInt(3), owner.PubKey())

	clone := output.Clone()
	require.NotNil(t, clone)
	assert.NotSame(t, output.Address, clone.Address)
	assert.True(t, output.Address.IsEqual(clone.Address))
	assert.True(t, output.Value.Equal(clone.Value))

	clone.Value = decimal.NewFromInt(4)
	assert.True(t, decimal.NewFromInt(3).Equal(output.Value))

	var nilOutput *Output
	assert.Nil(t, nilOutput.Clone())
}

func TestTransaction_JSON(t *testing.T) {
	tx, owner := testTx(t)
	require.NoError(t, Sign(owner, tx, 0))
	hash := *tx.Finalize()

	data, err := tx.MarshalJSON()
	require.NoError(t, err)

	decoded := &Transaction{}
	require.NoError(t, decoded.UnmarshalJSON(data))

	require.NotNil(t, decoded.Hash())
	assert.Equal(t, hash, *decoded.Hash())
	assert.Equal(t, tx.Inputs[0].Signature, decoded.Inputs[0].Signature)
	assert.True(t, tx.Outputs[0].Address.IsEqual(decoded.Outputs[0].Address))

	t.Run("mismatching hash", func(t *testing.T) {
		bad := []byte(`{"hash":"` + chainhash.Hash{}.String() + `","inputs":[],"outputs":[]}`)
		require.Error(t, (&Transaction{}).UnmarshalJSON(bad))
	})

	t.Run("invalid value", func(t *testing.T) {
		bad := []byte(`{"inputs":[],"outputs":[{"value":"abc","address":""}]}`)
		require.Error(t, (&Transaction{}).UnmarshalJSON(bad))
	})

	t.Run("invalid address", func(t *testing.T) {
		bad := []byte(`{"inputs":[],"outputs":[{"value":"1","address":"zz"}]}`)
		require.Error(t, (&Transaction{}).UnmarshalJSON(bad))
	})
}

func TestTransaction_DirectFieldEdits(t *testing.T) {
	tx, owner := testTx(t)
	hash := *tx.Finalize()
	require.True(t, tx.IsFinalized())

	tx.Outputs[0].Value = decimal.NewFromInt(9)
	assert.False(t, tx.IsFinalized())

	tx.Outputs = append(tx.Outputs, NewOutput(decimal.NewFromInt(1), owner.PubKey()))
	assert.False(t, tx.IsFinalized())

	refreshed := *tx.Finalize()
	assert.True(t, tx.IsFinalized())
	assert.NotEqual(t, hash, refreshed)

	var nilTx *Transaction
	assert.False(t, nilTx.IsFinalized())
}

func TestTransaction_NilEntries(t *testing.T) {
	tx, _ := testTx(t)
	tx.Inputs = append(tx.Inputs, nil)
	tx.Outputs = append(tx.Outputs, nil)

	require.NotPanics(t, func() {
		tx.Finalize()
		tx.RawDataToSign(1)
	})

	assert.True(t, tx.IsFinalized())
	assert.True(t, decimal.NewFromInt(7).Equal(tx.TotalOutputValue()))
}
