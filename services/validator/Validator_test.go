package validator

import (
	"sync"
	"testing"

	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/settings"
	"github.com/Diffblue-benchmarks/ScroogeCoin/ulogger"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_New(t *testing.T) {
	t.Run("copies the store", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		f.pool.Remove(f.u0)

		tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
		assert.True(t, v.IsValidTx(tx))
	})

	t.Run("nil store", func(t *testing.T) {
		v, err := New(ulogger.TestLogger{}, testSettings(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, v.Pool().Count())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		s := testSettings()
		s.Ledger.SelectionStrategy = "random"

		_, err := New(ulogger.TestLogger{}, s, nil)
		require.Error(t, err)
	})

	t.Run("zero fee from settings", func(t *testing.T) {
		f := newFixture(t)
		s := testSettings()
		s.Ledger.AllowZeroFee = true

		v, err := New(ulogger.TestLogger{}, s, f.pool)
		require.NoError(t, err)

		tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{10, f.bob})
		assert.True(t, v.IsValidTx(tx))

		// the option wins over settings
		v, err = New(ulogger.TestLogger{}, s, f.pool, WithAllowZeroFee(false))
		require.NoError(t, err)
		assert.False(t, v.IsValidTx(tx))
	})
}

func TestValidator_IsValidTx(t *testing.T) {
	f := newFixture(t)
	v := newValidator(t, f)

	valid := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
	noFee := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{10, f.bob})

	assert.True(t, v.IsValidTx(valid))
	assert.True(t, v.IsValidTx(valid))
	assert.False(t, v.IsValidTx(noFee))
	assert.False(t, v.IsValidTx(noFee))

	assert.Equal(t, ReasonValid, v.ValidateTx(valid))
	assert.Equal(t, ReasonValueInflation, v.ValidateTx(noFee))
	assert.Equal(t, ReasonMalformed, v.ValidateTx(nil))

	// validation never changes the pool
	assert.Equal(t, 2, v.Pool().Count())
}

func TestValidator_HandleTxs(t *testing.T) {
	t.Run("applies an accepted transaction", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})

		accepted := v.HandleTxs([]*model.Transaction{tx})
		require.Len(t, accepted, 1)
		assert.Same(t, tx, accepted[0])

		pool := v.Pool()
		assert.False(t, pool.Contains(f.u0))
		assert.True(t, pool.Contains(f.u1))

		created := model.NewUTXO(*tx.Hash(), 0)
		output, err := pool.Get(created)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(output.Value))
		assert.True(t, f.bob.PubKey().IsEqual(output.Address))

		// the fee is not put back
		assert.Equal(t, 2, pool.Count())
	})

	t.Run("drops invalid transactions", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		noFee := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{10, f.bob})
		forged := buildTx(t, f.bob, []model.UTXO{f.u1}, txOutput{1, f.bob})

		accepted := v.HandleTxs([]*model.Transaction{noFee, nil, forged})
		assert.Empty(t, accepted)
		assert.Equal(t, 2, v.Pool().Count())
	})

	t.Run("first of two conflicting transactions wins", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		t1 := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
		t2 := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{8, f.alice})

		accepted := v.HandleTxs([]*model.Transaction{t1, t2})
		require.Len(t, accepted, 1)
		assert.Same(t, t1, accepted[0])

		// f.pool itself was never touched
		v = newValidator(t, f)

		accepted = v.HandleTxs([]*model.Transaction{t2, t1})
		require.Len(t, accepted, 1)
		assert.Same(t, t2, accepted[0])
	})

	t.Run("spends outputs created earlier in the batch", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		parent := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
		child := buildTx(t, f.bob, []model.UTXO{model.NewUTXO(*parent.Hash(), 0)}, txOutput{6, f.alice})

		// the child comes first and cannot be applied yet
		accepted := v.HandleTxs([]*model.Transaction{child, parent})
		require.Len(t, accepted, 1)
		assert.Same(t, parent, accepted[0])

		accepted = v.HandleTxs([]*model.Transaction{child})
		require.Len(t, accepted, 1)

		pool := v.Pool()
		assert.False(t, pool.Contains(model.NewUTXO(*parent.Hash(), 0)))
		assert.True(t, pool.Contains(model.NewUTXO(*child.Hash(), 0)))
	})

	t.Run("the same transaction twice is applied once", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})

		accepted := v.HandleTxs([]*model.Transaction{tx, tx})
		assert.Len(t, accepted, 1)
	})

	t.Run("every output becomes a utxo", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		tx := buildTx(t, f.alice, []model.UTXO{f.u0, f.u1}, txOutput{3, f.bob}, txOutput{4, f.alice}, txOutput{0, f.bob})

		require.Len(t, v.HandleTxs([]*model.Transaction{tx}), 1)

		pool := v.Pool()
		assert.Equal(t, 3, pool.Count())

		for i := range tx.Outputs {
			assert.True(t, pool.Contains(model.NewUTXO(*tx.Hash(), uint32(i))))
		}
	})

	t.Run("pool does not alias transaction outputs", func(t *testing.T) {
		f := newFixture(t)
		v := newValidator(t, f)

		tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
		require.Len(t, v.HandleTxs([]*model.Transaction{tx}), 1)

		tx.Outputs[0].Value = decimal.NewFromInt(1000)

		output, err := v.Pool().Get(model.NewUTXO(*tx.Hash(), 0))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(output.Value))
	})
}

func TestValidator_Pool(t *testing.T) {
	f := newFixture(t)
	v := newValidator(t, f)

	snapshot := v.Pool()
	snapshot.Remove(f.u0)
	snapshot.Add(model.NewUTXO(chainhash.Hash{}, 0), model.NewOutput(decimal.NewFromInt(1000), f.bob.PubKey()))

	assert.Equal(t, 2, v.Pool().Count())
	assert.True(t, v.IsValidTx(buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})))
}

func TestValidator_FeeStrategy(t *testing.T) {
	f := newFixture(t)
	v := newValidator(t, f, WithSelectionStrategy(FeeStrategy{}))

	lowFee := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{9, f.bob})
	highFee := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{2, f.bob})

	accepted := v.HandleTxs([]*model.Transaction{lowFee, highFee})
	require.Len(t, accepted, 1)
	assert.Same(t, highFee, accepted[0])
}

func TestValidator_ConcurrentHandleTxs(t *testing.T) {
	f := newFixture(t)
	v := newValidator(t, f)

	const workers = 8

	candidates := make([]*model.Transaction, workers)
	for i := range candidates {
		candidates[i] = buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{int64(i + 1), f.bob})
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []*model.Transaction
	)

	for _, tx := range candidates {
		wg.Add(1)

		go func(tx *model.Transaction) {
			defer wg.Done()

			result := v.HandleTxs([]*model.Transaction{tx})

			mu.Lock()
			accepted = append(accepted, result...)
			mu.Unlock()
		}(tx)
	}

	wg.Wait()

	assert.Len(t, accepted, 1)
	assert.False(t, v.Pool().Contains(f.u0))
}

func TestNewSelectionStrategy(t *testing.T) {
	s, err := NewSelectionStrategy("")
	require.NoError(t, err)
	assert.Equal(t, settings.SelectionStrategyGreedy, s.Name())

	s, err = NewSelectionStrategy(settings.SelectionStrategyFee)
	require.NoError(t, err)
	assert.Equal(t, settings.SelectionStrategyFee, s.Name())

	_, err = NewSelectionStrategy("maximal")
	require.Error(t, err)
}

func TestFeeStrategy_Order(t *testing.T) {
	f := newFixture(t)

	fee1 := buildTx(t, f.alice, []model.UTXO{f.u1}, txOutput{4, f.bob})
	fee3 := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
	fee3b := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{6, f.bob}, txOutput{1, f.bob})
	unresolved := buildTx(t, f.alice, []model.UTXO{model.NewUTXO(chainhash.Hash{}, 3)}, txOutput{1, f.bob})

	candidates := []*model.Transaction{unresolved, fee1, nil, fee3, fee3b}

	ordered := FeeStrategy{}.Order(candidates, f.pool)
	assert.Equal(t, []*model.Transaction{fee3, fee3b, fee1, unresolved, nil}, ordered)

	// the input slice is left alone
	assert.Same(t, unresolved, candidates[0])

	greedy := GreedyStrategy{}.Order(candidates, f.pool)
	assert.Equal(t, candidates, greedy)
}

func TestFeeStrategy_NilEntries(t *testing.T) {
	f := newFixture(t)

	good := buildTx(t, f.alice, []model.UTXO{f.u1}, txOutput{4, f.bob})

	nilInput := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{1, f.bob})
	nilInput.Inputs = append(nilInput.Inputs, nil)
	nilInput.Finalize()

	nilOutput := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{2, f.bob})
	nilOutput.Outputs = append(nilOutput.Outputs, nil)
	nilOutput.Finalize()

	t.Run("order puts them last", func(t *testing.T) {
		var ordered []*model.Transaction

		require.NotPanics(t, func() {
			ordered = FeeStrategy{}.Order([]*model.Transaction{nilInput, nilOutput, good}, f.pool)
		})

		assert.Equal(t, []*model.Transaction{good, nilInput, nilOutput}, ordered)
	})

	t.Run("handle rejects them as malformed", func(t *testing.T) {
		v := newValidator(t, f, WithSelectionStrategy(FeeStrategy{}))

		assert.Equal(t, ReasonMalformed, v.ValidateTx(nilInput))
		assert.Equal(t, ReasonMalformed, v.ValidateTx(nilOutput))

		var accepted []*model.Transaction

		require.NotPanics(t, func() {
			accepted = v.HandleTxs([]*model.Transaction{good, nilInput, nilOutput})
		})

		require.Len(t, accepted, 1)
		assert.Same(t, good, accepted[0])
		assert.True(t, v.Pool().Contains(f.u0))
	})

	t.Run("fee reports them invalid", func(t *testing.T) {
		_, err := Fee(f.pool, nilInput)
		assert.Equal(t, ReasonMalformed, ReasonFromError(err))

		_, err = Fee(f.pool, nilOutput)
		assert.Equal(t, ReasonMalformed, ReasonFromError(err))

		_, err = Fee(f.pool, nil)
		assert.Equal(t, ReasonMalformed, ReasonFromError(err))
	})
}

func TestValidator_StaleIdentity(t *testing.T) {
	f := newFixture(t)
	v := newValidator(t, f)

	tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
	stale := *tx.Hash()

	// editing the fields directly leaves the stored identity behind
	tx.Outputs[0].Value = decimal.NewFromInt(6)
	assert.Equal(t, ReasonMalformed, v.ValidateTx(tx))
	assert.Empty(t, v.HandleTxs([]*model.Transaction{tx}))

	require.NoError(t, model.Sign(f.alice, tx, 0))
	tx.Finalize()
	require.Len(t, v.HandleTxs([]*model.Transaction{tx}), 1)

	pool := v.Pool()
	assert.False(t, pool.Contains(model.NewUTXO(stale, 0)))
	assert.True(t, pool.Contains(model.NewUTXO(*tx.Hash(), 0)))
}

func TestValidator_NilLogger(t *testing.T) {
	f := newFixture(t)

	var (
		v   *Validator
		err error
	)

	require.NotPanics(t, func() {
		v, err = New(nil, testSettings(), f.pool)
	})
	require.NoError(t, err)

	tx := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
	assert.Len(t, v.HandleTxs([]*model.Transaction{tx, nil}), 1)
}
