package validator

import (
	"testing"

	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/settings"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo/memory"
	"github.com/Diffblue-benchmarks/ScroogeCoin/ulogger"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	alice *bec.PrivateKey
	bob   *bec.PrivateKey
	pool  *memory.Pool
	// u0 holds 10 owned by alice, u1 holds 5 owned by alice
	u0 model.UTXO
	u1 model.UTXO
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	alice, err := bec.NewPrivateKey()
	require.NoError(t, err)

	bob, err := bec.NewPrivateKey()
	require.NoError(t, err)

	hashA := chainhash.DoubleHashH([]byte("genesis"))

	f := &fixture{
		alice: alice,
		bob:   bob,
		pool:  memory.New(16),
		u0:    model.NewUTXO(hashA, 0),
		u1:    model.NewUTXO(hashA, 1),
	}

	f.pool.Add(f.u0, model.NewOutput(decimal.NewFromInt(10), alice.PubKey()))
	f.pool.Add(f.u1, model.NewOutput(decimal.NewFromInt(5), alice.PubKey()))

	return f
}

type txOutput struct {
	value int64
	to    *bec.PrivateKey
}

// buildTx creates a finalized transaction spending inputs with signer and paying outputs.
func buildTx(t *testing.T, signer *bec.PrivateKey, inputs []model.UTXO, outputs ...txOutput) *model.Transaction {
	t.Helper()

	tx := model.NewTransaction()

	for _, u := range inputs {
		tx.AddInput(u.Hash, u.Index)
	}

	for _, o := range outputs {
		tx.AddOutput(decimal.NewFromInt(o.value), o.to.PubKey())
	}

	for i := range tx.Inputs {
		require.NoError(t, model.Sign(signer, tx, i))
	}

	tx.Finalize()

	return tx
}

func testSettings() *settings.Settings {
	return &settings.Settings{
		ClientName: "scrooge-test",
		LogLevel:   "DEBUG",
		Ledger: settings.LedgerSettings{
			SelectionStrategy:   settings.SelectionStrategyGreedy,
			InitialPoolCapacity: 16,
			MetricsEnabled:      true,
		},
	}
}

func newValidator(t *testing.T, f *fixture, opts ...Option) *Validator {
	t.Helper()

	v, err := New(ulogger.TestLogger{}, testSettings(), f.pool, opts...)
	require.NoError(t, err)

	return v
}
