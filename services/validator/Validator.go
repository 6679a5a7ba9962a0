package validator

import (
	"sync"
	"time"

	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/settings"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo/memory"
	"github.com/Diffblue-benchmarks/ScroogeCoin/ulogger"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
)

// Validator owns a UTXO pool and is the only way to read or change it. Every call takes the
// same lock, so validating and applying one transaction is atomic with respect to any other call.
type Validator struct {
	logger      ulogger.Logger
	settings    *settings.Settings
	txValidator TxValidatorI
	strategy    SelectionStrategy
	metrics     bool

	mu   sync.Mutex
	pool *memory.Pool
}

// New creates a validator over a private deep copy of store. Later changes to store are not seen
// by the validator, and the validator never changes store.
func New(logger ulogger.Logger, tSettings *settings.Settings, store utxo.Store, opts ...Option) (*Validator, error) {
	if logger == nil {
		logger = ulogger.TestLogger{}
	}

	if tSettings == nil {
		tSettings = settings.NewSettings()
	}

	if err := tSettings.Validate(); err != nil {
		return nil, err
	}

	options := ProcessOptions(opts...)

	strategy := options.strategy
	if strategy == nil {
		var err error
		if strategy, err = NewSelectionStrategy(tSettings.Ledger.SelectionStrategy); err != nil {
			return nil, err
		}
	}

	allowZeroFee := tSettings.Ledger.AllowZeroFee
	if options.allowZeroFee != nil {
		allowZeroFee = *options.allowZeroFee
	}

	var pool *memory.Pool
	if store == nil {
		pool = memory.New(tSettings.Ledger.InitialPoolCapacity)
	} else {
		pool = memory.NewFromStore(store)
	}

	v := &Validator{
		logger:      logger,
		settings:    tSettings,
		txValidator: NewTxValidator(logger, options.verifier, allowZeroFee),
		strategy:    strategy,
		metrics:     tSettings.Ledger.MetricsEnabled,
		pool:        pool,
	}

	if v.metrics {
		initPrometheusMetrics()
		prometheusValidatorPoolSize.Set(float64(pool.Count()))
	}

	logger.Infof("[Validator] created with %d utxos, strategy %s, allowZeroFee %t", pool.Count(), strategy.Name(), allowZeroFee)

	return v, nil
}

// IsValidTx reports whether tx could be applied to the pool as it stands now.
func (v *Validator) IsValidTx(tx *model.Transaction) bool {
	return v.ValidateTx(tx).IsValid()
}

// ValidateTx is IsValidTx with the reason for a rejection.
func (v *Validator) ValidateTx(tx *model.Transaction) Reason {
	return ReasonFromError(v.Validate(tx))
}

// Validate returns the coded error for the first check tx fails, or nil.
func (v *Validator) Validate(tx *model.Transaction) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.validate(tx)
}

// HandleTxs offers every candidate to the pool in the order chosen by the selection strategy.
// Each one is validated against the pool including the effects of transactions accepted before it
// in this batch. Accepted transactions are applied and returned in the order they were accepted;
// the rest are dropped without effect.
func (v *Validator) HandleTxs(txs []*model.Transaction) []*model.Transaction {
	start := time.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	ordered := v.strategy.Order(txs, v.pool)
	accepted := make([]*model.Transaction, 0, len(ordered))

	for _, tx := range ordered {
		if err := v.validate(tx); err != nil {
			continue
		}

		v.apply(tx)

		accepted = append(accepted, tx)
	}

	v.logger.Debugf("[HandleTxs] accepted %d of %d transactions, pool has %d utxos", len(accepted), len(txs), v.pool.Count())

	if v.metrics {
		prometheusValidatorBatchSize.Observe(float64(len(txs)))
		prometheusValidatorHandleTxs.Observe(time.Since(start).Seconds())
		prometheusValidatorPoolSize.Set(float64(v.pool.Count()))
	}

	return accepted
}

// Pool returns a deep copy of the current pool.
func (v *Validator) Pool() utxo.Store {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pool.Clone()
}

// validate must be called with mu held.
func (v *Validator) validate(tx *model.Transaction) error {
	start := time.Now()

	err := v.txValidator.Validate(v.pool, tx)

	if err != nil {
		reason := ReasonFromError(err)
		v.logger.Debugf("[Validate] rejected %s: %s: %v", tx, reason, err)

		if v.metrics {
			prometheusValidatorRejectedTransactions.WithLabelValues(reason.String()).Inc()
		}
	}

	if v.metrics {
		prometheusValidatorValidate.Observe(time.Since(start).Seconds())
	}

	return err
}

// apply consumes the inputs of tx and adds one UTXO per output. tx must have passed validate
// under the same lock.
func (v *Validator) apply(tx *model.Transaction) {
	for _, input := range tx.Inputs {
		if !v.pool.Remove(input.UTXO()) {
			// validate guarantees every input is present
			v.logger.Errorf("[apply] %s: %v", tx, errors.NewProcessingError("utxo %s vanished during apply", input.UTXO()))
		}
	}

	hash := *tx.Hash()

	for i, output := range tx.Outputs {
		// bounded by checkWellFormed
		index, _ := safeconversion.IntToUint32(i)

		v.pool.Add(model.NewUTXO(hash, index), output.Clone())
	}

	if v.metrics {
		prometheusValidatorAcceptedTransactions.Inc()
	}
}
