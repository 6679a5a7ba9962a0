/*
Package validator validates transactions against a UTXO pool and applies accepted ones to it.

TxValidator holds the per-transaction rules. Validator owns a private pool, serializes every
access to it, and applies batches in the order chosen by a SelectionStrategy.
*/
package validator

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo"
	"github.com/Diffblue-benchmarks/ScroogeCoin/ulogger"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/shopspring/decimal"
)

// TxValidatorI defines the contract for single transaction validation.
type TxValidatorI interface {
	// Validate checks tx against store without modifying either. It returns nil when tx is valid,
	// otherwise a coded error describing the first check that failed.
	Validate(store utxo.Store, tx *model.Transaction) error
}

// TxValidator implements transaction validation logic
type TxValidator struct {
	logger       ulogger.Logger
	verifier     SignatureVerifier
	allowZeroFee bool
}

// NewTxValidator creates a validator that checks signatures with verifier. When allowZeroFee is
// set, a transaction whose outputs add up to exactly its inputs is accepted.
func NewTxValidator(logger ulogger.Logger, verifier SignatureVerifier, allowZeroFee bool) *TxValidator {
	if verifier == nil {
		verifier = ECDSAVerifier{}
	}

	return &TxValidator{
		logger:       logger,
		verifier:     verifier,
		allowZeroFee: allowZeroFee,
	}
}

// Validate runs the checks below in order, each against the same store state:
//  1. every input references a UTXO in the store
//  2. every input carries a valid signature by the owner of the referenced output
//  3. no UTXO is claimed more than once
//  4. no output value is negative
//  5. the outputs add up to less than the inputs
func (tv *TxValidator) Validate(store utxo.Store, tx *model.Transaction) error {
	if err := tv.checkWellFormed(tx); err != nil {
		return err
	}

	// 1) existence
	if err := tv.checkInputsExist(store, tx); err != nil {
		return err
	}

	// 2) authorization
	if err := tv.checkSignatures(store, tx); err != nil {
		return err
	}

	// 3) no double claim
	if err := tv.checkDoubleClaims(tx); err != nil {
		return err
	}

	// 4) non-negative outputs
	if err := tv.checkOutputValues(tx); err != nil {
		return err
	}

	// 5) value conservation
	return tv.checkConservation(store, tx)
}

func (tv *TxValidator) checkWellFormed(tx *model.Transaction) error {
	if tx == nil {
		return errors.NewTxInvalidError("transaction is nil")
	}

	if !tx.IsFinalized() {
		return errors.NewTxInvalidError("transaction has not been finalized")
	}

	for i, input := range tx.Inputs {
		if input == nil {
			return errors.NewTxInvalidError("[%s] input %d is nil", tx, i)
		}
	}

	for i, output := range tx.Outputs {
		if output == nil {
			return errors.NewTxInvalidError("[%s] output %d is nil", tx, i)
		}
	}

	// every output must be addressable by a uint32 index
	if _, err := safeconversion.IntToUint32(len(tx.Outputs)); err != nil {
		return errors.NewTxInvalidError("[%s] too many outputs", tx, err)
	}

	return nil
}

func (tv *TxValidator) checkInputsExist(store utxo.Store, tx *model.Transaction) error {
	for i, input := range tx.Inputs {
		u := input.UTXO()
		if !store.Contains(u) {
			err := errors.New(errors.ERR_TX_MISSING_UTXO, "[%s] input %d references missing utxo %s", tx, i, u)
			err.SetData("utxo", u.String())

			return err
		}
	}

	return nil
}

func (tv *TxValidator) checkSignatures(store utxo.Store, tx *model.Transaction) error {
	for i, input := range tx.Inputs {
		output, err := store.Get(input.UTXO())
		if err != nil {
			return errors.NewTxMissingUTXOError("[%s] input %d could not be resolved", tx, i, err)
		}

		if !tv.verifier.Verify(output.Address, tx.RawDataToSign(i), input.Signature) {
			return errors.NewTxBadSignatureError("[%s] input %d has an invalid signature", tx, i)
		}
	}

	return nil
}

func (tv *TxValidator) checkDoubleClaims(tx *model.Transaction) error {
	claimed := make(map[model.UTXO]int, len(tx.Inputs))

	for i, input := range tx.Inputs {
		u := input.UTXO()
		if first, seen := claimed[u]; seen {
			return errors.NewTxDoubleClaimError("[%s] inputs %d and %d both claim utxo %s", tx, first, i, u)
		}

		claimed[u] = i
	}

	return nil
}

func (tv *TxValidator) checkOutputValues(tx *model.Transaction) error {
	for i, output := range tx.Outputs {
		if output.Value.IsNegative() {
			return errors.NewTxNegativeOutputError("[%s] output %d has negative value %s", tx, i, output.Value)
		}
	}

	return nil
}

func (tv *TxValidator) checkConservation(store utxo.Store, tx *model.Transaction) error {
	inputTotal, err := InputTotal(store, tx)
	if err != nil {
		return err
	}

	outputTotal := tx.TotalOutputValue()

	if outputTotal.LessThan(inputTotal) {
		return nil
	}

	if tv.allowZeroFee && outputTotal.Equal(inputTotal) {
		return nil
	}

	return errors.NewTxValueInflationError("[%s] outputs total %s, inputs total %s", tx, outputTotal, inputTotal)
}

// InputTotal sums the values of the outputs tx claims. It fails with ERR_TX_MISSING_UTXO when an
// input cannot be resolved in store, and with ERR_TX_INVALID for a nil transaction or input.
func InputTotal(store utxo.Store, tx *model.Transaction) (decimal.Decimal, error) {
	if tx == nil {
		return decimal.Zero, errors.NewTxInvalidError("transaction is nil")
	}

	total := decimal.Zero

	for i, input := range tx.Inputs {
		if input == nil {
			return decimal.Zero, errors.NewTxInvalidError("[%s] input %d is nil", tx, i)
		}

		output, err := store.Get(input.UTXO())
		if err != nil {
			return decimal.Zero, errors.NewTxMissingUTXOError("[%s] input %d could not be resolved", tx, i, err)
		}

		total = total.Add(output.Value)
	}

	return total, nil
}

// Fee is the amount by which the inputs of tx exceed its outputs.
func Fee(store utxo.Store, tx *model.Transaction) (decimal.Decimal, error) {
	inputTotal, err := InputTotal(store, tx)
	if err != nil {
		return decimal.Zero, err
	}

	for i, output := range tx.Outputs {
		if output == nil {
			return decimal.Zero, errors.NewTxInvalidError("[%s] output %d is nil", tx, i)
		}
	}

	return inputTotal.Sub(tx.TotalOutputValue()), nil
}
