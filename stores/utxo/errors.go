package utxo

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
)

// NewNotFoundError returns the error stores give for a UTXO they do not hold. The UTXO is attached
// as error data under the "utxo" key.
func NewNotFoundError(u model.UTXO) error {
	err := errors.New(errors.ERR_TX_NOT_FOUND, "utxo %s not found", u)
	err.SetData("utxo", u.String())

	return err
}

// IsNotFound reports whether err is a missing UTXO error from a Store.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrTxNotFound)
}
