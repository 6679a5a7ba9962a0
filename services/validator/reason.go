package validator

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
)

// Reason is the outcome of validating a single transaction.
type Reason int

const (
	ReasonValid Reason = iota
	ReasonMissingUTXO
	ReasonBadSignature
	ReasonDoubleClaim
	ReasonNegativeOutput
	ReasonValueInflation
	// ReasonMalformed covers a nil transaction, one that was never finalized, or nil entries.
	ReasonMalformed
)

var reasonNames = map[Reason]string{
	ReasonValid:          "VALID",
	ReasonMissingUTXO:    "MISSING_UTXO",
	ReasonBadSignature:   "BAD_SIGNATURE",
	ReasonDoubleClaim:    "DOUBLE_CLAIM",
	ReasonNegativeOutput: "NEGATIVE_OUTPUT",
	ReasonValueInflation: "VALUE_INFLATION",
	ReasonMalformed:      "MALFORMED",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}

	return "UNKNOWN"
}

func (r Reason) IsValid() bool {
	return r == ReasonValid
}

// ReasonFromError maps a validation error onto its Reason using the error code. Errors without a
// known validation code are reported as malformed.
func ReasonFromError(err error) Reason {
	if err == nil {
		return ReasonValid
	}

	switch errors.CodeOf(err) {
	case errors.ERR_TX_MISSING_UTXO, errors.ERR_TX_NOT_FOUND:
		return ReasonMissingUTXO
	case errors.ERR_TX_BAD_SIGNATURE:
		return ReasonBadSignature
	case errors.ERR_TX_DOUBLE_CLAIM:
		return ReasonDoubleClaim
	case errors.ERR_TX_NEGATIVE_OUTPUT:
		return ReasonNegativeOutput
	case errors.ERR_TX_VALUE_INFLATION:
		return ReasonValueInflation
	default:
		return ReasonMalformed
	}
}
