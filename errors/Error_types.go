package errors

var (
	ErrUnknown          = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument  = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound         = New(ERR_NOT_FOUND, "not found")
	ErrProcessing       = New(ERR_PROCESSING, "error processing")
	ErrConfiguration    = New(ERR_CONFIGURATION, "configuration error")
	ErrError            = New(ERR_ERROR, "generic error")
	ErrTxNotFound       = New(ERR_TX_NOT_FOUND, "tx not found")
	ErrTxInvalid        = New(ERR_TX_INVALID, "tx invalid")
	ErrTxAlreadyExists  = New(ERR_TX_ALREADY_EXISTS, "tx already exists")
	ErrTxMissingUTXO    = New(ERR_TX_MISSING_UTXO, "tx input references a missing utxo")
	ErrTxBadSignature   = New(ERR_TX_BAD_SIGNATURE, "tx input signature is invalid")
	ErrTxDoubleClaim    = New(ERR_TX_DOUBLE_CLAIM, "tx claims the same utxo more than once")
	ErrTxNegativeOutput = New(ERR_TX_NEGATIVE_OUTPUT, "tx output value is negative")
	ErrTxValueInflation = New(ERR_TX_VALUE_INFLATION, "tx outputs exceed inputs")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewTxNotFoundError(message string, params ...interface{}) error {
	return New(ERR_TX_NOT_FOUND, message, params...)
}
func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}
func NewTxAlreadyExistsError(message string, params ...interface{}) error {
	return New(ERR_TX_ALREADY_EXISTS, message, params...)
}
func NewTxMissingUTXOError(message string, params ...interface{}) error {
	return New(ERR_TX_MISSING_UTXO, message, params...)
}
func NewTxBadSignatureError(message string, params ...interface{}) error {
	return New(ERR_TX_BAD_SIGNATURE, message, params...)
}
func NewTxDoubleClaimError(message string, params ...interface{}) error {
	return New(ERR_TX_DOUBLE_CLAIM, message, params...)
}
func NewTxNegativeOutputError(message string, params ...interface{}) error {
	return New(ERR_TX_NEGATIVE_OUTPUT, message, params...)
}
func NewTxValueInflationError(message string, params ...interface{}) error {
	return New(ERR_TX_VALUE_INFLATION, message, params...)
}
