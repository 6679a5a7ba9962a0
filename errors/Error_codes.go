package errors

import "fmt"

// ERR is the numeric error code carried by every *Error.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_ERROR            ERR = 9

	ERR_TX_NOT_FOUND       ERR = 30
	ERR_TX_INVALID         ERR = 31
	ERR_TX_ALREADY_EXISTS  ERR = 33
	ERR_TX_MISSING_UTXO    ERR = 40
	ERR_TX_BAD_SIGNATURE   ERR = 41
	ERR_TX_DOUBLE_CLAIM    ERR = 42
	ERR_TX_NEGATIVE_OUTPUT ERR = 43
	ERR_TX_VALUE_INFLATION ERR = 44
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	9:  "ERROR",
	30: "TX_NOT_FOUND",
	31: "TX_INVALID",
	33: "TX_ALREADY_EXISTS",
	40: "TX_MISSING_UTXO",
	41: "TX_BAD_SIGNATURE",
	42: "TX_DOUBLE_CLAIM",
	43: "TX_NEGATIVE_OUTPUT",
	44: "TX_VALUE_INFLATION",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

// Enum returns the symbolic name of the code.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return fmt.Sprintf("ERR(%d)", int32(x))
}

func (x ERR) String() string {
	return x.Enum()
}
