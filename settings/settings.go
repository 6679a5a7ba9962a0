package settings

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
)

const (
	SelectionStrategyGreedy = "greedy"
	SelectionStrategyFee    = "fee"
)

func NewSettings() *Settings {
	return &Settings{
		ClientName: getString("clientName", "scrooge"),
		LogLevel:   getString("logLevel", "INFO"),
		LoggerType: getString("logger_type", "zerolog"),
		PrettyLogs: getBool("PRETTY_LOGS", true),
		Ledger: LedgerSettings{
			SelectionStrategy:   getString("ledger_selectionStrategy", SelectionStrategyGreedy),
			AllowZeroFee:        getBool("ledger_allowZeroFee", false),
			InitialPoolCapacity: getInt("ledger_initialPoolCapacity", 1024),
			MetricsEnabled:      getBool("ledger_metricsEnabled", true),
		},
	}
}

// Validate reports the first setting that cannot be used as-is.
func (s *Settings) Validate() error {
	switch s.Ledger.SelectionStrategy {
	case "", SelectionStrategyGreedy, SelectionStrategyFee:
	default:
		return errors.NewConfigurationError("unknown ledger_selectionStrategy %q", s.Ledger.SelectionStrategy)
	}

	if s.Ledger.InitialPoolCapacity < 0 {
		return errors.NewConfigurationError("ledger_initialPoolCapacity must not be negative, got %d", s.Ledger.InitialPoolCapacity)
	}

	return nil
}
