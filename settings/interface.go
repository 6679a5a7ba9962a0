package settings

// LedgerSettings configures the transaction validator and the UTXO pool it owns.
type LedgerSettings struct {
	// SelectionStrategy names the batch ordering policy: "greedy" or "fee".
	SelectionStrategy string
	// AllowZeroFee accepts transactions whose outputs equal their inputs. Off by default.
	AllowZeroFee        bool
	InitialPoolCapacity int
	MetricsEnabled      bool
}

type Settings struct {
	ClientName string
	LogLevel   string
	LoggerType string
	PrettyLogs bool
	Ledger     LedgerSettings
}
