package utxo

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
)

// Store is the set of currently unspent outputs, keyed by UTXO. A UTXO maps to at most one
// output. Implementations are not required to be safe for concurrent use.
type Store interface {
	Contains(u model.UTXO) bool
	// Get returns an ERR_TX_NOT_FOUND error when u is not in the store.
	Get(u model.UTXO) (*model.Output, error)
	// Add inserts or overwrites the output for u.
	Add(u model.UTXO, output *model.Output)
	// Remove reports whether u was present.
	Remove(u model.UTXO) bool
	Count() int
	// Clone returns an independent deep copy.
	Clone() Store
	// Iterate calls fn for each entry until fn returns false. Entries are visited in UTXO order.
	Iterate(fn func(u model.UTXO, output *model.Output) bool)
}
