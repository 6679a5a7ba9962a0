package validator

import (
	"sort"

	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/Diffblue-benchmarks/ScroogeCoin/settings"
	"github.com/Diffblue-benchmarks/ScroogeCoin/stores/utxo"
	"github.com/shopspring/decimal"
)

// SelectionStrategy decides the order in which a batch is offered to the validator. It must not
// drop or duplicate candidates and must not modify view. Validity is still decided per
// transaction, against the pool as it stands when that transaction's turn comes.
type SelectionStrategy interface {
	Name() string
	Order(candidates []*model.Transaction, view utxo.Store) []*model.Transaction
}

// NewSelectionStrategy returns the strategy registered under name.
func NewSelectionStrategy(name string) (SelectionStrategy, error) {
	switch name {
	case "", settings.SelectionStrategyGreedy:
		return GreedyStrategy{}, nil
	case settings.SelectionStrategyFee:
		return FeeStrategy{}, nil
	default:
		return nil, errors.NewConfigurationError("unknown selection strategy %q", name)
	}
}

// GreedyStrategy keeps the candidates in the order they were given.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string {
	return settings.SelectionStrategyGreedy
}

func (GreedyStrategy) Order(candidates []*model.Transaction, _ utxo.Store) []*model.Transaction {
	ordered := make([]*model.Transaction, len(candidates))
	copy(ordered, candidates)

	return ordered
}

// FeeStrategy offers the highest paying transactions first. Fees are computed against view, the
// pool at the start of the batch. Transactions whose fee cannot be computed there, for example
// because they spend an output created earlier in the same batch, go last. Ties keep input order.
type FeeStrategy struct{}

func (FeeStrategy) Name() string {
	return settings.SelectionStrategyFee
}

func (FeeStrategy) Order(candidates []*model.Transaction, view utxo.Store) []*model.Transaction {
	type ranked struct {
		tx       *model.Transaction
		fee      decimal.Decimal
		resolved bool
	}

	items := make([]ranked, 0, len(candidates))

	for _, tx := range candidates {
		item := ranked{tx: tx}

		if tx != nil {
			if fee, err := Fee(view, tx); err == nil {
				item.fee = fee
				item.resolved = true
			}
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].resolved != items[j].resolved {
			return items[i].resolved
		}

		return items[i].fee.GreaterThan(items[j].fee)
	})

	ordered := make([]*model.Transaction, 0, len(items))
	for _, item := range items {
		ordered = append(ordered, item.tx)
	}

	return ordered
}
