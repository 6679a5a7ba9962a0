package validator

import (
	"testing"

	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestValidatorMetrics(t *testing.T) {
	f := newFixture(t)
	v := newValidator(t, f)

	acceptedBefore := testutil.ToFloat64(prometheusValidatorAcceptedTransactions)
	rejected := prometheusValidatorRejectedTransactions.WithLabelValues(ReasonValueInflation.String())
	rejectedBefore := testutil.ToFloat64(rejected)

	valid := buildTx(t, f.alice, []model.UTXO{f.u0}, txOutput{7, f.bob})
	noFee := buildTx(t, f.alice, []model.UTXO{f.u1}, txOutput{5, f.bob})

	accepted := v.HandleTxs([]*model.Transaction{valid, noFee})
	assert.Len(t, accepted, 1)

	assert.InDelta(t, acceptedBefore+1, testutil.ToFloat64(prometheusValidatorAcceptedTransactions), 0)
	assert.InDelta(t, rejectedBefore+1, testutil.ToFloat64(rejected), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(prometheusValidatorPoolSize), 0)
}
