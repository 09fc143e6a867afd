package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ontanj/cmatch"
	"github.com/ontanj/cmatch/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulateRun(o *metrics.Observer) {
	o.DirectionSelected(cmatch.BuyAbundant)
	o.OrderDecided(cmatch.SideBuy, 0, true, nil)
	o.OrderDecided(cmatch.SideBuy, 1, false, nil)
	o.Completed(&cmatch.Report{
		Direction:         cmatch.BuyAbundant,
		TransactionVolume: 15,
		AddressableVolume: 30,
		BuyFill:           []uint64{10, 0},
		SellFill:          []uint64{15},
	})
}

func TestObserverCounts(t *testing.T) {
	o, err := metrics.NewObserver()
	require.NoError(t, err)
	simulateRun(o)

	expected := `
# HELP cmatch_comparisons_total Encrypted comparisons answered by the decryption oracle
# TYPE cmatch_comparisons_total counter
cmatch_comparisons_total 3
# HELP cmatch_fill_decisions_total Fill decisions on the trimmed side
# TYPE cmatch_fill_decisions_total counter
cmatch_fill_decisions_total{filled="false",side="buy"} 1
cmatch_fill_decisions_total{filled="true",side="buy"} 1
# HELP cmatch_runs_total Completed matching runs by trimmed side
# TYPE cmatch_runs_total counter
cmatch_runs_total{trimmed="buy"} 1
# HELP cmatch_transaction_volume Transaction volume of the last run
# TYPE cmatch_transaction_volume gauge
cmatch_transaction_volume 15
`
	err = testutil.GatherAndCompare(o.Registry(), strings.NewReader(expected),
		"cmatch_comparisons_total", "cmatch_fill_decisions_total", "cmatch_runs_total", "cmatch_transaction_volume")
	assert.NoError(t, err)
}

func TestWriteTextfile(t *testing.T) {
	o, err := metrics.NewObserver()
	require.NoError(t, err)
	simulateRun(o)

	path := filepath.Join(t.TempDir(), "cmatch.prom")
	require.NoError(t, o.WriteTextfile(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "cmatch_addressable_volume 30")
}

func TestConfig(t *testing.T) {
	cfg := metrics.NewDefaultConfig()
	assert.False(t, cfg.Enabled())
	cfg.Textfile = "out.prom"
	assert.True(t, cfg.Enabled())
}
