package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ontanj/cmatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMain simulates a CLI execution and returns what it printed on stdout.
func runMain(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := Main(args)

	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return out, runErr
}

func writeOrders(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "order.json")
	content := `{"pair": "BTC/USDT", "buy_orders": [10, 20], "sell_orders": [15]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := runMain(t, "version")
	require.NoError(t, err)
	assert.Contains(t, string(out), "cmatch dev")
}

func TestMatchJSON(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "cmatch.prom")
	out, err := runMain(t, "match",
		"--orders", writeOrders(t, dir),
		"--format", "json",
		"--metrics.textfile", metricsPath,
	)
	require.NoError(t, err)

	var report cmatch.Report
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, cmatch.BuyAbundant, report.Direction)
	assert.Equal(t, "BTC/USDT", report.Pair)
	assert.Equal(t, uint64(15), report.TransactionVolume)
	assert.Equal(t, uint64(30), report.AddressableVolume)
	assert.Equal(t, []uint64{10, 0}, report.BuyFill)
	assert.Equal(t, []uint64{15}, report.SellFill)

	assert.FileExists(t, metricsPath)
}

func TestMatchFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cmatch.toml")
	_, err := runMain(t, "init", "--output", cfgPath)
	require.NoError(t, err)
	_, err = runMain(t, "init", "--output", cfgPath)
	assert.Error(t, err, "init does not replace a file without --force")

	orders := filepath.Join(dir, "order.yaml")
	require.NoError(t, os.WriteFile(orders, []byte("buy_orders: [5]\nsell_orders: [5]\n"), 0o600))

	out, err := runMain(t, "match", "--config", cfgPath, "--orders", orders, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Abundant side: buy")
	assert.Contains(t, string(out), "Buy fills: [5]")

	out, err = runMain(t, "match", "--config", cfgPath, "--orders", orders, "--matching.tie", "sell-abundant")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Abundant side: sell")
	assert.Contains(t, string(out), "Sell fills: [5]")
}

func TestMatchRejectsInput(t *testing.T) {
	dir := t.TempDir()
	orders := filepath.Join(dir, "order.json")
	require.NoError(t, os.WriteFile(orders, []byte(`{"buy_orders": [], "sell_orders": [3]}`), 0o600))

	_, err := runMain(t, "match", "--orders", orders)
	assert.ErrorIs(t, err, cmatch.ErrInput)

	_, err = runMain(t, "match")
	assert.Error(t, err, "--orders is required")
}
