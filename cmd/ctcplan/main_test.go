package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctcplan/ctc-planner/internal/config"
)

// run executes the CLI with a quiet settings file and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "ctcplan.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("logging:\n  level: error\n"), 0o644))

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func TestTakeHomeCommand(t *testing.T) {
	out, err := run(t, "take-home", "--ctc", "1200000")
	require.NoError(t, err)
	assert.Contains(t, out, "Yearly take-home:")
	assert.Contains(t, out, "₹12,00,000.00")
	assert.Contains(t, out, "₹0.00")

	_, err = run(t, "take-home", "--ctc", "abc")
	assert.Error(t, err)

	_, err = run(t, "take-home")
	assert.Error(t, err, "--ctc is required")
}

func TestSavingsCommand(t *testing.T) {
	out, err := run(t, "savings", "--ctc", "1200000", "--monthly-expense", "30000")
	require.NoError(t, err)
	assert.Contains(t, out, "₹70,000.00")
	assert.Contains(t, out, "₹8,40,000.00")

	_, err = run(t, "savings", "--ctc", "1200000", "--monthly-expense", "1", "--annual-expense", "12")
	assert.Error(t, err)

	_, err = run(t, "savings", "--ctc", "1200000", "--annual-expense", "-1")
	assert.Error(t, err)
}

func TestCTCCommand(t *testing.T) {
	out, err := run(t, "ctc", "--take-home", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "Required annual CTC:")
	assert.NotContains(t, out, "Note:")

	_, err = run(t, "ctc", "--take-home", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestRangeCommands(t *testing.T) {
	clock = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { clock = time.Now })

	out, err := run(t, "range", "--min", "1000000", "--max", "2000000", "--monthly-expense", "30000")
	require.NoError(t, err)
	assert.Contains(t, out, "₹10,00,000.00")
	assert.Contains(t, out, "₹15,00,000.00")
	assert.Contains(t, out, "₹20,00,000.00")

	out, err = run(t, "time-to-target", "--min", "1200000", "--max", "1200000",
		"--monthly-expense", "30000", "--target", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "15 months (1y 3m)")
	assert.Contains(t, out, "Jan 2028")

	_, err = run(t, "range", "--min", "0", "--max", "1000000000", "--step", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than the limit")

	_, err = run(t, "range", "--min", "0", "--max", "18446744073709551616", "--step", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than the limit")

	_, err = run(t, "range", "--min", "2000000", "--max", "1000000")
	assert.Error(t, err)

	_, err = run(t, "time-to-target", "--min", "1", "--max", "2", "--target", "0")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out, err := run(t, "report", "--min", "1200000", "--max", "1300000", "--step", "100000",
			"--monthly-expense", "30000", "--format", "csv")
		require.NoError(t, err)
		assert.Contains(t, out, "AnnualCTC,YearlyTax")
	})

	t.Run("all formats to a directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports")
		_, err := run(t, "report", "--min", "1200000", "--max", "1300000", "--step", "100000",
			"--target", "1000000", "--format", "all", "--output-dir", dir)
		require.NoError(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 4)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "report", "--min", "1", "--max", "2", "--format", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Try one of")
	})
}

func TestPolicyCommand(t *testing.T) {
	out, err := run(t, "policy")
	require.NoError(t, err)
	assert.Contains(t, out, "# Slab 0 - 400000: 0%")
	assert.Contains(t, out, "recovers at CTC ₹12,61,764.71")

	path := filepath.Join(t.TempDir(), "policy.yaml")
	_, err = run(t, "policy", "--example", "--write", path)
	require.NoError(t, err)
	policy, err := config.NewPolicyLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "example", policy.Name)

	out, err = run(t, "--policy", path, "take-home", "--ctc", "1200000")
	require.NoError(t, err)
	assert.Contains(t, out, "₹12,00,000.00")
}

func TestInvalidPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brackets: []\n"), 0o644))

	_, err := run(t, "--policy", path, "take-home", "--ctc", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidPolicy)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ctcplan dev")
}
