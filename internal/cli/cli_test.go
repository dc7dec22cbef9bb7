package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a colorless config and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("color: false\nlog_level: error\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		journalPath = ""
		verbose = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	want := `> add A (priority 5)
  ok
> add B (priority 10)
  ok
> add C (priority 5)
  ok
> list
  1. Task(ID="A", Priority=5, Arrival=1.00)
  2. Task(ID="B", Priority=10, Arrival=2.00)
  3. Task(ID="C", Priority=5, Arrival=3.00)
> execute
  executing Task(ID="B", Priority=10, Arrival=2.00)
> cancel A
  ok
> list
  1. Task(ID="C", Priority=5, Arrival=3.00)
> execute
  executing Task(ID="C", Priority=5, Arrival=3.00)
> execute
  error: no pending tasks
`
	assert.Equal(t, want, out)
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - op: add
    id: x
    priority: 1
  - op: add
    id: x
    priority: 2
  - op: list
  - op: execute
  - op: list
`), 0o644))

	journal := filepath.Join(t.TempDir(), "events.csv")
	out, err := execute(t, "run", path, "--journal", journal)
	require.NoError(t, err)

	assert.Contains(t, out, "> add x (priority 2)\n  error: add \"x\": duplicate task id\n")
	assert.Contains(t, out, "> list\n  no pending tasks\n")

	f, err := os.Open(journal)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	var kinds []string
	for _, r := range rows[1:] {
		kinds = append(kinds, r[1])
	}
	assert.Equal(t, []string{"Added", "Rejected", "Executed"}, kinds)
}

func TestRunCommandErrors(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read script")

	bad := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("steps:\n  - op: fly\n"), 0o644))
	_, err = execute(t, "run", bad)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "must be one of"), err.Error())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "arrivq dev\n", out)
}
