package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/avl-bench/bench"
	"github.com/cosmos/avl-bench/internal/logz"
)

func TestRootCommand(t *testing.T) {
	prev := logz.Logger
	t.Cleanup(func() { logz.Logger = prev })

	root, err := rootCommand()
	require.NoError(t, err)
	root.AddCommand(bench.Commands()...)

	for _, name := range []string{"demo", "permutations", "run", "traverse", "dot"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}

	logFile := filepath.Join(t.TempDir(), "bench.log")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--log-file", logFile, "--log-level", "debug", "traverse", "2", "1"})
	require.NoError(t, root.Execute())
	require.Equal(t, "key 1 has value 1\nkey 0 has value 2\n", out.String())
	_, err = os.Stat(logFile)
	require.NoError(t, err)

	root.SetArgs([]string{"--log-level", "loud", "traverse", "1"})
	require.Error(t, root.Execute())
}
