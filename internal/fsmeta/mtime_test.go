package fsmeta_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/internal/fsmeta"
)

func TestModTimeNanosMatchesStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.py")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)

	ns, err := fsmeta.ModTimeNanos(path)
	require.NoError(t, err)
	// The two readings come from different syscalls taken moments
	// apart; allow a generous slack rather than asserting equality.
	require.InDelta(t, info.ModTime().UnixNano(), ns, float64(1e9))
}

func TestModTimeNanosMissingFile(t *testing.T) {
	_, err := fsmeta.ModTimeNanos(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
}
