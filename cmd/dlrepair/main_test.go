package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nodeadmin/dlrepair/config"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

const inconsistentFixtureYAML = `
concepts: [Dog, Cat]
static:
  - type: disjoint_classes
    concepts: [Dog, Cat]
  - type: class_assertion
    concept: Dog
    individual: fido
refutable:
  - type: class_assertion
    concept: Cat
    individual: fido
`

func TestRunRepairRemovalStrategyReachesConsistency(t *testing.T) {
	logger = zap.NewNop()
	fixturePath = filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(inconsistentFixtureYAML), 0o644))
	strategy = "removal"
	outputPath = ""
	configPath = ""

	out := captureStdout(t, func() {
		require.NoError(t, runRepair(&cobra.Command{}, nil))
	})
	require.Contains(t, out, "static:")
}

func TestRunRepairUnknownStrategy(t *testing.T) {
	logger = zap.NewNop()
	fixturePath = filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(inconsistentFixtureYAML), 0o644))
	strategy = "not-a-strategy"
	outputPath = ""
	configPath = ""

	err := runRepair(&cobra.Command{}, nil)
	require.Error(t, err)
}

func TestDefaultConfigIsUsedWhenConfigPathMissing(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}
