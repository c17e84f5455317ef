package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--output-dir", t.TempDir(), "--log-level", "error"))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestSearchCommand(t *testing.T) {
	out := run(t, "search", "testdata/tinyMaze.lay", "--algorithm", "bfs")

	require.Contains(t, out, "bfs: 2 actions")
	require.Contains(t, out, "%P   %\n%*%% %\n%.   %")
}

func TestPlayCommand(t *testing.T) {
	out := run(t, "play", "testdata/tinyGame.lay", "alphabeta", "--depth", "1", "--max-steps", "30", "--games", "2")

	require.Contains(t, out, "game 1:")
	require.Contains(t, out, "game 2:")
	require.Contains(t, out, "of 2 games")
}

func TestValueIterationCommand(t *testing.T) {
	out := run(t, "valueiteration", "testdata/bridge.yaml", "--discount", "1", "--iterations", "10")

	// Crossing is worth 0.8 * 10 + 0.2 * -10 = 6
	require.Contains(t, out, "Left         value=6.0000     policy=cross")
	require.Contains(t, out, "Right        value=10.0000    policy=exit")
	require.Contains(t, out, "River        value=0.0000     policy=-")
}

func TestQLearnCommand(t *testing.T) {
	out := run(t, "qlearn", "testdata/bridge.yaml",
		"--episodes", "20", "--num-training", "10", "--epsilon", "0.5", "--alpha", "0.5", "--metrics")

	require.Contains(t, out, "Done         value=0.0000     policy=-")
	require.Contains(t, out, `pacai_episodes_total{algorithm="qlearning"} 20`)
}
