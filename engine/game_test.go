package engine

import (
	"testing"

	"pacai/experiments/metrics"
	"pacai/game"
	"pacai/maze"
	"pacai/searcher"
	"pacai/searcher/agent"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func layout(t *testing.T, grid string) *maze.Layout {
	l, err := maze.Parse(grid)
	require.NoError(t, err)
	return l
}

// idleAgent never moves.
type idleAgent struct{}

func (idleAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	return game.Stop, metrics.SearchMetric{Algorithm: "idle"}
}

func TestGameEngine(t *testing.T) {
	t.Run("clearing a corridor with alpha-beta", func(t *testing.T) {
		state := maze.NewGameState(layout(t, "%%%%%\n%P..%\n%%%%%"))
		pacman := searcher.NewAlphaBeta(searcher.WithDepth(2), searcher.WithMetrics(metrics.NewCollector()))

		result, records := NewGameEngine(state, pacman, nil, 0).Run()

		require.True(t, result.Win)
		require.Equal(t, 2, result.Moves)
		require.Equal(t, float64(2*(maze.FoodReward-maze.TimePenalty)+maze.WinReward), result.Score)
		require.Len(t, records, 2)
		require.Equal(t, "alphabeta", records[0].Algorithm)
		require.Equal(t, 2, records[1].Step)
	})

	t.Run("stopping at the move limit", func(t *testing.T) {
		state := maze.NewGameState(layout(t, "%%%%%%%\n%P.  G%\n%%%%%%%"))
		ghost := NewRandomGhost(rand.New(rand.NewSource(1)))

		// The ghost needs four moves to reach Pacman
		result, records := NewGameEngine(state, idleAgent{}, []GhostAgent{ghost}, 3).Run()

		require.False(t, result.Win)
		require.False(t, result.Lose)
		require.Equal(t, 3, result.Moves)
		require.Len(t, records, 3)
	})

	t.Run("taking a winning move with expectimax", func(t *testing.T) {
		state := maze.NewGameState(layout(t, "%%%%%\n%P G%\n%. %%\n%%%%%"))
		pacman, ok := agent.New("expectimax", searcher.WithDepth(1), searcher.WithEvaluationFn(game.EvaluatePosition))
		require.True(t, ok)

		result, _ := NewGameEngine(state, pacman, []GhostAgent{NewRandomGhost(rand.New(rand.NewSource(4)))}, 20).Run()
		require.True(t, result.Win)
		require.Equal(t, 1, result.Moves)
	})

	t.Run("panicking on a missing ghost agent", func(t *testing.T) {
		state := maze.NewGameState(layout(t, "%%%%%\n%P.G%\n%%%%%"))
		require.Panics(t, func() { NewGameEngine(state, idleAgent{}, nil, 0) })
	})
}

func TestRandomGhost(t *testing.T) {
	state := maze.NewGameState(layout(t, "%%%%%%\n%P.G %\n%%% %%\n%%%%%%"))
	ghost := NewRandomGhost(rand.New(rand.NewSource(8)))

	seen := map[game.Action]int{}
	for i := 0; i < 100; i++ {
		action := ghost.Action(state, 1)
		require.Contains(t, state.LegalActions(1), action)
		seen[action]++
	}
	require.Len(t, seen, len(state.LegalActions(1)))
}
