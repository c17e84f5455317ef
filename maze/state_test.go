package maze

import (
	"testing"

	"pacai/game"

	"github.com/stretchr/testify/require"
)

func TestGameState(t *testing.T) {
	t.Run("eating the last food dot wins", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%\n%P.G%\n%%%%%"))
		require.Equal(t, 2, s.NumAgents())

		next := s.GenerateSuccessor(0, game.East).(*GameState)

		require.True(t, next.IsWin())
		require.True(t, next.IsOver())
		require.Empty(t, next.Food())
		require.Equal(t, float64(-TimePenalty+FoodReward+WinReward), next.Score())
		require.Empty(t, next.LegalActions(0), "Finished games offer no actions")
	})

	t.Run("meeting a ghost loses", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%%\n%P G.%\n%%%%%%"))

		s = s.GenerateSuccessor(0, game.East).(*GameState)
		require.False(t, s.IsOver())
		s = s.GenerateSuccessor(1, game.West).(*GameState)

		require.True(t, s.IsLose())
		require.Equal(t, float64(-TimePenalty+LoseReward), s.Score())
	})

	t.Run("eating a scared ghost sends it home", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%%\n%PoG.%\n%%%%%%"))

		s = s.GenerateSuccessor(0, game.East).(*GameState)
		require.Equal(t, ScaredTime, s.Ghosts()[0].ScaredTimer)

		s = s.GenerateSuccessor(1, game.West).(*GameState)
		require.False(t, s.IsOver())
		require.Equal(t, game.Position{X: 3, Y: 1}, s.Ghosts()[0].Position)
		require.Zero(t, s.Ghosts()[0].ScaredTimer)
		require.Equal(t, float64(-TimePenalty+GhostReward), s.Score())
	})

	t.Run("offering stop to pacman only", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%%\n%P G.%\n%%%%%%"))

		require.Equal(t, []game.Action{game.East, game.Stop}, s.LegalActions(0))
		require.Equal(t, []game.Action{game.East, game.West}, s.LegalActions(1))
	})

	t.Run("leaving the parent state untouched", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%%%\n%Po.G.%\n%%%%%%%"))

		next := s.GenerateSuccessor(0, game.East)
		next = next.GenerateSuccessor(0, game.East)
		next.GenerateSuccessor(1, game.West)

		require.Equal(t, game.Position{X: 1, Y: 1}, s.PacmanPosition())
		require.Len(t, s.Food(), 2)
		require.Zero(t, s.Ghosts()[0].ScaredTimer)
		require.Zero(t, s.Score())
		require.Len(t, s.layout.Capsules, 1)
	})

	t.Run("panicking on illegal actions", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%\n%P.G%\n%%%%%"))
		require.Panics(t, func() { s.GenerateSuccessor(0, game.North) })
	})

	t.Run("scoring with the position evaluation", func(t *testing.T) {
		s := NewGameState(mustParse(t, "%%%%%%%\n%P . G%\n%%%%%%%"))
		closer := s.GenerateSuccessor(0, game.East)
		require.Greater(t, game.EvaluatePosition(closer), game.EvaluatePosition(s.GenerateSuccessor(0, game.Stop)))
	})
}
