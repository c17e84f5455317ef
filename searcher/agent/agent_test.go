package agent

import (
	"testing"

	"pacai/game"
	"pacai/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type mockState struct {
	score      float64
	successors map[game.Action]*mockState
	order      []game.Action
}

func (m *mockState) LegalActions(agent int) []game.Action { return m.order }
func (m *mockState) GenerateSuccessor(agent int, action game.Action) game.State {
	return m.successors[action]
}
func (m *mockState) NumAgents() int { return 1 }
func (m *mockState) IsWin() bool    { return false }
func (m *mockState) IsLose() bool   { return false }
func (m *mockState) IsOver() bool   { return false }
func (m *mockState) Score() float64 { return m.score }

func newMockState(scores map[game.Action]float64, order ...game.Action) *mockState {
	s := &mockState{successors: map[game.Action]*mockState{}, order: order}
	for _, action := range order {
		s.successors[action] = &mockState{score: scores[action]}
	}
	return s
}

func successorScore(s game.State, action game.Action) float64 {
	return s.GenerateSuccessor(0, action).Score()
}

func TestReflexAgent(t *testing.T) {
	state := newMockState(map[game.Action]float64{
		game.North: 3,
		game.South: 7,
		game.East:  7,
		game.West:  1,
	}, game.North, game.South, game.East, game.West)

	t.Run("choosing only among the best scoring actions", func(t *testing.T) {
		seen := map[game.Action]int{}
		a := NewReflexAgent(successorScore, rand.New(rand.NewSource(3)))
		for i := 0; i < 200; i++ {
			action, metric := a.FindMove(state)
			seen[action]++
			require.Equal(t, 4, metric.Evaluations)
		}

		require.Len(t, seen, 2, "Only tied best actions should be chosen")
		require.Positive(t, seen[game.South], "Ties should be broken randomly")
		require.Positive(t, seen[game.East], "Ties should be broken randomly")
	})

	t.Run("repeating choices under the same seed", func(t *testing.T) {
		first := NewReflexAgent(successorScore, rand.New(rand.NewSource(9)))
		second := NewReflexAgent(successorScore, rand.New(rand.NewSource(9)))
		for i := 0; i < 20; i++ {
			a1, _ := first.FindMove(state)
			a2, _ := second.FindMove(state)
			require.Equal(t, a1, a2)
		}
	})

	t.Run("returning no action without legal actions", func(t *testing.T) {
		action, _ := NewReflexAgent(successorScore, nil).FindMove(&mockState{})
		require.Equal(t, game.NoAction, action)
	})
}

func TestNew(t *testing.T) {
	for _, name := range []string{"minimax", "alphabeta", "expectimax"} {
		t.Run(name, func(t *testing.T) {
			a, ok := New(name, searcher.WithDepth(1))
			require.True(t, ok)

			state := newMockState(map[game.Action]float64{game.North: 1, game.South: 2}, game.North, game.South)
			action, metric := a.FindMove(state)
			require.Equal(t, game.South, action)
			require.Equal(t, name, metric.Algorithm)
		})
	}

	t.Run("mcts", func(t *testing.T) {
		a, ok := New("mcts", searcher.WithEpisodes(20), searcher.WithSeed(1))
		require.True(t, ok)

		state := newMockState(map[game.Action]float64{game.North: 1, game.South: 2}, game.North, game.South)
		action, metric := a.FindMove(state)
		require.Contains(t, []game.Action{game.North, game.South}, action)
		require.Equal(t, "mcts", metric.Algorithm)
	})

	t.Run("rejecting unknown names", func(t *testing.T) {
		_, ok := New("greedy")
		require.False(t, ok)
	})
}

func TestRecordingAgent(t *testing.T) {
	state := newMockState(map[game.Action]float64{game.North: 1}, game.North)
	a := NewRecordingAgent(searcher.NewAlphaBeta(searcher.WithDepth(1)))

	a.FindMove(state)
	a.FindMove(state)

	records := a.Records()
	require.Len(t, records, 2)
	require.Equal(t, 1, records[0].Step)
	require.Equal(t, 2, records[1].Step)
}
