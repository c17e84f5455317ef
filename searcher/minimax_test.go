package searcher

import (
	"testing"

	"pacai/experiments/metrics"
	"pacai/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests adversarial search over explicit game trees
- minimax:
	- happy path: max over min over leaves
	- depth: one unit per full cycle of agents, evaluated at the limit
	- agent order: adversaries in increasing index before control returns
	- terminal: win/lose and adversaries without moves are evaluated
	- edge case: protagonist without moves -> no action
	- ties: first action wins
- alpha-beta: same result as minimax on every tree, fewer evaluations
- expectimax: chance nodes average their children
*/

func classicTree() *mockState {
	return branch(2, 0,
		leaves(2, 3, 12, 8),
		leaves(2, 2, 4, 6),
		leaves(2, 14, 5, 2),
	)
}

func TestMinimax(t *testing.T) {
	t.Run("maximizing over minimizing adversary", func(t *testing.T) {
		action, value := NewMinimax(WithDepth(1)).Decide(classicTree())

		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, 3.0, value)
	})

	t.Run("evaluating at the depth limit after every agent moved", func(t *testing.T) {
		// Protagonist moves, the adversary moves, then the protagonist's
		// node at depth 1 is a leaf even though it has children
		deep := func(score float64) *mockState {
			return branch(2, score, leaf(2, 100), leaf(2, -100))
		}
		root := branch(2, 0,
			branch(2, 0, deep(5), deep(7)),
			branch(2, 0, deep(1), deep(9)),
		)

		action, value := NewMinimax(WithDepth(1)).Decide(root)
		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, 5.0, value)

		// With depth 2 the protagonist's second move is searched and the
		// adversary's moves become leaves
		action, value = NewMinimax(WithDepth(2)).Decide(root)
		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, 100.0, value, "Leaves of the second cycle have no moves and are evaluated")
	})

	t.Run("depth zero evaluates the protagonist's successors", func(t *testing.T) {
		root := branch(2, 0, leaves(2, -5), branch(2, 4, leaf(2, -50)))

		action, value := NewMinimax(WithDepth(0)).Decide(root)
		require.Equal(t, game.Action("a1"), action)
		require.Equal(t, 4.0, value)
	})

	t.Run("cycling through adversaries before the protagonist moves again", func(t *testing.T) {
		// Agents 1 and 2 both minimize; depth 1 evaluates after agent 2
		root := branch(3, 0,
			branch(3, 0, leaves(3, 4, 9), leaves(3, 6, 7)),
			branch(3, 0, leaves(3, 5, 8), leaves(3, 10, 5)),
		)

		action, value := NewMinimax(WithDepth(1)).Decide(root)
		require.Equal(t, game.Action("a1"), action)
		require.Equal(t, 5.0, value)
	})

	t.Run("a single agent spends one depth unit per move", func(t *testing.T) {
		root := branch(1, 0,
			branch(1, 1, leaf(1, 10)),
			branch(1, 2, leaf(1, 3)),
		)

		action, value := NewMinimax(WithDepth(1)).Decide(root)
		require.Equal(t, game.Action("a1"), action)
		require.Equal(t, 2.0, value)

		action, value = NewMinimax(WithDepth(2)).Decide(root)
		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, 10.0, value)
	})

	t.Run("evaluating won and lost states without expanding them", func(t *testing.T) {
		won := branch(2, 50, leaf(2, -100))
		won.win = true
		lost := branch(2, -50, leaf(2, 100))
		lost.lose = true
		root := branch(2, 0, lost, won)

		action, value := NewMinimax(WithDepth(3)).Decide(root)
		require.Equal(t, game.Action("a1"), action)
		require.Equal(t, 50.0, value)
	})

	t.Run("evaluating adversaries without legal actions", func(t *testing.T) {
		root := branch(2, 0, leaf(2, 6), leaves(2, 3, 20))

		action, value := NewMinimax(WithDepth(2)).Decide(root)
		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, 6.0, value)
	})

	t.Run("returning no action when the protagonist cannot move", func(t *testing.T) {
		action, value := NewMinimax().Decide(leaf(2, 11))
		require.Equal(t, game.NoAction, action)
		require.Equal(t, 11.0, value)
	})

	t.Run("keeping the first action among equal values", func(t *testing.T) {
		root := branch(2, 0, leaves(2, 1, 7), leaves(2, 7, 7), leaves(2, 7, 9))

		action, _ := NewMinimax(WithDepth(1)).Decide(root)
		require.Equal(t, game.Action("a1"), action)
	})

	t.Run("using the configured evaluation function", func(t *testing.T) {
		negate := func(s game.State) float64 { return -s.Score() }

		action, value := NewMinimax(WithDepth(1), WithEvaluationFn(negate)).Decide(classicTree())
		require.Equal(t, game.Action("a1"), action)
		require.Equal(t, -6.0, value)
	})

	t.Run("reporting search metrics", func(t *testing.T) {
		collector := metrics.NewCollector()
		action, metric := NewMinimax(WithDepth(1), WithMetrics(collector)).FindMove(classicTree())

		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, "minimax", metric.Algorithm)
		require.Equal(t, 9, metric.Evaluations)
		require.Equal(t, 3, metric.Expansions, "Only adversary nodes are expanded below the root")
		require.Zero(t, metric.Cutoffs)
	})
}

func TestAlphaBeta(t *testing.T) {
	t.Run("pruning the classic tree", func(t *testing.T) {
		collector := metrics.NewCollector()
		action, metric := NewAlphaBeta(WithDepth(1), WithMetrics(collector)).FindMove(classicTree())
		_, value := NewAlphaBeta(WithDepth(1)).Decide(classicTree())

		require.Equal(t, game.Action("a0"), action)
		require.Equal(t, 3.0, value)
		require.Equal(t, "alphabeta", metric.Algorithm)
		require.Equal(t, 2, metric.Cutoffs, "Second and third subtrees fall below alpha")
		require.Less(t, metric.Evaluations, 9)
	})

	t.Run("matching minimax on random trees", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for trial := 0; trial < 500; trial++ {
			agents := 1 + rng.Intn(3)
			depth := rng.Intn(4)
			root := randomTree(rng, agents, 2+rng.Intn(5))

			minimaxMetrics := metrics.NewCollector()
			alphaBetaMetrics := metrics.NewCollector()
			minimax := NewMinimax(WithDepth(depth), WithMetrics(minimaxMetrics))
			alphaBeta := NewAlphaBeta(WithDepth(depth), WithMetrics(alphaBetaMetrics))

			minimaxMetrics.Start("minimax")
			wantAction, wantValue := minimax.Decide(root)
			alphaBetaMetrics.Start("alphabeta")
			gotAction, gotValue := alphaBeta.Decide(root)

			require.Equal(t, wantAction, gotAction, "trial %d: action should match minimax", trial)
			require.Equal(t, wantValue, gotValue, "trial %d: value should match minimax", trial)
			require.LessOrEqual(t, alphaBetaMetrics.Complete().Evaluations, minimaxMetrics.Complete().Evaluations,
				"trial %d: pruning should never evaluate more leaves", trial)
		}
	})
}

func TestExpectimax(t *testing.T) {
	t.Run("averaging adversary moves", func(t *testing.T) {
		action, value := NewExpectimax(WithDepth(1)).Decide(classicTree())

		require.Equal(t, game.Action("a0"), action)
		require.InDelta(t, 23.0/3.0, value, 1e-12)
	})

	t.Run("preferring the better average over the better worst case", func(t *testing.T) {
		root := branch(2, 0, leaves(2, 4, 4), leaves(2, 0, 10))

		action, _ := NewMinimax(WithDepth(1)).Decide(root)
		require.Equal(t, game.Action("a0"), action)

		action, value := NewExpectimax(WithDepth(1)).Decide(root)
		require.Equal(t, game.Action("a1"), action)
		require.Equal(t, 5.0, value)
	})

	t.Run("chaining chance nodes for several adversaries", func(t *testing.T) {
		root := branch(3, 0, branch(3, 0, leaves(3, 1, 3), leaves(3, 5, 7, 9)))

		_, value := NewExpectimax(WithDepth(1)).Decide(root)
		require.InDelta(t, (2.0+7.0)/2, value, 1e-12)
	})

	t.Run("reporting its algorithm name", func(t *testing.T) {
		_, metric := NewExpectimax(WithMetrics(metrics.NewCollector())).FindMove(classicTree())
		require.Equal(t, "expectimax", metric.Algorithm)
	})
}
