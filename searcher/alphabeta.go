package searcher

import (
	"math"

	"pacai/experiments/metrics"
	"pacai/game"
)

// AlphaBeta returns the same action and value as Minimax while skipping
// subtrees that cannot change the result.
type AlphaBeta struct {
	config
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	return &AlphaBeta{config: newConfig(options)}
}

func (a *AlphaBeta) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	return a.findMove("alphabeta", state, a.Decide)
}

func (a *AlphaBeta) Decide(state game.State) (game.Action, float64) {
	return a.decide(state, func(successor game.State, agent, depth int, best float64) float64 {
		return a.value(successor, agent, depth, best, math.Inf(1))
	})
}

// value prunes only on strict inequalities, so a returned value inside
// [alpha, beta] is exact and one outside it is a bound on the exact value.
func (a *AlphaBeta) value(state game.State, agent, depth int, alpha, beta float64) float64 {
	actions, terminal := a.expand(state, agent, depth)
	if terminal {
		return a.leaf(state)
	}

	nextAgent, nextDepth := nextPly(state, agent, depth)
	if agent == Protagonist {
		best := math.Inf(-1)
		for _, action := range actions {
			best = max(best, a.value(state.GenerateSuccessor(agent, action), nextAgent, nextDepth, alpha, beta))
			if best > beta {
				a.metrics.AddCutoff()
				return best
			}
			alpha = max(alpha, best)
		}
		return best
	}

	best := math.Inf(1)
	for _, action := range actions {
		best = min(best, a.value(state.GenerateSuccessor(agent, action), nextAgent, nextDepth, alpha, beta))
		if best < alpha {
			a.metrics.AddCutoff()
			return best
		}
		beta = min(beta, best)
	}
	return best
}
