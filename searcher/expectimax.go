package searcher

import (
	"math"

	"pacai/experiments/metrics"
	"pacai/game"

	"gonum.org/v1/gonum/stat"
)

// Expectimax models adversaries as choosing uniformly at random among their
// legal actions.
type Expectimax struct {
	config
}

func NewExpectimax(options ...Option) *Expectimax {
	return &Expectimax{config: newConfig(options)}
}

func (e *Expectimax) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	return e.findMove("expectimax", state, e.Decide)
}

func (e *Expectimax) Decide(state game.State) (game.Action, float64) {
	return e.decide(state, func(successor game.State, agent, depth int, _ float64) float64 {
		return e.value(successor, agent, depth)
	})
}

func (e *Expectimax) value(state game.State, agent, depth int) float64 {
	actions, terminal := e.expand(state, agent, depth)
	if terminal {
		return e.leaf(state)
	}

	nextAgent, nextDepth := nextPly(state, agent, depth)
	if agent == Protagonist {
		best := math.Inf(-1)
		for _, action := range actions {
			best = max(best, e.value(state.GenerateSuccessor(agent, action), nextAgent, nextDepth))
		}
		return best
	}

	// Chance node
	values := make([]float64, len(actions))
	for i, action := range actions {
		values[i] = e.value(state.GenerateSuccessor(agent, action), nextAgent, nextDepth)
	}
	return stat.Mean(values, nil)
}
