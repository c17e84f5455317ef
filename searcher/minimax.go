package searcher

import (
	"math"

	"pacai/experiments/metrics"
	"pacai/game"
)

// Minimax assumes every adversary picks the move that is worst for the
// protagonist.
type Minimax struct {
	config
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{config: newConfig(options)}
}

// FindMove returns the minimax action and the work done to find it.
func (m *Minimax) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	return m.findMove("minimax", state, m.Decide)
}

// Decide returns the minimax action and its value. It returns game.NoAction
// and the state's evaluation when the protagonist has no legal actions.
func (m *Minimax) Decide(state game.State) (game.Action, float64) {
	return m.decide(state, func(successor game.State, agent, depth int, _ float64) float64 {
		return m.value(successor, agent, depth)
	})
}

func (m *Minimax) value(state game.State, agent, depth int) float64 {
	actions, terminal := m.expand(state, agent, depth)
	if terminal {
		return m.leaf(state)
	}

	nextAgent, nextDepth := nextPly(state, agent, depth)
	if agent == Protagonist {
		best := math.Inf(-1)
		for _, action := range actions {
			best = max(best, m.value(state.GenerateSuccessor(agent, action), nextAgent, nextDepth))
		}
		return best
	}

	best := math.Inf(1)
	for _, action := range actions {
		best = min(best, m.value(state.GenerateSuccessor(agent, action), nextAgent, nextDepth))
	}
	return best
}
