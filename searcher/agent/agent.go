package agent

import (
	"pacai/experiments/metrics"
	"pacai/game"
	"pacai/searcher"
)

type Agent interface {
	// FindMove returns the protagonist's action and the work done to find it.
	// It returns game.NoAction when the protagonist has no legal actions.
	FindMove(state game.State) (game.Action, metrics.SearchMetric)
}

var (
	_ Agent = (*searcher.Minimax)(nil)
	_ Agent = (*searcher.AlphaBeta)(nil)
	_ Agent = (*searcher.Expectimax)(nil)
	_ Agent = (*searcher.MCTS)(nil)
	_ Agent = (*ReflexAgent)(nil)
)

// New returns the searcher registered under name.
func New(name string, options ...searcher.Option) (Agent, bool) {
	switch name {
	case "minimax":
		return searcher.NewMinimax(options...), true
	case "alphabeta":
		return searcher.NewAlphaBeta(options...), true
	case "expectimax":
		return searcher.NewExpectimax(options...), true
	case "mcts":
		return searcher.NewMCTS(options...), true
	default:
		return nil, false
	}
}

// RecordingAgent keeps the search metrics of every move it is asked for.
type RecordingAgent struct {
	inner   Agent
	records []metrics.SearchRecord
}

func NewRecordingAgent(inner Agent) *RecordingAgent {
	return &RecordingAgent{inner: inner}
}

func (r *RecordingAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	action, metric := r.inner.FindMove(state)
	r.records = append(r.records, metrics.SearchRecord{
		Step:         len(r.records) + 1,
		SearchMetric: metric,
	})
	return action, metric
}

func (r *RecordingAgent) Records() []metrics.SearchRecord {
	return r.records
}
