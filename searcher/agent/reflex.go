package agent

import (
	"time"

	"pacai/experiments/metrics"
	"pacai/game"

	"golang.org/x/exp/rand"
)

// ReflexAgent scores each legal action once, without lookahead, and picks
// uniformly at random among the best-scoring actions.
type ReflexAgent struct {
	evaluate game.ActionEvaluate
	rng      *rand.Rand
}

func NewReflexAgent(evaluate game.ActionEvaluate, rng *rand.Rand) *ReflexAgent {
	if evaluate == nil {
		evaluate = game.EvaluateAction
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &ReflexAgent{evaluate: evaluate, rng: rng}
}

func (a *ReflexAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	start := time.Now()
	actions := state.LegalActions(0)
	if len(actions) == 0 {
		return game.NoAction, metrics.SearchMetric{Algorithm: "reflex", Duration: time.Since(start)}
	}

	best := []game.Action{}
	var bestScore float64
	for i, action := range actions {
		score := a.evaluate(state, action)
		switch {
		case i == 0 || score > bestScore:
			bestScore = score
			best = append(best[:0], action)
		case score == bestScore:
			best = append(best, action)
		}
	}

	metric := metrics.SearchMetric{
		Algorithm:   "reflex",
		Duration:    time.Since(start),
		Evaluations: len(actions),
	}
	return best[a.rng.Intn(len(best))], metric
}
