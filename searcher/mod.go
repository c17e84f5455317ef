package searcher

import (
	"math"
	"time"

	"pacai/experiments/metrics"
	"pacai/game"

	"github.com/rs/zerolog/log"
)

// Protagonist is the maximizing agent; every other agent is an adversary.
const Protagonist = 0

// DefaultDepth is the number of full agent cycles searched when no depth is given.
const DefaultDepth = 2

const (
	DefaultEpisodes = 1000
	MaxCutoff       = 100 // Rollout moves before a state is evaluated
)

type Option func(c *config)

type config struct {
	depth    int
	evaluate game.Evaluate
	metrics  metrics.Collector

	// Monte Carlo tree search only
	goroutines int
	episodes   int
	duration   time.Duration
	cutoff     int
	seed       uint64
}

// WithDepth bounds the search to depth full cycles through all agents.
func WithDepth(depth int) Option {
	return func(c *config) {
		if depth >= 0 {
			c.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *config) {
		if evaluate != nil {
			c.evaluate = evaluate
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// WithGoroutines sets the number of parallel simulations.
func WithGoroutines(goroutines int) Option {
	return func(c *config) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

// WithEpisodes runs a fixed number of simulations per move.
func WithEpisodes(episodes int) Option {
	return func(c *config) {
		if episodes > 0 {
			c.episodes = episodes
			c.duration = 0
		}
	}
}

// WithDuration simulates for a fixed time per move instead of a fixed number of episodes.
func WithDuration(duration time.Duration) Option {
	return func(c *config) {
		if duration > 0 {
			c.duration = duration
			c.episodes = 0
		}
	}
}

func WithCutoff(moves int) Option {
	return func(c *config) {
		if moves > 0 {
			c.cutoff = moves
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func newConfig(options []Option) config {
	c := config{ // Default values
		depth:      DefaultDepth,
		evaluate:   game.EvaluateScore,
		metrics:    metrics.NewDummyCollector(),
		goroutines: 1,
		episodes:   DefaultEpisodes,
		cutoff:     MaxCutoff,
		seed:       uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

// expand returns the legal actions of agent, or terminal == true when the
// state is decided, the depth limit is reached, or the agent cannot move.
func (c *config) expand(state game.State, agent, depth int) (actions []game.Action, terminal bool) {
	if state.IsWin() || state.IsLose() || state.IsOver() {
		return nil, true
	}
	if depth >= c.depth {
		return nil, true
	}
	actions = state.LegalActions(agent)
	if len(actions) == 0 {
		return nil, true
	}
	c.metrics.AddExpansion()
	return actions, false
}

func (c *config) leaf(state game.State) float64 {
	c.metrics.AddEvaluation()
	return c.evaluate(state)
}

// nextPly hands control to the next agent; depth grows once every agent has moved.
func nextPly(state game.State, agent, depth int) (int, int) {
	agent++
	if agent >= state.NumAgents() {
		return Protagonist, depth + 1
	}
	return agent, depth
}

// decide evaluates each protagonist action through value and keeps the first
// action with the strictly greatest value. value receives the best value found
// so far so that pruning searches can use it as a lower bound.
func (c *config) decide(state game.State, value func(successor game.State, agent, depth int, best float64) float64) (game.Action, float64) {
	actions := state.LegalActions(Protagonist)
	if len(actions) == 0 {
		return game.NoAction, c.leaf(state)
	}

	agent, depth := nextPly(state, Protagonist, 0)
	bestAction := game.NoAction
	bestValue := math.Inf(-1)
	for _, action := range actions {
		v := value(state.GenerateSuccessor(Protagonist, action), agent, depth, bestValue)
		if v > bestValue || bestAction == game.NoAction {
			bestValue = v
			bestAction = action
		}
	}
	return bestAction, bestValue
}

func (c *config) findMove(algorithm string, state game.State, decide func(game.State) (game.Action, float64)) (game.Action, metrics.SearchMetric) {
	c.metrics.Start(algorithm)
	action, value := decide(state)
	metric := c.metrics.Complete()
	metric.Algorithm = algorithm
	log.Debug().Msgf("%s chose %s with value %g (%d expansions, %d evaluations, %d cutoffs)",
		algorithm, action, value, metric.Expansions, metric.Evaluations, metric.Cutoffs)
	return action, metric
}
