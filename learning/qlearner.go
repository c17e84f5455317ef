package learning

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ActionSource lists the legal actions of a state.
type ActionSource[S comparable, A comparable] interface {
	PossibleActions(state S) []A
}

type Option func(c *config)

type config struct {
	alpha       float64
	epsilon     float64
	discount    float64
	numTraining int
	rng         *rand.Rand
}

// WithAlpha sets the learning rate.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithEpsilon sets the exploration rate.
func WithEpsilon(epsilon float64) Option {
	return func(c *config) {
		c.epsilon = epsilon
	}
}

// WithDiscount sets the discount factor gamma.
func WithDiscount(discount float64) Option {
	return func(c *config) {
		c.discount = discount
	}
}

// WithNumTraining sets how many episodes learn before the policy is frozen.
func WithNumTraining(episodes int) Option {
	return func(c *config) {
		if episodes >= 0 {
			c.numTraining = episodes
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// PacmanOptions are the learning parameters used for Pacman agents.
func PacmanOptions() []Option {
	return []Option{WithEpsilon(0.05), WithDiscount(0.8), WithAlpha(0.2)}
}

// QLearner picks actions epsilon-greedily from an Estimator and improves it
// from observed transitions.
type QLearner[S comparable, A comparable] struct {
	config
	estimator Estimator[S, A]
	actions   ActionSource[S, A]

	episodesSoFar   int
	episodeRewards  float64
	trainingRewards float64
	testingRewards  float64
}

func NewQLearner[S comparable, A comparable](actions ActionSource[S, A], estimator Estimator[S, A], options ...Option) *QLearner[S, A] {
	if actions == nil || estimator == nil {
		panic("q-learner needs an action source and an estimator")
	}
	c := config{ // Default values
		alpha:       0.5,
		epsilon:     0.5,
		discount:    1,
		numTraining: 100,
	}
	for _, option := range options {
		option(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &QLearner[S, A]{config: c, estimator: estimator, actions: actions}
}

func (q *QLearner[S, A]) QValue(state S, action A) float64 {
	return q.estimator.QValue(state, action)
}

// Value is the greatest QValue over the legal actions of state, 0 if there are none.
func (q *QLearner[S, A]) Value(state S) float64 {
	actions := q.actions.PossibleActions(state)
	if len(actions) == 0 {
		return 0
	}
	best := math.Inf(-1)
	for _, action := range actions {
		best = max(best, q.QValue(state, action))
	}
	return best
}

// Policy returns an action with the greatest QValue, chosen uniformly at
// random among ties, or ok == false when state has no legal actions.
func (q *QLearner[S, A]) Policy(state S) (action A, ok bool) {
	actions := q.actions.PossibleActions(state)
	if len(actions) == 0 {
		return action, false
	}
	best := math.Inf(-1)
	var candidates []A
	for _, a := range actions {
		v := q.QValue(state, a)
		switch {
		case v > best:
			best = v
			candidates = append(candidates[:0], a)
		case v == best:
			candidates = append(candidates, a)
		}
	}
	return candidates[q.rng.Intn(len(candidates))], true
}

// Action explores a uniformly random legal action with probability epsilon
// and follows Policy otherwise.
func (q *QLearner[S, A]) Action(state S) (action A, ok bool) {
	actions := q.actions.PossibleActions(state)
	if len(actions) == 0 {
		return action, false
	}
	if q.rng.Float64() < q.epsilon {
		return actions[q.rng.Intn(len(actions))], true
	}
	return q.Policy(state)
}

// Update applies one temporal-difference step for an observed transition.
func (q *QLearner[S, A]) Update(state S, action A, next S, reward float64) {
	sample := reward + q.discount*q.Value(next)
	q.estimator.Update(state, action, sample, q.alpha)
}

func (q *QLearner[S, A]) StartEpisode() {
	q.episodeRewards = 0
}

// ObserveTransition records the reward of a transition and learns from it.
func (q *QLearner[S, A]) ObserveTransition(state S, action A, next S, reward float64) {
	q.episodeRewards += reward
	q.Update(state, action, next, reward)
}

// StopEpisode closes the current episode and returns its total reward. Once
// the training episodes are used up, exploration and learning stop.
func (q *QLearner[S, A]) StopEpisode() float64 {
	if q.IsInTraining() {
		q.trainingRewards += q.episodeRewards
	} else {
		q.testingRewards += q.episodeRewards
	}
	q.episodesSoFar++

	if q.episodesSoFar == q.numTraining {
		log.Info().Msgf("training done after %d episodes, average reward %g",
			q.numTraining, q.trainingRewards/float64(q.numTraining))
	}
	if q.episodesSoFar >= q.numTraining {
		q.epsilon = 0
		q.alpha = 0
	}
	return q.episodeRewards
}

func (q *QLearner[S, A]) IsInTraining() bool {
	return q.episodesSoFar < q.numTraining
}

func (q *QLearner[S, A]) IsInTesting() bool {
	return !q.IsInTraining()
}

func (q *QLearner[S, A]) EpisodesSoFar() int {
	return q.episodesSoFar
}

// TrainingRewards is the total reward of all training episodes so far.
func (q *QLearner[S, A]) TrainingRewards() float64 {
	return q.trainingRewards
}

// TestingRewards is the total reward of all episodes after training.
func (q *QLearner[S, A]) TestingRewards() float64 {
	return q.testingRewards
}

func (q *QLearner[S, A]) Alpha() float64    { return q.alpha }
func (q *QLearner[S, A]) Epsilon() float64  { return q.epsilon }
func (q *QLearner[S, A]) Discount() float64 { return q.discount }
