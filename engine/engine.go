package engine

import "pacai/experiments/metrics"

const MaxSteps = 1000

// Environment is a world a learner acts in, one transition at a time.
type Environment[S comparable, A comparable] interface {
	State() S
	IsTerminal() bool
	Reset()
	Step(action A) (next S, reward float64)
}

// Learner chooses actions and learns from the transitions they cause.
type Learner[S comparable, A comparable] interface {
	Action(state S) (A, bool)
	StartEpisode()
	ObserveTransition(state S, action A, next S, reward float64)
	StopEpisode() float64
	IsInTraining() bool
}

type Engine interface {
	// Run plays episodes until each reaches a terminal state or the step limit
	Run(episodes int) []metrics.EpisodeRecord
}
