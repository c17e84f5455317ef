package engine

import (
	"time"

	"pacai/experiments/metrics"

	"github.com/rs/zerolog/log"
)

type LocalEngine[S comparable, A comparable] struct {
	Env      Environment[S, A]
	Learner  Learner[S, A]
	MaxSteps int
	metrics  metrics.Collector
}

var _ Engine = (*LocalEngine[int, int])(nil)

func NewLocalEngine[S comparable, A comparable](env Environment[S, A], learner Learner[S, A], maxSteps int, collector metrics.Collector) *LocalEngine[S, A] {
	if env == nil || learner == nil {
		panic("engine needs an environment and a learner")
	}
	if maxSteps <= 0 {
		maxSteps = MaxSteps
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &LocalEngine[S, A]{
		Env:      env,
		Learner:  learner,
		MaxSteps: maxSteps,
		metrics:  collector,
	}
}

// Run executes the given number of episodes and returns one record each.
func (e *LocalEngine[S, A]) Run(episodes int) []metrics.EpisodeRecord {
	e.metrics.Start("qlearning")
	records := make([]metrics.EpisodeRecord, 0, episodes)

	log.Info().Msgf("starting %d episodes...", episodes)
	for i := 1; i <= episodes; i++ {
		record := e.RunEpisode(i)
		records = append(records, record)
		e.metrics.AddEpisode()

		if i%100 == 0 || i == episodes {
			log.Info().Msgf("completed episode %d of %d with reward %g in %d steps", i, episodes, record.Reward, record.Steps)
		}
	}

	metric := e.metrics.Complete()
	log.Debug().Msgf("ran %d episodes in %s", metric.Episodes, metric.Duration)
	return records
}

// RunEpisode plays one episode from the environment's start state.
func (e *LocalEngine[S, A]) RunEpisode(episode int) metrics.EpisodeRecord {
	start := time.Now()
	training := e.Learner.IsInTraining()

	e.Env.Reset()
	e.Learner.StartEpisode()

	steps := 0
	for !e.Env.IsTerminal() && steps < e.MaxSteps {
		state := e.Env.State()
		action, ok := e.Learner.Action(state)
		if !ok {
			break
		}
		next, reward := e.Env.Step(action)
		e.Learner.ObserveTransition(state, action, next, reward)
		steps++
	}
	if steps == e.MaxSteps && !e.Env.IsTerminal() {
		log.Warn().Msgf("episode %d stopped at the step limit of %d", episode, e.MaxSteps)
	}

	return metrics.EpisodeRecord{
		Episode:  episode,
		Steps:    steps,
		Reward:   e.Learner.StopEpisode(),
		Training: training,
		Duration: time.Since(start),
	}
}
