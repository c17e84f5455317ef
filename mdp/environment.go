package mdp

import (
	"time"

	"golang.org/x/exp/rand"
)

// Environment simulates an MDP one step at a time for model-free learners.
type Environment[S comparable, A comparable] struct {
	mdp   MDP[S, A]
	start S
	state S
	rng   *rand.Rand
}

func NewEnvironment[S comparable, A comparable](mdp MDP[S, A], start S, rng *rand.Rand) *Environment[S, A] {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Environment[S, A]{mdp: mdp, start: start, state: start, rng: rng}
}

func (e *Environment[S, A]) State() S {
	return e.state
}

// PossibleActions lists the actions available in state. It matches the
// signature learners use to look up legal actions.
func (e *Environment[S, A]) PossibleActions(state S) []A {
	return e.mdp.PossibleActions(state)
}

func (e *Environment[S, A]) IsTerminal() bool {
	return len(e.mdp.PossibleActions(e.state)) == 0
}

func (e *Environment[S, A]) Reset() {
	e.state = e.start
}

// Step samples the next state of action and moves there.
func (e *Environment[S, A]) Step(action A) (next S, reward float64) {
	transitions := e.mdp.TransitionStatesAndProbs(e.state, action)
	if len(transitions) == 0 {
		panic("action has no transitions")
	}

	sampled := e.rng.Float64()
	cumulative := 0.0
	next = transitions[len(transitions)-1].State // Fallback in case of rounding errors
	for _, t := range transitions {
		cumulative += t.Probability
		if sampled < cumulative {
			next = t.State
			break
		}
	}

	reward = e.mdp.Reward(e.state, action, next)
	e.state = next
	return next, reward
}
