package mdp

import (
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// ValueIteration runs a fixed number of synchronous Bellman backups. Every
// sweep reads only the values of the previous sweep.
type ValueIteration[S comparable, A comparable] struct {
	mdp        MDP[S, A]
	discount   float64
	iterations int
	values     map[S]float64
}

func NewValueIteration[S comparable, A comparable](mdp MDP[S, A], discount float64, iterations int) *ValueIteration[S, A] {
	if mdp == nil {
		panic("mdp is nil")
	}
	v := &ValueIteration[S, A]{
		mdp:        mdp,
		discount:   discount,
		iterations: iterations,
		values:     make(map[S]float64),
	}
	for i := 0; i < iterations; i++ {
		residual := v.Sweep()
		log.Debug().Msgf("value iteration sweep %d of %d: residual %g", i+1, iterations, residual)
	}
	return v
}

// Sweep performs one more backup over every state and returns the largest
// absolute change of any state's value.
func (v *ValueIteration[S, A]) Sweep() float64 {
	states := v.mdp.States()
	next := make(map[S]float64, len(states))
	for _, state := range states {
		actions := v.mdp.PossibleActions(state)
		if len(actions) == 0 { // Terminal
			next[state] = 0
			continue
		}
		best := math.Inf(-1)
		for _, action := range actions {
			best = max(best, v.QValue(state, action))
		}
		next[state] = best
	}

	before := make([]float64, len(states))
	after := make([]float64, len(states))
	for i, state := range states {
		before[i] = v.values[state]
		after[i] = next[state]
	}
	v.values = next

	if len(states) == 0 {
		return 0
	}
	return floats.Distance(before, after, math.Inf(1))
}

// Value returns the value of state after the configured sweeps, 0 if unknown.
func (v *ValueIteration[S, A]) Value(state S) float64 {
	return v.values[state]
}

// Values returns a copy of the value table.
func (v *ValueIteration[S, A]) Values() map[S]float64 {
	values := make(map[S]float64, len(v.values))
	for state, value := range v.values {
		values[state] = value
	}
	return values
}

// QValue recomputes the expected discounted return of action in state
// against the current value table.
func (v *ValueIteration[S, A]) QValue(state S, action A) float64 {
	q := 0.0
	for _, t := range v.mdp.TransitionStatesAndProbs(state, action) {
		reward := v.mdp.Reward(state, action, t.State)
		q += t.Probability * (reward + v.discount*v.values[t.State])
	}
	return q
}

// Policy returns the first action with the greatest QValue, or ok == false
// when state is terminal.
func (v *ValueIteration[S, A]) Policy(state S) (action A, ok bool) {
	best := math.Inf(-1)
	for _, candidate := range v.mdp.PossibleActions(state) {
		q := v.QValue(state, candidate)
		if !ok || q > best {
			best = q
			action = candidate
			ok = true
		}
	}
	return action, ok
}

// Action follows the policy without exploration.
func (v *ValueIteration[S, A]) Action(state S) (A, bool) {
	return v.Policy(state)
}
