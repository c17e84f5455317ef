// Package mdp plans over a known Markov decision process.
package mdp

// Transition is one possible outcome of taking an action.
type Transition[S comparable] struct {
	State       S
	Probability float64
}

// MDP is a finite Markov decision process. A state with no possible actions
// is terminal. The probabilities of TransitionStatesAndProbs sum to 1.
type MDP[S comparable, A comparable] interface {
	States() []S
	PossibleActions(state S) []A
	TransitionStatesAndProbs(state S, action A) []Transition[S]
	Reward(state S, action A, next S) float64
}
