package searcher

import (
	"fmt"

	"pacai/game"

	"golang.org/x/exp/rand"
)

// mockState is an explicit game tree. Whoever is to move picks among the
// node's children; Score is the node's static evaluation.
type mockState struct {
	agents   int
	score    float64
	win      bool
	lose     bool
	actions  []game.Action
	children []*mockState
}

func (m *mockState) LegalActions(agent int) []game.Action {
	return m.actions
}

func (m *mockState) GenerateSuccessor(agent int, action game.Action) game.State {
	for i, a := range m.actions {
		if a == action {
			return m.children[i]
		}
	}
	panic(fmt.Sprintf("illegal action %s", action))
}

func (m *mockState) NumAgents() int { return m.agents }
func (m *mockState) IsWin() bool    { return m.win }
func (m *mockState) IsLose() bool   { return m.lose }
func (m *mockState) IsOver() bool   { return false }
func (m *mockState) Score() float64 { return m.score }

// leaf builds a state without moves.
func leaf(agents int, score float64) *mockState {
	return &mockState{agents: agents, score: score}
}

// branch builds a state whose actions are named a0, a1, ... in order.
func branch(agents int, score float64, children ...*mockState) *mockState {
	s := &mockState{agents: agents, score: score, children: children}
	for i := range children {
		s.actions = append(s.actions, game.Action(fmt.Sprintf("a%d", i)))
	}
	return s
}

// leaves builds a minimizing layer of leaves with the given scores.
func leaves(agents int, scores ...float64) *mockState {
	children := make([]*mockState, len(scores))
	for i, score := range scores {
		children[i] = leaf(agents, score)
	}
	return branch(agents, 0, children...)
}

// randomTree builds a tree with small integer scores so that ties are common.
func randomTree(rng *rand.Rand, agents, height int) *mockState {
	s := &mockState{agents: agents, score: float64(rng.Intn(9) - 4)}
	if height == 0 {
		return s
	}
	switch rng.Intn(20) {
	case 0:
		s.win = true
	case 1:
		s.lose = true
	}
	width := rng.Intn(4)
	if height > 3 && width == 0 {
		width = 1
	}
	for i := 0; i < width; i++ {
		s.actions = append(s.actions, game.Action(fmt.Sprintf("a%d", i)))
		s.children = append(s.children, randomTree(rng, agents, height-1))
	}
	return s
}
