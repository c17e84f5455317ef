package searcher

import (
	"math"
	"sync"

	"pacai/game"
)

// node is a state in the search tree where agent is to move. rewards are
// summed from the perspective of the agent that chose this node.
type node struct {
	sync.Mutex
	parent   *node
	agent    int
	actions  []game.Action
	children []*node
	rewards  float64
	visits   int
}

func newNode(parent *node, state game.State, agent int) *node {
	var actions []game.Action
	if !state.IsWin() && !state.IsLose() && !state.IsOver() {
		actions = state.LegalActions(agent)
	}
	return &node{
		parent:   parent,
		agent:    agent,
		actions:  actions,
		children: make([]*node, 0, len(actions)),
	}
}

// selectOrExpand descends one level. It returns selected == false when the
// node is terminal or when it has just expanded a new child.
func (n *node) selectOrExpand(state game.State) (child *node, childState game.State, selected bool, expanded bool) {
	n.Lock()
	defer n.Unlock()

	if len(n.actions) == 0 { // Terminal node
		return n, state, false, false
	}

	nextAgent := (n.agent + 1) % state.NumAgents()
	if len(n.actions) > len(n.children) { // Expandable node
		action := n.actions[len(n.children)]
		childState = state.GenerateSuccessor(n.agent, action)
		child = newNode(n, childState, nextAgent)
		n.children = append(n.children, child)
		child.applyLoss()
		return child, childState, false, true
	}

	// Fully expanded node
	ith := n.pickChild()
	child = n.children[ith]
	child.applyLoss()
	return child, state.GenerateSuccessor(n.agent, n.actions[ith]), true, false
}

func (n *node) pickChild() int {
	normalizer := CSquared * math.Log(float64(max(n.visits, 1)))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		if score := child.score(normalizer); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss discourages other goroutines from following the same path until
// backup reverses it.
func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += Loss
	n.visits++
}

func (n *node) score(normalizer float64) float64 {
	n.Lock()
	defer n.Unlock()

	return ucb1(n.rewards, n.visits, normalizer)
}

// backup adds the protagonist's reward and returns the parent.
func (n *node) backup(reward float64) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent == nil { // Root node
		n.visits++
		return nil
	}

	n.rewards -= Loss // Reverse the virtual loss
	if n.parent.agent == Protagonist {
		n.rewards += reward
	} else {
		n.rewards -= reward
	}
	return n.parent
}

func (n *node) bestAction() (game.Action, int) {
	n.Lock()
	defer n.Unlock()

	best := -1
	maxVisits := -1
	for i, child := range n.children {
		if visits := child.visitCount(); visits > maxVisits {
			maxVisits = visits
			best = i
		}
	}
	if best < 0 {
		return game.NoAction, 0
	}
	return n.actions[best], maxVisits
}

func (n *node) visitCount() int {
	n.Lock()
	defer n.Unlock()

	return n.visits
}
