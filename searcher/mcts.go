package searcher

import (
	"sync"
	"time"

	"pacai/experiments/metrics"
	"pacai/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MCTS estimates the value of each protagonist action with random playouts,
// growing a tree guided by UCT. Adversaries choose moves that are bad for the
// protagonist. Simulations run in parallel and share the tree.
type MCTS struct {
	config
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{config: newConfig(options)}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// FindMove returns the most visited root action after the simulations.
func (m *MCTS) FindMove(state game.State) (game.Action, metrics.SearchMetric) {
	m.metrics.Start("mcts")
	root := newNode(nil, state, Protagonist)
	if len(root.actions) > 0 {
		if m.episodes > 0 {
			m.iterate(root, state)
		} else {
			m.countdown(root, state)
		}
	}
	action, visits := root.bestAction()
	metric := m.metrics.Complete()
	metric.Algorithm = "mcts"

	log.Debug().Msgf("mcts chose %s with %d of %d visits (%d episodes, %d expansions)",
		action, visits, root.visitCount(), metric.Episodes, metric.Expansions)
	return action, metric
}

func (m *MCTS) iterate(root *node, state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for range task {
				m.simulate(root, state, rng)
				m.metrics.AddEpisode()
			}
		}(m.rng(i))
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *node, state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, state, rng)
					m.metrics.AddEpisode()
				}
			}
		}(m.rng(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// rng gives every goroutine its own source; rand.Rand is not safe for concurrent use.
func (m *MCTS) rng(goroutine int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + uint64(goroutine)))
}

func (m *MCTS) simulate(root *node, state game.State, rng *rand.Rand) {
	leaf, leafState := m.selectThenExpand(root, state)
	score := m.rollout(leafState, leaf.agent, rng)
	backup(leaf, score)
}

func (m *MCTS) selectThenExpand(root *node, state game.State) (*node, game.State) {
	child, state, selected, expanded := root.selectOrExpand(state)
	for selected {
		child, state, selected, expanded = child.selectOrExpand(state)
	}
	if expanded {
		m.metrics.AddExpansion()
	}
	return child, state
}

// rollout plays random moves from agent on until the game ends or cutoff
// moves were made, and returns the protagonist's reward.
func (m *MCTS) rollout(state game.State, agent int, rng *rand.Rand) float64 {
	for moves := 0; moves < m.cutoff && !state.IsWin() && !state.IsLose() && !state.IsOver(); moves++ {
		actions := state.LegalActions(agent)
		if len(actions) == 0 {
			break
		}
		state = state.GenerateSuccessor(agent, actions[rng.Intn(len(actions))]) // Random rollout policy
		agent = (agent + 1) % state.NumAgents()
	}

	if state.IsWin() || state.IsLose() {
		return reward(state.IsWin(), state.IsLose(), 0)
	}
	return reward(false, false, m.leaf(state))
}

func backup(leaf *node, score float64) {
	for n := leaf; n != nil; {
		n = n.backup(score)
	}
}
