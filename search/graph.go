package search

import (
	"pacai/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Successor is one outgoing edge of a state. Cost must be non-negative.
type Successor[S comparable, A any] struct {
	State  S
	Action A
	Cost   float64
}

// Problem is the capability a search algorithm needs from the environment.
type Problem[S comparable, A any] interface {
	StartingState() S
	IsGoal(state S) bool
	SuccessorStates(state S) []Successor[S, A]
}

// Heuristic estimates the remaining cost from state to the nearest goal.
// AStar only guarantees a minimum-cost path when the heuristic is admissible.
type Heuristic[S comparable, A any] func(state S, problem Problem[S, A]) float64

// NullHeuristic reduces AStar to UniformCost.
func NullHeuristic[S comparable, A any](S, Problem[S, A]) float64 {
	return 0
}

type Option func(*options)

type options struct {
	metrics metrics.Collector
}

func WithMetrics(collector metrics.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

type node[S comparable, A any] struct {
	state S
	path  []A
	cost  float64
}

// DepthFirst returns some path to a goal, without optimality guarantees.
func DepthFirst[S comparable, A any](problem Problem[S, A], opts ...Option) []A {
	return graphSearch(problem, NewStack[node[S, A]](), "dfs", nil, opts)
}

// BreadthFirst returns a path with the fewest actions.
func BreadthFirst[S comparable, A any](problem Problem[S, A], opts ...Option) []A {
	return graphSearch(problem, NewQueue[node[S, A]](), "bfs", nil, opts)
}

// UniformCost returns a path with the lowest cumulative cost.
func UniformCost[S comparable, A any](problem Problem[S, A], opts ...Option) []A {
	return graphSearch(problem, NewPriorityQueue[node[S, A]](), "ucs", nil, opts)
}

// AStar orders the frontier by cumulative cost plus heuristic estimate.
func AStar[S comparable, A any](problem Problem[S, A], heuristic Heuristic[S, A], opts ...Option) []A {
	if heuristic == nil {
		heuristic = NullHeuristic[S, A]
	}
	estimate := func(state S) float64 { return heuristic(state, problem) }
	return graphSearch(problem, NewPriorityQueue[node[S, A]](), "astar", estimate, opts)
}

// graphSearch tests for the goal when a node is popped and marks states as
// visited when they are expanded. An empty path means no goal is reachable,
// unless the starting state is itself a goal.
func graphSearch[S comparable, A any](
	problem Problem[S, A],
	frontier Frontier[node[S, A]],
	algorithm string,
	estimate func(S) float64,
	opts []Option,
) []A {
	if problem == nil {
		panic("search problem is nil")
	}
	o := options{metrics: metrics.NewDummyCollector()}
	for _, opt := range opts {
		opt(&o)
	}
	o.metrics.Start(algorithm)

	priority := func(n node[S, A]) float64 {
		if estimate == nil {
			return n.cost
		}
		return n.cost + estimate(n.state)
	}

	start := node[S, A]{state: problem.StartingState()}
	frontier.Push(start, priority(start))
	visited := make(map[S]struct{})

	for !frontier.IsEmpty() {
		current := frontier.Pop()
		if problem.IsGoal(current.state) {
			metric := o.metrics.Complete()
			log.Debug().Msgf("%s found a path of %d actions with cost %g after %d expansions",
				algorithm, len(current.path), current.cost, metric.Expansions)
			return current.path
		}
		if _, ok := visited[current.state]; ok {
			continue
		}
		visited[current.state] = struct{}{}
		o.metrics.AddExpansion()

		for _, successor := range problem.SuccessorStates(current.state) {
			if _, ok := visited[successor.State]; ok {
				continue
			}
			path := make([]A, len(current.path)+1)
			copy(path, current.path)
			path[len(current.path)] = successor.Action
			child := node[S, A]{
				state: successor.State,
				path:  path,
				cost:  current.cost + successor.Cost,
			}
			frontier.Push(child, priority(child))
		}
	}

	log.Debug().Msgf("%s exhausted the frontier after visiting %d states", algorithm, len(visited))
	return nil
}

// Replay follows actions from the starting state, choosing the first
// successor reached by each action. It returns the final state and total
// cost, or ok == false if some action is not available.
func Replay[S comparable, A comparable](problem Problem[S, A], actions []A) (state S, cost float64, ok bool) {
	state = problem.StartingState()
	for _, action := range actions {
		found := false
		for _, successor := range problem.SuccessorStates(state) {
			if successor.Action == action {
				state = successor.State
				cost += successor.Cost
				found = true
				break
			}
		}
		if !found {
			return state, cost, false
		}
	}
	return state, cost, true
}
