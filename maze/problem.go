package maze

import (
	"fmt"
	"math"

	"pacai/game"
	"pacai/search"
)

// PositionProblem asks for a path from a start cell to a goal cell. Every
// move costs 1.
type PositionProblem struct {
	layout *Layout
	start  game.Position
	goal   game.Position
}

var _ search.Problem[game.Position, game.Action] = (*PositionProblem)(nil)

// NewPositionProblem searches from the layout's start to its only food dot.
func NewPositionProblem(layout *Layout) (*PositionProblem, error) {
	if len(layout.Food) != 1 {
		return nil, fmt.Errorf("layout %s must have exactly one food dot as the goal, found %d", layout.Name, len(layout.Food))
	}
	return &PositionProblem{layout: layout, start: layout.Start, goal: layout.Food[0]}, nil
}

func (p *PositionProblem) StartingState() game.Position {
	return p.start
}

func (p *PositionProblem) IsGoal(state game.Position) bool {
	return state == p.goal
}

func (p *PositionProblem) SuccessorStates(state game.Position) []search.Successor[game.Position, game.Action] {
	moves := p.layout.Moves(state)
	successors := make([]search.Successor[game.Position, game.Action], len(moves))
	for i, move := range moves {
		successors[i] = search.Successor[game.Position, game.Action]{
			State:  state.Move(move),
			Action: move,
			Cost:   1,
		}
	}
	return successors
}

func (p *PositionProblem) Goal() game.Position {
	return p.goal
}

func (p *PositionProblem) Layout() *Layout {
	return p.layout
}

func goalOf(problem search.Problem[game.Position, game.Action]) game.Position {
	withGoal, ok := problem.(interface{ Goal() game.Position })
	if !ok {
		panic("unexpected problem type")
	}
	return withGoal.Goal()
}

// ManhattanHeuristic is admissible and consistent for unit-cost grid moves.
func ManhattanHeuristic(state game.Position, problem search.Problem[game.Position, game.Action]) float64 {
	return float64(game.Manhattan(state, goalOf(problem)))
}

func EuclideanHeuristic(state game.Position, problem search.Problem[game.Position, game.Action]) float64 {
	goal := goalOf(problem)
	return math.Hypot(float64(state.X-goal.X), float64(state.Y-goal.Y))
}

// Replay checks that actions lead from the start to the goal and returns
// the cells visited on the way, start included.
func Replay(problem *PositionProblem, actions []game.Action) ([]game.Position, error) {
	end, _, ok := search.Replay[game.Position, game.Action](problem, actions)
	if !ok {
		return nil, fmt.Errorf("path runs into a wall before %v", end)
	}
	if !problem.IsGoal(end) {
		return nil, fmt.Errorf("path ends at %v instead of the goal %v", end, problem.goal)
	}

	path := make([]game.Position, 0, len(actions)+1)
	path = append(path, problem.start)
	for _, action := range actions {
		path = append(path, path[len(path)-1].Move(action))
	}
	return path, nil
}

// DrawPath renders the layout with the path marked.
func DrawPath(problem *PositionProblem, path []game.Position) string {
	marks := make(map[game.Position]rune, len(path)+2)
	for _, p := range path {
		marks[p] = '*'
	}
	marks[problem.start] = pacmanCell
	marks[problem.goal] = foodCell
	return problem.layout.Draw(marks)
}
