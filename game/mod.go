package game

// Action is a move token. Pacman actions are compass directions plus Stop.
type Action string

const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
	Stop  Action = "Stop"

	// NoAction is returned when a state offers no legal actions.
	NoAction Action = ""
)

// Directions lists the movement actions in a fixed order.
var Directions = []Action{North, South, East, West}

// State should be immutable - GenerateSuccessor always returns a new state.
// Agent 0 is the protagonist; agents 1..NumAgents()-1 are adversaries.
type State interface {
	LegalActions(agent int) []Action
	GenerateSuccessor(agent int, action Action) State
	NumAgents() int
	IsWin() bool
	IsLose() bool
	IsOver() bool
	Score() float64
}

// Position is a grid cell.
type Position struct {
	X int
	Y int
}

// Move returns the neighbouring cell in the given direction. North increases Y.
func (p Position) Move(action Action) Position {
	switch action {
	case North:
		return Position{p.X, p.Y + 1}
	case South:
		return Position{p.X, p.Y - 1}
	case East:
		return Position{p.X + 1, p.Y}
	case West:
		return Position{p.X - 1, p.Y}
	default:
		return p
	}
}

func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Ghost is an adversary as seen by the evaluation heuristic.
type Ghost struct {
	Position    Position
	ScaredTimer int // Moves left while the ghost is edible, 0 if dangerous
}

func (g Ghost) IsScared() bool {
	return g.ScaredTimer > 0
}

// PacmanState exposes the accessors the position evaluation needs.
type PacmanState interface {
	State
	PacmanPosition() Position
	Food() []Position
	Ghosts() []Ghost
}

// Evaluate scores a state from the protagonist's perspective, higher is better.
type Evaluate func(State) float64

// ActionEvaluate scores taking action from state.
type ActionEvaluate func(State, Action) float64
