package maze

import (
	"fmt"
	"slices"

	"pacai/game"
)

const (
	TimePenalty = 1
	FoodReward  = 10
	WinReward   = 500
	LoseReward  = -500
	GhostReward = 200
	ScaredTime  = 40
)

// GameState is a Pacman game on a layout. Agent 0 is Pacman, agent i > 0 is
// the ghost that started on Layout.Ghosts[i-1]. Successors never share
// mutable data with their parent.
type GameState struct {
	layout   *Layout
	pacman   game.Position
	ghosts   []game.Ghost
	food     []game.Position
	capsules []game.Position
	score    float64
	win      bool
	lose     bool
}

var _ game.PacmanState = (*GameState)(nil)

func NewGameState(layout *Layout) *GameState {
	s := &GameState{
		layout:   layout,
		pacman:   layout.Start,
		ghosts:   make([]game.Ghost, len(layout.Ghosts)),
		food:     slices.Clone(layout.Food),
		capsules: slices.Clone(layout.Capsules),
	}
	for i, p := range layout.Ghosts {
		s.ghosts[i] = game.Ghost{Position: p}
	}
	s.win = len(s.food) == 0
	return s
}

func (s *GameState) LegalActions(agent int) []game.Action {
	if s.IsOver() {
		return nil
	}
	if agent == 0 {
		return append(s.layout.Moves(s.pacman), game.Stop)
	}
	moves := s.layout.Moves(s.ghosts[agent-1].Position)
	if len(moves) == 0 {
		return []game.Action{game.Stop}
	}
	return moves
}

func (s *GameState) GenerateSuccessor(agent int, action game.Action) game.State {
	if !slices.Contains(s.LegalActions(agent), action) {
		panic(fmt.Sprintf("illegal action %s for agent %d", action, agent))
	}

	next := s.copy()
	if agent == 0 {
		next.movePacman(action)
		for i := range next.ghosts {
			next.collide(i)
		}
	} else {
		next.moveGhost(agent-1, action)
		next.collide(agent - 1)
	}
	return next
}

func (s *GameState) copy() *GameState {
	c := *s
	c.ghosts = slices.Clone(s.ghosts)
	return &c
}

func (s *GameState) movePacman(action game.Action) {
	s.score -= TimePenalty
	s.pacman = s.pacman.Move(action)

	if i := slices.Index(s.food, s.pacman); i >= 0 {
		s.food = slices.Delete(slices.Clone(s.food), i, i+1)
		s.score += FoodReward
		if len(s.food) == 0 {
			s.score += WinReward
			s.win = true
		}
	}
	if i := slices.Index(s.capsules, s.pacman); i >= 0 {
		s.capsules = slices.Delete(slices.Clone(s.capsules), i, i+1)
		for g := range s.ghosts {
			s.ghosts[g].ScaredTimer = ScaredTime
		}
	}
}

func (s *GameState) moveGhost(index int, action game.Action) {
	ghost := &s.ghosts[index]
	ghost.Position = ghost.Position.Move(action)
	if ghost.ScaredTimer > 0 {
		ghost.ScaredTimer--
	}
}

// collide resolves Pacman meeting ghost index: a scared ghost is eaten and
// sent home, any other ghost ends the game.
func (s *GameState) collide(index int) {
	if s.win || s.lose {
		return
	}
	ghost := &s.ghosts[index]
	if ghost.Position != s.pacman {
		return
	}
	if ghost.IsScared() {
		s.score += GhostReward
		ghost.Position = s.layout.Ghosts[index]
		ghost.ScaredTimer = 0
		return
	}
	s.score += LoseReward
	s.lose = true
}

func (s *GameState) NumAgents() int { return 1 + len(s.ghosts) }
func (s *GameState) IsWin() bool    { return s.win }
func (s *GameState) IsLose() bool   { return s.lose }
func (s *GameState) IsOver() bool   { return s.win || s.lose }
func (s *GameState) Score() float64 { return s.score }

func (s *GameState) PacmanPosition() game.Position { return s.pacman }

// Food returns the remaining food dots. Callers must not modify the slice.
func (s *GameState) Food() []game.Position { return s.food }

func (s *GameState) Ghosts() []game.Ghost { return slices.Clone(s.ghosts) }

func (s *GameState) String() string {
	marks := make(map[game.Position]rune, len(s.food)+len(s.capsules)+len(s.ghosts)+1)
	for _, p := range s.food {
		marks[p] = foodCell
	}
	for _, p := range s.capsules {
		marks[p] = capsuleCell
	}
	marks[s.pacman] = pacmanCell
	for _, g := range s.ghosts {
		marks[g.Position] = ghostCell
	}
	return s.layout.Draw(marks) + fmt.Sprintf("score: %g\n", s.score)
}
