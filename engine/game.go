package engine

import (
	"time"

	"pacai/experiments/metrics"
	"pacai/game"
	"pacai/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MaxMoves = 500

// GhostAgent picks the move of an adversary.
type GhostAgent interface {
	Action(state game.State, agent int) game.Action
}

// RandomGhost moves uniformly at random among its legal actions.
type RandomGhost struct {
	rng *rand.Rand
}

func NewRandomGhost(rng *rand.Rand) *RandomGhost {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &RandomGhost{rng: rng}
}

func (g *RandomGhost) Action(state game.State, agent int) game.Action {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return game.NoAction
	}
	return actions[g.rng.Intn(len(actions))]
}

type GameResult struct {
	Win   bool
	Lose  bool
	Score float64
	Moves int // Protagonist moves
}

// GameEngine plays a game between a searching protagonist and ghost agents.
type GameEngine struct {
	State    game.State
	Pacman   agent.Agent
	Ghosts   []GhostAgent
	MaxMoves int
}

func NewGameEngine(state game.State, pacman agent.Agent, ghosts []GhostAgent, maxMoves int) *GameEngine {
	if len(ghosts) != state.NumAgents()-1 {
		panic("number of ghosts does not match number of adversaries")
	}
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}
	return &GameEngine{
		State:    state,
		Pacman:   pacman,
		Ghosts:   ghosts,
		MaxMoves: maxMoves,
	}
}

// Run executes the game loop until the game is over or the protagonist made
// MaxMoves moves. It returns the outcome and the search metrics of each move.
func (e *GameEngine) Run() (GameResult, []metrics.SearchRecord) {
	var records []metrics.SearchRecord

	moves := 0
	for !e.State.IsOver() && moves < e.MaxMoves {
		for agentIndex := 0; agentIndex < e.State.NumAgents() && !e.State.IsOver(); agentIndex++ {
			var action game.Action
			if agentIndex == 0 {
				var metric metrics.SearchMetric
				action, metric = e.Pacman.FindMove(e.State)
				moves++
				records = append(records, metrics.SearchRecord{Step: moves, SearchMetric: metric})
			} else {
				action = e.Ghosts[agentIndex-1].Action(e.State, agentIndex)
			}
			if action == game.NoAction {
				continue
			}
			e.State = e.State.GenerateSuccessor(agentIndex, action)
		}
	}

	result := GameResult{
		Win:   e.State.IsWin(),
		Lose:  e.State.IsLose(),
		Score: e.State.Score(),
		Moves: moves,
	}
	switch {
	case result.Win:
		log.Info().Msgf("protagonist won after %d moves with score %g", moves, result.Score)
	case result.Lose:
		log.Info().Msgf("protagonist lost after %d moves with score %g", moves, result.Score)
	default:
		log.Info().Msgf("stopped after %d moves (no winner yet) with score %g", moves, result.Score)
	}
	return result, records
}
