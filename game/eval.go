package game

import "math"

// Weights of the position evaluation
const (
	WinScore  = 1e6 // Dominates every other term
	LoseScore = -WinScore

	FoodWeight      = 10.0 // Reciprocal distance to the nearest food
	GhostWeight     = 10.0 // Reciprocal distance to the nearest dangerous ghost
	FoodCountWeight = 4.0  // Per remaining food item
	ScaredWeight    = 2.0  // Scared timer over distance, per scared ghost
	StopPenalty     = 5.0

	// DistanceOffset keeps every reciprocal distance term finite
	DistanceOffset = 0.1
)

// EvaluateScore returns the game score unchanged.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluatePosition rewards being close to food, far from dangerous ghosts and
// close to scared ones, and having little food left.
func EvaluatePosition(s State) float64 {
	ps, ok := s.(PacmanState)
	if !ok {
		panic("unexpected state type")
	}
	if ps.IsWin() {
		return WinScore
	}
	if ps.IsLose() {
		return LoseScore
	}

	pacman := ps.PacmanPosition()
	score := ps.Score()

	food := ps.Food()
	if nearest, ok := nearestDistance(pacman, food); ok {
		score += FoodWeight / (nearest + DistanceOffset)
	}
	score -= FoodCountWeight * float64(len(food))

	dangerous := []Position{}
	for _, ghost := range ps.Ghosts() {
		if !ghost.IsScared() {
			dangerous = append(dangerous, ghost.Position)
			continue
		}
		distance := float64(Manhattan(pacman, ghost.Position))
		score += ScaredWeight * float64(ghost.ScaredTimer) / (distance + DistanceOffset)
	}
	if nearest, ok := nearestDistance(pacman, dangerous); ok {
		score -= GhostWeight / (nearest + DistanceOffset)
	}

	return score
}

// EvaluateAction evaluates the protagonist's successor after action and
// penalizes standing still.
func EvaluateAction(s State, action Action) float64 {
	score := EvaluatePosition(s.GenerateSuccessor(0, action))
	if action == Stop {
		score -= StopPenalty
	}
	return score
}

func nearestDistance(from Position, targets []Position) (float64, bool) {
	if len(targets) == 0 {
		return 0, false
	}
	nearest := math.MaxInt
	for _, target := range targets {
		nearest = min(nearest, Manhattan(from, target))
	}
	return float64(nearest), true
}
