package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for a won game
const Loss = -Win // Reward for a lost game, also the virtual loss

// RewardScale squashes evaluations of unfinished rollouts into (Loss, Win).
const RewardScale = 100.0

// ucb1 = q/n + sqrt(c^2*ln(N)/n), where normalizer = c^2*ln(N)
func ucb1(rewards float64, visits int, normalizer float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	n := float64(visits)
	return rewards/n + math.Sqrt(normalizer/n)
}

// reward maps the outcome of a rollout to the protagonist's reward.
func reward(win, lose bool, evaluation float64) float64 {
	switch {
	case win:
		return Win
	case lose:
		return Loss
	default:
		return math.Tanh(evaluation / RewardScale)
	}
}
