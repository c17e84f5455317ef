package mdp

import (
	"fmt"
)

// chain is A -> B -> C with a reward of 10 on entering C. C is terminal.
func chain() *Tabular {
	return mustBuild(&Definition{
		Start: "A",
		States: []StateDefinition{
			{Name: "A", Actions: []ActionDefinition{deterministic("go", "B", 0)}},
			{Name: "B", Actions: []ActionDefinition{deterministic("go", "C", 10)}},
			{Name: "C"},
		},
	})
}

// exitChain is A -> B -> C where C pays 10 to exit into the absorbing state T.
func exitChain() *Tabular {
	return mustBuild(&Definition{
		Start: "A",
		States: []StateDefinition{
			{Name: "A", Actions: []ActionDefinition{deterministic("go", "B", 0)}},
			{Name: "B", Actions: []ActionDefinition{deterministic("go", "C", 0)}},
			{Name: "C", Actions: []ActionDefinition{deterministic("exit", "T", 10)}},
			{Name: "T"},
		},
	})
}

// gamble offers a sure 4 or a coin flip between 10 and 0.
func gamble() *Tabular {
	return mustBuild(&Definition{
		Start: "S",
		States: []StateDefinition{
			{Name: "S", Actions: []ActionDefinition{
				deterministic("safe", "Win", 4),
				{Name: "risky", Transitions: []TransitionDefinition{
					{Next: "Win", Probability: 0.5, Reward: 10},
					{Next: "Bust", Probability: 0.5, Reward: 0},
				}},
			}},
			{Name: "Win"},
			{Name: "Bust"},
		},
	})
}

func deterministic(action, next string, reward float64) ActionDefinition {
	return ActionDefinition{
		Name:        action,
		Transitions: []TransitionDefinition{{Next: next, Probability: 1, Reward: reward}},
	}
}

func mustBuild(def *Definition) *Tabular {
	t, err := def.Build()
	if err != nil {
		panic(fmt.Sprintf("invalid test mdp: %v", err))
	}
	return t
}
