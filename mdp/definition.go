package mdp

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// probabilityTolerance bounds how far an action's probabilities may sum from 1.
const probabilityTolerance = 1e-9

// Definition is the file format of an explicit MDP:
//
//	start: A
//	states:
//	  - name: A
//	    actions:
//	      - name: go
//	        transitions:
//	          - {next: B, probability: 1, reward: 0}
//	  - name: B
type Definition struct {
	Start  string            `yaml:"start"`
	States []StateDefinition `yaml:"states"`
}

type StateDefinition struct {
	Name    string             `yaml:"name"`
	Actions []ActionDefinition `yaml:"actions"`
}

type ActionDefinition struct {
	Name        string                 `yaml:"name"`
	Transitions []TransitionDefinition `yaml:"transitions"`
}

type TransitionDefinition struct {
	Next        string  `yaml:"next"`
	Probability float64 `yaml:"probability"`
	Reward      float64 `yaml:"reward"`
}

// Load reads and validates a definition file.
func Load(path string) (*Tabular, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read mdp definition %s", path)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse mdp definition %s", path)
	}
	return def.Build()
}

func Parse(data []byte) (*Definition, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	def := &Definition{}
	if err := decoder.Decode(def); err != nil {
		return nil, errors.Wrap(err, "invalid yaml")
	}
	return def, nil
}

// Validate reports every structural problem of the definition at once.
func (d *Definition) Validate() error {
	var result *multierror.Error

	if len(d.States) == 0 {
		result = multierror.Append(result, fmt.Errorf("no states defined"))
	}

	names := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		if s.Name == "" {
			result = multierror.Append(result, fmt.Errorf("state without a name"))
			continue
		}
		if names[s.Name] {
			result = multierror.Append(result, fmt.Errorf("duplicate state %q", s.Name))
		}
		names[s.Name] = true
	}

	if d.Start != "" && !names[d.Start] {
		result = multierror.Append(result, fmt.Errorf("unknown start state %q", d.Start))
	}

	for _, s := range d.States {
		actions := make(map[string]bool, len(s.Actions))
		for _, a := range s.Actions {
			if actions[a.Name] {
				result = multierror.Append(result, fmt.Errorf("state %q: duplicate action %q", s.Name, a.Name))
			}
			actions[a.Name] = true

			if len(a.Transitions) == 0 {
				result = multierror.Append(result, fmt.Errorf("state %q action %q: no transitions", s.Name, a.Name))
				continue
			}
			sum := 0.0
			nexts := make(map[string]bool, len(a.Transitions))
			for _, t := range a.Transitions {
				if !names[t.Next] {
					result = multierror.Append(result, fmt.Errorf("state %q action %q: unknown next state %q", s.Name, a.Name, t.Next))
				}
				if nexts[t.Next] {
					result = multierror.Append(result, fmt.Errorf("state %q action %q: duplicate next state %q", s.Name, a.Name, t.Next))
				}
				nexts[t.Next] = true
				if t.Probability < 0 {
					result = multierror.Append(result, fmt.Errorf("state %q action %q: negative probability %g", s.Name, a.Name, t.Probability))
				}
				sum += t.Probability
			}
			if math.Abs(sum-1) > probabilityTolerance {
				result = multierror.Append(result, fmt.Errorf("state %q action %q: probabilities sum to %g", s.Name, a.Name, sum))
			}
		}
	}

	return result.ErrorOrNil()
}

// Build validates the definition and indexes it for lookups.
func (d *Definition) Build() (*Tabular, error) {
	if err := d.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mdp definition")
	}

	t := &Tabular{
		start:       d.Start,
		states:      make([]string, 0, len(d.States)),
		actions:     make(map[string][]string, len(d.States)),
		transitions: make(map[stateAction][]Transition[string]),
		rewards:     make(map[outcome]float64),
	}
	if t.start == "" {
		t.start = d.States[0].Name
	}
	for _, s := range d.States {
		t.states = append(t.states, s.Name)
		for _, a := range s.Actions {
			t.actions[s.Name] = append(t.actions[s.Name], a.Name)
			key := stateAction{state: s.Name, action: a.Name}
			for _, tr := range a.Transitions {
				t.transitions[key] = append(t.transitions[key], Transition[string]{State: tr.Next, Probability: tr.Probability})
				t.rewards[outcome{stateAction: key, next: tr.Next}] = tr.Reward
			}
		}
	}
	return t, nil
}

type stateAction struct {
	state  string
	action string
}

type outcome struct {
	stateAction
	next string
}

// Tabular is an MDP over named states and actions.
type Tabular struct {
	start       string
	states      []string
	actions     map[string][]string
	transitions map[stateAction][]Transition[string]
	rewards     map[outcome]float64
}

var _ MDP[string, string] = (*Tabular)(nil)

// Start is the configured start state, or the first state listed.
func (t *Tabular) Start() string {
	return t.start
}

func (t *Tabular) States() []string {
	return t.states
}

func (t *Tabular) PossibleActions(state string) []string {
	return t.actions[state]
}

func (t *Tabular) TransitionStatesAndProbs(state string, action string) []Transition[string] {
	return t.transitions[stateAction{state: state, action: action}]
}

func (t *Tabular) Reward(state string, action string, next string) float64 {
	return t.rewards[outcome{stateAction: stateAction{state: state, action: action}, next: next}]
}
