package experiments

import (
	"fmt"

	"pacai/config"
	"pacai/engine"
	"pacai/experiments/metrics"
	"pacai/game"
	"pacai/learning"
	"pacai/maze"
	"pacai/mdp"
	"pacai/search"
	"pacai/searcher"
	"pacai/searcher/agent"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type (
	problem   = search.Problem[game.Position, game.Action]
	heuristic = search.Heuristic[game.Position, game.Action]
)

// GraphSearch runs one graph search algorithm on a grid problem.
type GraphSearch func(p problem, h heuristic, options ...search.Option) []game.Action

var GraphSearches = map[string]GraphSearch{
	"dfs": func(p problem, _ heuristic, options ...search.Option) []game.Action {
		return search.DepthFirst(p, options...)
	},
	"bfs": func(p problem, _ heuristic, options ...search.Option) []game.Action {
		return search.BreadthFirst(p, options...)
	},
	"ucs": func(p problem, _ heuristic, options ...search.Option) []game.Action {
		return search.UniformCost(p, options...)
	},
	"astar": search.AStar[game.Position, game.Action],
}

// SearchOrder is the order in which all graph searches are compared.
var SearchOrder = []string{"dfs", "bfs", "ucs", "astar"}

var Heuristics = map[string]heuristic{
	"null":      search.NullHeuristic[game.Position, game.Action],
	"manhattan": maze.ManhattanHeuristic,
	"euclidean": maze.EuclideanHeuristic,
}

type SearchResult struct {
	Algorithm string
	Path      []game.Position
	Actions   []game.Action
	Metric    metrics.SearchMetric
}

// RunSearch solves a position problem with cfg.Algorithm, or with every
// algorithm when it is "all", and stores one search record per run.
func RunSearch(p *maze.PositionProblem, cfg *config.Config) ([]SearchResult, error) {
	h, ok := Heuristics[cfg.Heuristic]
	if !ok {
		return nil, fmt.Errorf("unknown heuristic %s", cfg.Heuristic)
	}
	algorithms := []string{cfg.Algorithm}
	if cfg.Algorithm == "all" {
		algorithms = SearchOrder
	}

	results := make([]SearchResult, 0, len(algorithms))
	records := make([]metrics.SearchRecord, 0, len(algorithms))
	collector := metrics.NewCollector()
	for i, name := range algorithms {
		run, ok := GraphSearches[name]
		if !ok {
			return nil, fmt.Errorf("unknown search algorithm %s", name)
		}

		actions := run(p, h, search.WithMetrics(collector))
		metric := collector.Complete()
		metric.Algorithm = name

		var path []game.Position
		if len(actions) > 0 || p.IsGoal(p.StartingState()) {
			var err error
			path, err = maze.Replay(p, actions)
			if err != nil {
				return nil, errors.Wrapf(err, "%s returned an invalid path", name)
			}
		}
		log.Info().Msgf("%s found a path of length %d after %d expansions", name, len(actions), metric.Expansions)

		results = append(results, SearchResult{Algorithm: name, Path: path, Actions: actions, Metric: metric})
		records = append(records, metrics.SearchRecord{Step: i + 1, SearchMetric: metric})
	}

	if err := store(cfg, "search", func(w *metrics.Writer) error { return w.WriteSearchRecords(records) }); err != nil {
		return nil, err
	}
	return results, nil
}

// RunGames plays games on layout with the named adversarial searcher
// against random ghosts and stores the search record of every move.
func RunGames(layout *maze.Layout, name string, games int, cfg *config.Config) ([]engine.GameResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	results := make([]engine.GameResult, 0, games)
	var records []metrics.SearchRecord

	for i := 0; i < games; i++ {
		inner, ok := agent.New(name,
			searcher.WithDepth(cfg.Depth),
			searcher.WithEvaluationFn(game.EvaluatePosition),
			searcher.WithMetrics(metrics.NewCollector()),
		)
		if !ok {
			return nil, fmt.Errorf("unknown adversarial searcher %s", name)
		}
		pacman := agent.NewRecordingAgent(inner)

		ghosts := make([]engine.GhostAgent, len(layout.Ghosts))
		for g := range ghosts {
			ghosts[g] = engine.NewRandomGhost(rand.New(rand.NewSource(rng.Uint64())))
		}

		log.Info().Msgf("starting game %d of %d...", i+1, games)
		result, _ := engine.NewGameEngine(maze.NewGameState(layout), pacman, ghosts, cfg.MaxSteps).Run()
		results = append(results, result)
		records = append(records, pacman.Records()...)
	}

	if err := store(cfg, "games", func(w *metrics.Writer) error { return w.WriteSearchRecords(records) }); err != nil {
		return nil, err
	}
	return results, nil
}

type ValueIterationResult struct {
	Values map[string]float64
	Policy map[string]string
}

// RunValueIteration plans over m. Terminal states have no policy entry.
func RunValueIteration(m *mdp.Tabular, cfg *config.Config) ValueIterationResult {
	v := mdp.NewValueIteration[string, string](m, cfg.Discount, cfg.Iterations)
	policy := make(map[string]string)
	for _, state := range m.States() {
		if action, ok := v.Policy(state); ok {
			policy[state] = action
		}
	}
	return ValueIterationResult{Values: v.Values(), Policy: policy}
}

type QLearningResult struct {
	Records []metrics.EpisodeRecord
	Learner *learning.QLearner[string, string]
}

// RunQLearning trains a Q-learner on m for cfg.Episodes episodes and stores
// the episode records.
func RunQLearning(m *mdp.Tabular, cfg *config.Config, collector metrics.Collector) (*QLearningResult, error) {
	env := mdp.NewEnvironment[string, string](m, m.Start(), rand.New(rand.NewSource(cfg.Seed)))

	var estimator learning.Estimator[string, string]
	switch cfg.Estimator {
	case "table":
		estimator = learning.NewTable[string, string]()
	case "linear":
		estimator = learning.NewLinearApproximation[string, string](learning.IdentityExtractor[string, string]{})
	default:
		return nil, fmt.Errorf("unknown estimator %s", cfg.Estimator)
	}

	learner := learning.NewQLearner[string, string](env, estimator,
		learning.WithAlpha(cfg.Alpha),
		learning.WithEpsilon(cfg.Epsilon),
		learning.WithDiscount(cfg.Gamma),
		learning.WithNumTraining(cfg.NumTraining),
		learning.WithRand(rand.New(rand.NewSource(cfg.Seed+1))),
	)
	records := engine.NewLocalEngine[string, string](env, learner, cfg.MaxSteps, collector).Run(cfg.Episodes)

	if err := store(cfg, "qlearning", func(w *metrics.Writer) error { return w.WriteEpisodeRecords(records) }); err != nil {
		return nil, err
	}
	return &QLearningResult{Records: records, Learner: learner}, nil
}

// store writes records below cfg.OutputDir/name/<run id>.
func store(cfg *config.Config, name string, write func(w *metrics.Writer) error) error {
	runID := uuid.NewString()
	writer, err := metrics.NewWriter(cfg.OutputDir, name, runID)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}
	if err := write(writer); err != nil {
		return errors.Wrapf(err, "failed to store %s records", name)
	}
	log.Info().Msgf("stored %s records in %s", name, writer.Dir())
	return nil
}
