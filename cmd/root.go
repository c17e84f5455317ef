package cmd

import (
	"os"
	"time"

	"pacai/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg        *config.Config
	configPath string
	v          = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "pacai",
	Short: "Search, planning and learning agents for grid worlds",
	Long: `pacai runs graph search on maze layouts, adversarial search in Pacman
games, value iteration on explicit MDPs and Q-learning against them.

Every parameter can be set by flag, by a PACAI_ environment variable or in
the YAML file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg.LogLevel)
		return nil
	},
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"algorithm":    "algorithm",
	"heuristic":    "heuristic",
	"depth":        "depth",
	"discount":     "discount",
	"iterations":   "iterations",
	"estimator":    "estimator",
	"alpha":        "alpha",
	"epsilon":      "epsilon",
	"gamma":        "gamma",
	"episodes":     "episodes",
	"num-training": "num_training",
	"max-steps":    "max_steps",
	"seed":         "seed",
	"log-level":    "log_level",
	"output-dir":   "output_dir",
}

func init() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&configPath, "config", "", "YAML config file")

	// Graph search
	flags.String("algorithm", defaults.Algorithm, "Graph search algorithm (dfs, bfs, ucs, astar, all)")
	flags.String("heuristic", defaults.Heuristic, "A* heuristic (null, manhattan, euclidean)")

	// Adversarial search
	flags.Int("depth", defaults.Depth, "Adversarial search depth in full agent cycles")

	// Value iteration
	flags.Float64("discount", defaults.Discount, "Value iteration discount factor")
	flags.Int("iterations", defaults.Iterations, "Value iteration sweeps")

	// Q-learning
	flags.String("estimator", defaults.Estimator, "Q-value estimator (table, linear)")
	flags.Float64("alpha", defaults.Alpha, "Learning rate")
	flags.Float64("epsilon", defaults.Epsilon, "Exploration rate")
	flags.Float64("gamma", defaults.Gamma, "Q-learning discount factor")
	flags.Int("episodes", defaults.Episodes, "Episodes to run")
	flags.Int("num-training", defaults.NumTraining, "Episodes that learn before the policy is frozen")
	flags.Int("max-steps", defaults.MaxSteps, "Step limit per episode or game")
	flags.Uint64("seed", defaults.Seed, "Random seed")

	// Output
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("output-dir", defaults.OutputDir, "Directory for CSV records")

	// Bind flags to viper for environment variable support
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	v.SetEnvPrefix("PACAI")
	v.AutomaticEnv()

	rootCmd.AddCommand(searchCmd, playCmd, valueIterationCmd, qlearnCmd)
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func Execute() error {
	return rootCmd.Execute()
}
