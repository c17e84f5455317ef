package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the parameters of every command
type Config struct {
	// Graph search
	Algorithm string `mapstructure:"algorithm"`
	Heuristic string `mapstructure:"heuristic"`

	// Adversarial search
	Depth int `mapstructure:"depth"`

	// Value iteration
	Discount   float64 `mapstructure:"discount"`
	Iterations int     `mapstructure:"iterations"`

	// Q-learning
	Estimator   string  `mapstructure:"estimator"`
	Alpha       float64 `mapstructure:"alpha"`
	Epsilon     float64 `mapstructure:"epsilon"`
	Gamma       float64 `mapstructure:"gamma"`
	Episodes    int     `mapstructure:"episodes"`
	NumTraining int     `mapstructure:"num_training"`
	MaxSteps    int     `mapstructure:"max_steps"`
	Seed        uint64  `mapstructure:"seed"`

	// Output
	LogLevel  string `mapstructure:"log_level"`
	OutputDir string `mapstructure:"output_dir"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Algorithm:   "astar",
		Heuristic:   "manhattan",
		Depth:       2,
		Discount:    0.9,
		Iterations:  100,
		Estimator:   "table",
		Alpha:       0.2,
		Epsilon:     0.05,
		Gamma:       0.8,
		Episodes:    100,
		NumTraining: 100,
		MaxSteps:    1000,
		Seed:        1,
		LogLevel:    "info",
		OutputDir:   "experiments",
	}
}

var (
	algorithms = []string{"dfs", "bfs", "ucs", "astar", "all"}
	heuristics = []string{"null", "manhattan", "euclidean"}
	estimators = []string{"table", "linear"}
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains(algorithms, c.Algorithm) {
		return fmt.Errorf("algorithm must be one of %s", strings.Join(algorithms, ", "))
	}
	if !slices.Contains(heuristics, c.Heuristic) {
		return fmt.Errorf("heuristic must be one of %s", strings.Join(heuristics, ", "))
	}
	if !slices.Contains(estimators, c.Estimator) {
		return fmt.Errorf("estimator must be one of %s", strings.Join(estimators, ", "))
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1]")
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative")
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1]")
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1]")
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in [0, 1]")
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive")
	}
	if c.NumTraining < 0 {
		return fmt.Errorf("num_training must not be negative")
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q is unknown", c.LogLevel)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}

// Load overlays the config file (if any), environment variables and bound
// flags held by v onto the defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
