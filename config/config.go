// Package config holds the tunables of training, evaluation and play.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration or user input error. The interactive
// menu reports it and asks again.
var ErrInvalid = errors.New("invalid configuration")

// MaxCount bounds episode and game counts typed by a user.
const MaxCount = 10_000_000

// Stage sets the search depth of the opponent for every global episode
// index below Until. The last stage has Until zero and covers the rest.
type Stage struct {
	Until int `yaml:"until"`
	Depth int `yaml:"depth"`
}

type Config struct {
	LearningRate     float64 `yaml:"learning_rate"`
	Discount         float64 `yaml:"discount"`
	ExplorationStart float64 `yaml:"exploration_start"`
	ExplorationFloor float64 `yaml:"exploration_floor"`
	ExplorationDecay float64 `yaml:"exploration_decay"`
	Policy           string  `yaml:"policy"`
	Temperature      float64 `yaml:"temperature"`
	Seed             uint64  `yaml:"seed"` // Zero seeds from the clock

	DrawThreshold   int     `yaml:"draw_threshold"`
	Curriculum      []Stage `yaml:"curriculum"`
	EvaluationDepth int     `yaml:"evaluation_depth"`
	EvaluationGames int     `yaml:"evaluation_games"`

	ReportInterval     int           `yaml:"report_interval"`
	CheckpointInterval int           `yaml:"checkpoint_interval"`
	AutosaveInterval   time.Duration `yaml:"autosave_interval"` // Zero disables autosave
	PruneThreshold     float64       `yaml:"prune_threshold"`
	Store              string        `yaml:"store"`
	RecordName         string        `yaml:"record_name"`
	MetricsDir         string        `yaml:"metrics_dir"` // Empty disables CSV records

	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		LearningRate:     0.1,
		Discount:         0.9,
		ExplorationStart: 1.0,
		ExplorationFloor: 0.15,
		ExplorationDecay: 0.999,
		Policy:           "greedy",
		Temperature:      1.0,

		DrawThreshold: 200,
		Curriculum: []Stage{
			{Until: 3000, Depth: 1},
			{Until: 8000, Depth: 2},
			{Depth: 3},
		},
		EvaluationDepth: 3,
		EvaluationGames: 50,

		ReportInterval:     100,
		CheckpointInterval: 1000,
		AutosaveInterval:   0,
		PruneThreshold:     1e-6,
		Store:              "kamisado.db",
		RecordName:         "kamisado-qtable",
		MetricsDir:         "",

		LogLevel: "info",
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Store = envOrDefault("KAMISADO_STORE", c.Store)
	c.Policy = envOrDefault("KAMISADO_POLICY", c.Policy)
	c.MetricsDir = envOrDefault("KAMISADO_METRICS_DIR", c.MetricsDir)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate reports the first out-of-range value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.LearningRate <= 0 || c.LearningRate > 1:
		return invalid("learning_rate must be in (0, 1], got %v", c.LearningRate)
	case c.Discount < 0 || c.Discount > 1:
		return invalid("discount must be in [0, 1], got %v", c.Discount)
	case c.ExplorationStart < 0 || c.ExplorationStart > 1:
		return invalid("exploration_start must be in [0, 1], got %v", c.ExplorationStart)
	case c.ExplorationFloor < 0 || c.ExplorationFloor > c.ExplorationStart:
		return invalid("exploration_floor must be in [0, exploration_start], got %v", c.ExplorationFloor)
	case c.ExplorationDecay <= 0 || c.ExplorationDecay > 1:
		return invalid("exploration_decay must be in (0, 1], got %v", c.ExplorationDecay)
	case c.Temperature <= 0:
		return invalid("temperature must be positive, got %v", c.Temperature)
	case c.DrawThreshold <= 0:
		return invalid("draw_threshold must be positive, got %d", c.DrawThreshold)
	case c.EvaluationDepth <= 0:
		return invalid("evaluation_depth must be positive, got %d", c.EvaluationDepth)
	case c.EvaluationGames <= 0:
		return invalid("evaluation_games must be positive, got %d", c.EvaluationGames)
	case c.ReportInterval <= 0 || c.CheckpointInterval <= 0:
		return invalid("report and checkpoint intervals must be positive")
	case c.AutosaveInterval < 0:
		return invalid("autosave_interval must not be negative")
	case c.PruneThreshold < 0:
		return invalid("prune_threshold must not be negative")
	case c.Store == "":
		return invalid("store must be set")
	case c.RecordName == "":
		return invalid("record_name must be set")
	}
	switch strings.ToLower(c.Policy) {
	case "greedy", "softmax":
	default:
		return invalid("policy must be greedy or softmax, got %q", c.Policy)
	}
	return c.validateCurriculum()
}

func (c *Config) validateCurriculum() error {
	if len(c.Curriculum) == 0 {
		return invalid("curriculum needs at least one stage")
	}
	previous := 0
	for i, stage := range c.Curriculum {
		if stage.Depth <= 0 {
			return invalid("curriculum stage %d: depth must be positive", i)
		}
		last := i == len(c.Curriculum)-1
		if last && stage.Until != 0 {
			return invalid("curriculum stage %d: last stage must not set until", i)
		}
		if !last && stage.Until <= previous {
			return invalid("curriculum stage %d: until must increase", i)
		}
		previous = stage.Until
	}
	return nil
}

// DepthAt returns the opponent search depth for a global episode index.
func (c *Config) DepthAt(episode int) int {
	for _, stage := range c.Curriculum[:len(c.Curriculum)-1] {
		if episode < stage.Until {
			return stage.Depth
		}
	}
	return c.Curriculum[len(c.Curriculum)-1].Depth
}

// ParseCount parses a positive episode or game count typed by a user.
func ParseCount(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, invalid("%q is not a number", strings.TrimSpace(input))
	}
	if n <= 0 || n > MaxCount {
		return 0, invalid("count must be between 1 and %d, got %d", MaxCount, n)
	}
	return n, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
