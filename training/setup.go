package training

import (
	"fmt"

	"kamisado/config"
	"kamisado/game"
	"kamisado/qlearning"
)

// NewAgent builds a learning agent from the configured tunables.
func NewAgent(cfg *config.Config) (*qlearning.Agent, error) {
	policy, err := qlearning.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	options := []qlearning.Option{
		qlearning.WithLearningRate(cfg.LearningRate),
		qlearning.WithDiscount(cfg.Discount),
		qlearning.WithExploration(cfg.ExplorationStart),
		qlearning.WithExplorationDecay(cfg.ExplorationDecay, cfg.ExplorationFloor),
		qlearning.WithPolicy(policy),
		qlearning.WithTemperature(cfg.Temperature),
	}
	if cfg.Seed != 0 {
		options = append(options, qlearning.WithSeed(cfg.Seed))
	}
	return qlearning.NewAgent(options...), nil
}

// NewRules applies the configured draw threshold to the standard rules.
func NewRules(cfg *config.Config) *game.Rules {
	rules := game.NewStandardRules()
	if cfg.DrawThreshold > 0 {
		rules.DrawThreshold = cfg.DrawThreshold
	}
	return rules
}
