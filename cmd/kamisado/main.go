package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"kamisado/config"
	"kamisado/console"
	"kamisado/experiments"
	"kamisado/experiments/metrics"
	"kamisado/game"
	"kamisado/logger"
	"kamisado/qlearning"
	"kamisado/storage"
	"kamisado/training"
)

func main() {
	var (
		configPath string
		store      string
		mode       string
		episodes   int
		games      int
		runID      string
		logLevel   string
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&store, "store", "", "Record store: path, badger://, memory://, redis:// or postgres:// (overrides config)")
	flag.StringVar(&mode, "mode", "menu", "menu, selfplay, curriculum, evaluate or ladder")
	flag.IntVar(&episodes, "episodes", 1000, "Training episodes for selfplay and curriculum")
	flag.IntVar(&games, "games", 0, "Games for evaluate and ladder (0 = config value)")
	flag.StringVar(&runID, "run-id", "", "Run ID for records and metrics (random when empty)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if store != "" {
		cfg.Store = store
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if games <= 0 {
		games = cfg.EvaluationGames
	}
	closeLog := logger.Init(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, mode, episodes, games, runID)
	stop()
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", mode)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, mode string, episodes, games int, runID string) error {
	var writer *metrics.Writer
	if cfg.MetricsDir != "" {
		w, err := metrics.NewWriter(cfg.MetricsDir, runID)
		if err != nil {
			return err
		}
		writer = w
		runID = w.RunID()
		log.Info().Msgf("writing metrics to %s", w.Dir())
	}

	store, err := storage.Open(ctx, cfg.Store,
		storage.WithRunID(runID),
		storage.WithPruneThreshold(cfg.PruneThreshold),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	if mode == "menu" {
		menu, err := console.NewMenu(os.Stdin, os.Stdout, cfg, console.WithStore(store), console.WithWriter(writer))
		if err != nil {
			return err
		}
		return menu.Run(ctx)
	}

	agent, err := training.NewAgent(cfg)
	if err != nil {
		return err
	}
	board, rules := game.NewBoard(), training.NewRules(cfg)
	trainer := training.NewTrainer(agent, board, rules,
		training.WithConfig(cfg),
		training.WithStore(store),
		training.WithWriter(writer),
	)
	if _, err := trainer.Resume(ctx); err != nil {
		return err
	}

	switch mode {
	case "selfplay":
		stats, err := trainer.SelfPlay(ctx, episodes)
		if err != nil {
			return err
		}
		fmt.Printf("Self-play finished: %s\n", stats)
	case "curriculum":
		stats, err := trainer.Curriculum(ctx, episodes)
		if err != nil {
			return err
		}
		fmt.Printf("Curriculum finished: %s\n", stats)
	case "evaluate":
		res, err := trainer.Evaluate(ctx, games)
		if err != nil {
			return err
		}
		fmt.Printf("Evaluation: %s\n", res)
	case "ladder":
		return ladder(ctx, cfg, agent, board, rules, games, writer)
	default:
		return fmt.Errorf("%w: unknown mode %q", config.ErrInvalid, mode)
	}
	return nil
}

// ladder plays the learned agent, without exploration, against every search
// depth up to the evaluation depth.
func ladder(ctx context.Context, cfg *config.Config, agent *qlearning.Agent, board *game.Board, rules *game.Rules, games int, writer *metrics.Writer) error {
	agent.SetTraining(false)
	agent.SetExploration(0)

	runner := experiments.NewRunner(board, rules,
		experiments.WithGames(games),
		experiments.WithWriter(writer),
	)
	challenger := experiments.Player{Name: "q-learning", Agent: agent}
	standings, err := runner.Run(ctx, "ladder", experiments.SearchLadder(challenger, cfg.EvaluationDepth))
	if err != nil {
		return err
	}
	for _, s := range standings {
		fmt.Println(s)
	}
	return nil
}
