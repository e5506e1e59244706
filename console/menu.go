package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"kamisado/config"
	"kamisado/engine"
	"kamisado/experiments/metrics"
	"kamisado/game"
	"kamisado/qlearning"
	"kamisado/storage"
	"kamisado/training"
)

const menuText = `
========================================
  KAMISADO - REINFORCEMENT LEARNING
========================================
1. Train a NEW agent from scratch
2. CONTINUE training the saved agent
3. PLAY against the trained agent
4. Evaluate the agent against minimax
5. Training statistics
6. Exit
========================================`

type Option func(m *Menu)

func WithStore(store storage.Store) Option {
	return func(m *Menu) {
		m.store = store
	}
}

func WithWriter(writer *metrics.Writer) Option {
	return func(m *Menu) {
		m.writer = writer
	}
}

// Menu is the interactive loop over training, play and evaluation.
type Menu struct {
	in     *bufio.Scanner
	out    io.Writer
	cfg    *config.Config
	board  *game.Board
	rules  *game.Rules
	store  storage.Store
	writer *metrics.Writer
	agent  *qlearning.Agent
	loaded bool
	games  int
}

func NewMenu(in io.Reader, out io.Writer, cfg *config.Config, options ...Option) (*Menu, error) {
	agent, err := training.NewAgent(cfg)
	if err != nil {
		return nil, err
	}
	m := &Menu{
		in:    bufio.NewScanner(in),
		out:   out,
		cfg:   cfg,
		board: game.NewBoard(),
		rules: training.NewRules(cfg),
		agent: agent,
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// Run shows the menu until the user exits or input ends. Invalid input is
// reported and asked again. Other errors end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Your choice: ")
		if !ok {
			return m.in.Err()
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = m.trainNew(ctx)
		case "2":
			err = m.continueTraining(ctx)
		case "3":
			err = m.play(ctx)
		case "4":
			err = m.evaluate(ctx)
		case "5":
			err = m.statistics(ctx)
		case "6":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option, try again.")
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, config.ErrInvalid):
			fmt.Fprintln(m.out, err)
		default:
			return err
		}
	}
}

func (m *Menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// readCount asks until the answer is a valid count. End of input returns
// io.EOF.
func (m *Menu) readCount(text string) (int, error) {
	for {
		answer, ok := m.prompt(text)
		if !ok {
			if err := m.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		n, err := config.ParseCount(answer)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(m.out, err)
	}
}

func (m *Menu) trainer() *training.Trainer {
	return training.NewTrainer(m.agent, m.board, m.rules,
		training.WithConfig(m.cfg),
		training.WithStore(m.store),
		training.WithWriter(m.writer),
	)
}

// ensureLoaded resumes the saved agent unless one is already in memory.
func (m *Menu) ensureLoaded(ctx context.Context) (bool, error) {
	if m.loaded {
		return true, nil
	}
	found, err := m.trainer().Resume(ctx)
	if err != nil {
		return false, err
	}
	if !found {
		fmt.Fprintln(m.out, "No saved agent found. Train one first (option 1).")
		return false, nil
	}
	m.loaded = true
	return true, nil
}

func (m *Menu) trainNew(ctx context.Context) error {
	n, err := m.readCount("Training episodes: ")
	if err != nil {
		return err
	}
	agent, err := training.NewAgent(m.cfg)
	if err != nil {
		return err
	}
	m.agent = agent
	m.loaded = true
	stats, err := m.trainer().Curriculum(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Training finished: %s\n", stats)
	return nil
}

func (m *Menu) continueTraining(ctx context.Context) error {
	found, err := m.trainer().Resume(ctx)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(m.out, "No saved agent found. Train one first (option 1).")
		return nil
	}
	m.loaded = true

	n, err := m.readCount("Additional training episodes: ")
	if err != nil {
		return err
	}
	stats, err := m.trainer().Curriculum(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Training finished: %s\n", stats)
	return nil
}

// play runs a game with the human on the first side. The agent plays
// without exploration and its settings are restored afterwards.
func (m *Menu) play(ctx context.Context) error {
	if ok, err := m.ensureLoaded(ctx); !ok || err != nil {
		return err
	}
	wasTraining, exploration := m.agent.Training(), m.agent.Exploration()
	m.agent.SetTraining(false)
	m.agent.SetExploration(0)
	defer func() {
		m.agent.SetTraining(wasTraining)
		m.agent.SetExploration(exploration)
	}()

	fmt.Fprintln(m.out, "\nYou play the white pieces (W1-W8) and move first.")
	fmt.Fprintln(m.out, "The agent plays the black pieces (B1-B8).")
	announce := func(state *game.GameState) {
		if move, ok := state.LastMove(); ok && move.Side == game.Second {
			fmt.Fprintf(m.out, "\nAgent moved %s\n", DescribeMove(move))
		}
	}
	human := NewHuman(m.in, m.out)
	e := engine.LocalEngine(game.NewGame(m.board, m.rules), human, m.agent, engine.WithObserver(announce))
	result, err := e.Run()
	if err != nil {
		return err
	}

	Render(m.out, result.Final)
	fmt.Fprintln(m.out, describeResult(result))

	m.games++
	if m.writer != nil {
		record := metrics.GameRecord{Game: m.games, Opponent: "human", GameMetric: result.Metric}
		if err := m.writer.WriteGameRecords([]metrics.GameRecord{record}); err != nil {
			return err
		}
	}
	return nil
}

func describeResult(result engine.Result) string {
	switch {
	case result.Resigned:
		return "You resigned. The agent wins."
	case !result.Decisive:
		return "Draw: too many moves without changing color."
	case result.Outcome == game.Blocked && result.Winner == game.First:
		return "The agent has no legal move. You win!"
	case result.Outcome == game.Blocked:
		return "You have no legal move. The agent wins."
	case result.Winner == game.First:
		return "You win!"
	default:
		return "The agent wins."
	}
}

func (m *Menu) evaluate(ctx context.Context) error {
	if ok, err := m.ensureLoaded(ctx); !ok || err != nil {
		return err
	}
	n, err := m.readCount("Evaluation games: ")
	if err != nil {
		return err
	}
	res, err := m.trainer().Evaluate(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Results: %s\n", res)
	return nil
}

func (m *Menu) statistics(ctx context.Context) error {
	if ok, err := m.ensureLoaded(ctx); !ok || err != nil {
		return err
	}
	stats := m.agent.Stats()
	if stats.Episodes() == 0 {
		fmt.Fprintln(m.out, "No training data yet.")
		return nil
	}
	fmt.Fprintln(m.out, "\nTRAINING STATISTICS (agent plays black)")
	fmt.Fprintf(m.out, "Wins:    %d\n", stats.Wins)
	fmt.Fprintf(m.out, "Losses:  %d\n", stats.Losses)
	fmt.Fprintf(m.out, "Draws:   %d\n", stats.Draws)
	fmt.Fprintf(m.out, "Win rate: %.1f%%\n", 100*stats.WinRate())
	fmt.Fprintf(m.out, "Learned transitions: %d\n", m.agent.Len())
	fmt.Fprintf(m.out, "Exploration: %.3f\n", m.agent.Exploration())
	return nil
}
