// Package experiments runs match-ups between agents and stores the game
// records.
package experiments

import (
	"context"
	"fmt"
	"strconv"

	"kamisado/engine"
	"kamisado/experiments/metrics"
	"kamisado/game"
	"kamisado/searcher"

	"github.com/rs/zerolog/log"
)

const DefaultGames = 30 // Per match up

type Player struct {
	Name  string
	Agent engine.Agent
}

// MatchUp seats the baseline on the first side and the challenger on the
// second. The starting side alternates between games.
type MatchUp struct {
	Baseline   Player
	Challenger Player
}

type Standing struct {
	Baseline       string
	Challenger     string
	Games          int
	BaselineWins   int
	ChallengerWins int
	Draws          int
}

func (s Standing) String() string {
	return fmt.Sprintf("%s vs %s: %d-%d with %d draws in %d games",
		s.Challenger, s.Baseline, s.ChallengerWins, s.BaselineWins, s.Draws, s.Games)
}

// SearchPlayer returns a minimax player named after its depth.
func SearchPlayer(depth int) Player {
	return Player{
		Name:  "depth " + strconv.Itoa(depth),
		Agent: searcher.NewMinimax(searcher.WithDepth(depth), searcher.WithMetrics()),
	}
}

// SearchLadder pairs the challenger with search players of every depth from
// 1 to maxDepth.
func SearchLadder(challenger Player, maxDepth int) []MatchUp {
	matchUps := []MatchUp{}
	for depth := 1; depth <= maxDepth; depth++ {
		matchUps = append(matchUps, MatchUp{Baseline: SearchPlayer(depth), Challenger: challenger})
	}
	return matchUps
}

type Option func(r *Runner)

func WithGames(games int) Option {
	return func(r *Runner) {
		if games > 0 {
			r.games = games
		}
	}
}

func WithWriter(writer *metrics.Writer) Option {
	return func(r *Runner) {
		r.writer = writer
	}
}

type Runner struct {
	board  *game.Board
	rules  *game.Rules
	games  int
	writer *metrics.Writer
}

func NewRunner(board *game.Board, rules *game.Rules, options ...Option) *Runner {
	r := &Runner{ // Default values
		board: board,
		rules: rules,
		games: DefaultGames,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays every match-up and writes the game records once all games are
// done. Cancelling ctx stops between games.
func (r *Runner) Run(ctx context.Context, name string, matchUps []MatchUp) ([]Standing, error) {
	count := 0
	standings := []Standing{}
	gameRecords := []metrics.GameRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %s and %s...",
			mi+1, len(matchUps), matchUp.Baseline.Name, matchUp.Challenger.Name)

		standing := Standing{Baseline: matchUp.Baseline.Name, Challenger: matchUp.Challenger.Name}
		for i := 0; i < r.games; i++ {
			if err := ctx.Err(); err != nil {
				return standings, err
			}

			starter := game.First
			if i%2 == 1 {
				starter = game.Second
			}
			state := game.NewGame(r.board, r.rules, game.WithStarter(starter))
			result, err := engine.LocalEngine(state, matchUp.Baseline.Agent, matchUp.Challenger.Agent).Run()
			if err != nil {
				return standings, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			count++
			standing.Games++
			switch {
			case !result.Decisive:
				standing.Draws++
			case result.Winner == game.First:
				standing.BaselineWins++
			default:
				standing.ChallengerWins++
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				Game:       count,
				Opponent:   matchUp.Baseline.Name,
				GameMetric: result.Metric,
			})

			log.Debug().Msgf("completed matchup %d of %d game %d with outcome: %s",
				mi+1, len(matchUps), i+1, result.Outcome)
		}
		standings = append(standings, standing)
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(matchUps), standing)
	}

	log.Info().Msgf("completed %s experiment", name)

	if r.writer != nil {
		if err := r.writer.WriteGameRecords(gameRecords); err != nil {
			return standings, err
		}
		log.Info().Msgf("stored %d game records in %s", len(gameRecords), r.writer.Dir())
	}
	return standings, nil
}
