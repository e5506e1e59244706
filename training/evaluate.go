package training

import (
	"context"
	"fmt"
	"strconv"

	"kamisado/config"
	"kamisado/engine"
	"kamisado/experiments/metrics"
	"kamisado/game"
	"kamisado/searcher"

	"github.com/rs/zerolog/log"
)

// Evaluation tallies games between the learning agent, always on the second
// side, and the search agent on the first side.
type Evaluation struct {
	Games      int
	AgentWins  int
	SearchWins int
	Draws      int
}

func (e Evaluation) String() string {
	return fmt.Sprintf("agent %d/%d, search %d/%d, draws %d/%d",
		e.AgentWins, e.Games, e.SearchWins, e.Games, e.Draws, e.Games)
}

const evaluationLogInterval = 10

// Evaluate plays games without learning or exploration. Even-numbered games
// start with the learning agent to move. The agent's training mode and
// exploration rate are restored afterwards.
func (t *Trainer) Evaluate(ctx context.Context, games int) (Evaluation, error) {
	if games <= 0 {
		return Evaluation{}, fmt.Errorf("%w: games must be positive, got %d", config.ErrInvalid, games)
	}

	training, exploration := t.agent.Training(), t.agent.Exploration()
	t.agent.SetTraining(false)
	defer func() {
		t.agent.SetTraining(training)
		t.agent.SetExploration(exploration)
	}()

	opponent := searcher.NewMinimax(searcher.WithDepth(t.cfg.EvaluationDepth))
	res := Evaluation{}
	records := []metrics.GameRecord{}

	log.Info().Msgf("evaluating %d games against search depth %d...", games, t.cfg.EvaluationDepth)
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		starter := game.First
		if i%2 == 0 {
			starter = game.Second
		}
		state := game.NewGame(t.board, t.rules, game.WithStarter(starter))
		result, err := engine.LocalEngine(state, opponent, t.agent).Run()
		if err != nil {
			return res, fmt.Errorf("evaluation game %d: %w", i+1, err)
		}

		res.Games++
		switch {
		case !result.Decisive:
			res.Draws++
		case result.Winner == game.Second:
			res.AgentWins++
		default:
			res.SearchWins++
		}
		records = append(records, metrics.GameRecord{
			Game:       i + 1,
			Opponent:   "depth " + strconv.Itoa(t.cfg.EvaluationDepth),
			GameMetric: result.Metric,
		})

		if (i+1)%evaluationLogInterval == 0 {
			log.Info().Msgf("%d/%d | agent=%d search=%d draws=%d", i+1, games, res.AgentWins, res.SearchWins, res.Draws)
		}
	}

	log.Info().Msgf("evaluation results: %s", res)
	if t.writer != nil {
		if err := t.writer.WriteGameRecords(records); err != nil {
			return res, err
		}
	}
	return res, nil
}
