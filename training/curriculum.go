package training

import (
	"context"

	"kamisado/game"
	"kamisado/qlearning"
	"kamisado/searcher"
)

// Curriculum rewards for the learning agent on the second side. Draws cost
// more than losses.
const (
	curriculumWin      = 1000.0
	curriculumLoss     = -1000.0
	curriculumDraw     = -1200.0
	curriculumShaping  = 0.5
	curriculumStepCost = 0.2
)

// Curriculum trains the agent on the second side against the search agent
// on the first side. The search depth follows the configured stages and
// exploration is derived from the global episode index.
func (t *Trainer) Curriculum(ctx context.Context, episodes int) (qlearning.Stats, error) {
	schedule := qlearning.IndexDecay{
		Start: t.cfg.ExplorationStart,
		Decay: t.cfg.ExplorationDecay,
		Floor: t.cfg.ExplorationFloor,
	}
	return t.train(ctx, ModeCurriculum, episodes, func(index int) episode {
		return t.curriculumEpisode(index, schedule)
	})
}

func (t *Trainer) curriculumEpisode(index int, schedule qlearning.IndexDecay) episode {
	depth := t.cfg.DepthAt(index)
	opponent := searcher.NewMinimax(searcher.WithDepth(depth))
	t.agent.SetTraining(true)
	t.agent.SetExploration(schedule.At(index))
	t.collector.Start(ModeCurriculum, t.agent.Exploration(), depth)

	var (
		state  = game.NewGame(t.board, t.rules)
		from   *game.GameState // Last transition chosen by the agent
		to     *game.GameState
		total  float64
		result qlearning.Result
	)
	// settle gives the agent's last transition the terminal reward when the
	// game ends on the opponent's turn.
	settle := func(r float64, res qlearning.Result) {
		if from != nil {
			t.agent.Update(from, to, r, to, nil)
		}
		result = res
		total += r
		t.collector.AddReward(r)
	}

	for {
		moves := state.LegalMoves()
		if state.Turn() == game.First {
			if len(moves) == 0 {
				settle(curriculumWin, qlearning.Win)
				break
			}
			next, _ := opponent.FindMove(state, moves) // Minimax.FindMove never fails
			t.collector.AddPly()
			state = next
			switch state.Decided() {
			case game.FirstWins:
				settle(curriculumLoss, qlearning.Loss)
			case game.Draw:
				settle(curriculumDraw, qlearning.Draw)
			case game.Ongoing:
				continue
			}
			break
		}

		if len(moves) == 0 {
			settle(curriculumLoss, qlearning.Loss)
			break
		}
		action := t.agent.SelectAction(state, moves)
		t.collector.AddPly()
		nextMoves := action.LegalMoves()
		outcome := action.Decided()

		var reward float64
		switch outcome {
		case game.SecondWins:
			reward, result = curriculumWin, qlearning.Win
		case game.FirstWins:
			reward, result = curriculumLoss, qlearning.Loss
		case game.Draw:
			reward, result = curriculumDraw, qlearning.Draw
		default:
			reward = heuristicDelta(state, action)*curriculumShaping - curriculumStepCost
		}
		t.agent.Update(state, action, reward, action, nextMoves)
		total += reward
		t.collector.AddReward(reward)

		if outcome != game.Ongoing {
			break
		}
		from, to = state, action
		state = action
	}

	return episode{result: result, reward: total}
}
