package training

import (
	"context"

	"kamisado/game"
	"kamisado/qlearning"
)

// Self-play rewards are from the second side's point of view.
const (
	selfPlayWin      = 1.0
	selfPlayLoss     = -1.0
	selfPlayDraw     = 0.0
	selfPlayShaping  = 0.01
	selfPlayStepCost = 0.01
)

// SelfPlay trains the agent against itself for the given number of episodes.
// Exploration decays once per episode.
func (t *Trainer) SelfPlay(ctx context.Context, episodes int) (qlearning.Stats, error) {
	return t.train(ctx, ModeSelfPlay, episodes, t.selfPlayEpisode)
}

func (t *Trainer) selfPlayEpisode(index int) episode {
	t.agent.SetTraining(true)
	t.collector.Start(ModeSelfPlay, t.agent.Exploration(), 0)

	var (
		state  = game.NewGame(t.board, t.rules)
		prev   *game.GameState // State the last move was chosen in
		total  float64
		result qlearning.Result
	)
	for {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			// The blocked mover loses, so the previous move won.
			reward := selfPlayLoss
			result = qlearning.Loss
			if state.Turn() == game.First {
				reward, result = selfPlayWin, qlearning.Win
			}
			if prev != nil {
				t.agent.Update(prev, state, reward, state, nil)
			}
			total += reward
			t.collector.AddReward(reward)
			break
		}

		action := t.agent.SelectAction(state, moves)
		t.collector.AddPly()
		nextMoves := action.LegalMoves()
		outcome := action.Decided()

		var reward float64
		switch outcome {
		case game.SecondWins:
			reward, result = selfPlayWin, qlearning.Win
		case game.FirstWins:
			reward, result = selfPlayLoss, qlearning.Loss
		case game.Draw:
			reward, result = selfPlayDraw, qlearning.Draw
		default:
			reward = heuristicDelta(state, action)*selfPlayShaping - selfPlayStepCost
		}
		t.agent.Update(state, action, reward, action, nextMoves)
		total += reward
		t.collector.AddReward(reward)

		if outcome != game.Ongoing {
			break
		}
		prev, state = state, action
	}

	t.agent.DecayExploration()
	return episode{result: result, reward: total}
}
