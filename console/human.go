package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kamisado/config"
	"kamisado/engine"
	"kamisado/game"
)

var withdrawWords = []string{"quit", "resign", "desistir"}

// ParseChoice parses a zero-based move index below n. Withdrawal words
// return engine.ErrResigned and anything else unusable wraps
// config.ErrInvalid.
func ParseChoice(input string, n int) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, word := range withdrawWords {
		if input == word {
			return 0, engine.ErrResigned
		}
	}
	i, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a move number", config.ErrInvalid, input)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: choose a move between 0 and %d", config.ErrInvalid, n-1)
	}
	return i, nil
}

// Human is an agent that asks a person for every move.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in *bufio.Scanner, out io.Writer) *Human {
	return &Human{in: in, out: out}
}

// FindMove shows the board and the numbered moves and reads a choice until
// it is valid. End of input counts as resigning.
func (h *Human) FindMove(state *game.GameState, moves []*game.GameState) (*game.GameState, error) {
	if len(moves) == 0 {
		return nil, nil
	}
	Render(h.out, state)
	fmt.Fprintln(h.out, "\nAvailable moves:")
	ListMoves(h.out, moves)
	fmt.Fprintf(h.out, "\nType %s to resign\n", strings.Join(withdrawWords, ", "))

	for {
		fmt.Fprint(h.out, "Your move: ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return nil, fmt.Errorf("failed to read move: %w", err)
			}
			return nil, engine.ErrResigned
		}
		i, err := ParseChoice(h.in.Text(), len(moves))
		if errors.Is(err, config.ErrInvalid) {
			fmt.Fprintln(h.out, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		return moves[i], nil
	}
}
