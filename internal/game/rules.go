package game

import "errors"

var ErrInvalidCell = errors.New("invalid cell")
var ErrCellOccupied = errors.New("cell already occupied")
var ErrWrongTurn = errors.New("not your turn")

// Outcome classifies a board after a move was applied.
type Outcome uint8

const (
	OutcomeNone Outcome = iota // game continues
	OutcomeWin
	OutcomeDraw
)

// 3 rows, 3 columns, 2 diagonals.
var winningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner returns the symbol occupying all three cells of some winning line,
// if one exists.
func Winner(b Board) (Symbol, bool) {
	for _, line := range winningLines {
		c := b[line[0]]
		if c == Empty {
			continue
		}
		if b[line[1]] == c && b[line[2]] == c {
			return c.Symbol()
		}
	}
	return "", false
}

// Apply validates one move against cell range, occupancy, and turn order, and
// returns the resulting board plus its terminal classification. The input
// board is left untouched.
func Apply(b Board, cell int, symbol, turn Symbol) (Board, Outcome, error) {
	if cell < 0 || cell > 8 {
		return b, OutcomeNone, ErrInvalidCell
	}
	if b[cell] != Empty {
		return b, OutcomeNone, ErrCellOccupied
	}
	if symbol != turn {
		return b, OutcomeNone, ErrWrongTurn
	}

	next := b
	next[cell] = markFor(symbol)

	if winner, ok := Winner(next); ok && winner == symbol {
		return next, OutcomeWin, nil
	}
	if next.Full() {
		return next, OutcomeDraw, nil
	}
	return next, OutcomeNone, nil
}
