package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse builds a board from a 9-char string: 'X', 'O', or anything else for
// an empty cell.
func parse(t *testing.T, s string) Board {
	t.Helper()
	require.Len(t, s, 9)

	var b Board
	for i, ch := range s {
		switch ch {
		case 'X':
			b[i] = MarkX
		case 'O':
			b[i] = MarkO
		}
	}
	return b
}

func TestWinner_AllLines(t *testing.T) {
	cases := []struct {
		name  string
		board string
		want  Symbol
	}{
		{"top row", "XXX......", SymbolX},
		{"middle row", "...XXX...", SymbolX},
		{"bottom row", "......XXX", SymbolX},
		{"left column", "X..X..X..", SymbolX},
		{"middle column", ".X..X..X.", SymbolX},
		{"right column", "..X..X..X", SymbolX},
		{"main diagonal", "X...X...X", SymbolX},
		{"anti diagonal", "..X.X.X..", SymbolX},
		{"O wins a row", "OOO..X.XX", SymbolO},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			winner, ok := Winner(parse(t, tc.board))
			require.True(t, ok)
			assert.Equal(t, tc.want, winner)
		})
	}
}

func TestWinner_NoLine(t *testing.T) {
	cases := []struct {
		name  string
		board string
	}{
		{"empty board", "........."},
		{"mixed, not monochromatic", "XOX......"},
		{"full draw", "XOXXOOOXX"},
		{"two in a row only", "XX.O.O..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Winner(parse(t, tc.board))
			assert.False(t, ok)
		})
	}
}

func TestApply_Validation(t *testing.T) {
	cases := []struct {
		name    string
		board   string
		cell    int
		symbol  Symbol
		turn    Symbol
		wantErr error
	}{
		{"cell below range", ".........", -1, SymbolX, SymbolX, ErrInvalidCell},
		{"cell above range", ".........", 9, SymbolX, SymbolX, ErrInvalidCell},
		{"occupied cell", "X........", 0, SymbolO, SymbolO, ErrCellOccupied},
		{"out of turn", ".........", 4, SymbolO, SymbolX, ErrWrongTurn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Apply(parse(t, tc.board), tc.cell, tc.symbol, tc.turn)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestApply_Outcomes(t *testing.T) {
	cases := []struct {
		name   string
		board  string
		cell   int
		symbol Symbol
		want   Outcome
	}{
		{"ongoing", ".........", 4, SymbolX, OutcomeNone},
		{"completes a row", "XX.OO....", 2, SymbolX, OutcomeWin},
		{"fills the board without a line", "XOXXOOOX.", 8, SymbolX, OutcomeDraw},
		{"last cell completes a line", "XOXOOXXX.", 8, SymbolX, OutcomeWin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, outcome, err := Apply(parse(t, tc.board), tc.cell, tc.symbol, tc.symbol)
			require.NoError(t, err)
			assert.Equal(t, tc.want, outcome)
			assert.Equal(t, MarkX, next[tc.cell])
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := parse(t, "X...O....")
	snapshot := before

	next, _, err := Apply(before, 1, SymbolX, SymbolX)
	require.NoError(t, err)

	assert.Equal(t, snapshot, before, "input board must be untouched")
	assert.Equal(t, MarkX, next[1])
	assert.Equal(t, Empty, before[1])
}

func TestSymbolOther(t *testing.T) {
	assert.Equal(t, SymbolO, SymbolX.Other())
	assert.Equal(t, SymbolX, SymbolO.Other())
}

func TestBoardFull(t *testing.T) {
	assert.False(t, Board{}.Full())
	assert.False(t, parse(t, "XOXXOXXO.").Full())
	assert.True(t, parse(t, "XOXXOXXOX").Full())
}
