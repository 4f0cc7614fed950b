package game

// Symbol is one of the two player marks.
type Symbol string

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"
)

// Other returns the opposing symbol.
func (s Symbol) Other() Symbol {
	if s == SymbolX {
		return SymbolO
	}
	return SymbolX
}

// Cell is the state of one board cell.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

// Symbol reports which symbol occupies the cell, if any.
func (c Cell) Symbol() (Symbol, bool) {
	switch c {
	case MarkX:
		return SymbolX, true
	case MarkO:
		return SymbolO, true
	default:
		return "", false
	}
}

func markFor(s Symbol) Cell {
	if s == SymbolX {
		return MarkX
	}
	return MarkO
}

// Board holds 9 cells in row-major order (index 0 is top-left, 8 is
// bottom-right). Board is a value type: Apply returns a new board and never
// mutates its input, so callers can keep reading the pre-move board safely.
type Board [9]Cell

// Full reports whether every cell is occupied.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}
