package board

import (
	"fmt"
	"strings"

	"chessrules/internal/core"
)

var backRank = [8]core.PieceKind{
	core.Rook, core.Knight, core.Bishop, core.Queen,
	core.King, core.Bishop, core.Knight, core.Rook,
}

// Board is the 8x8 grid plus the per-position state derived from play.
// It is a plain value; Clone gives an independent copy for hypothetical moves.
type Board struct {
	squares [8][8]core.Piece
	turn    core.Color

	check     bool
	checkmate bool
	stalemate bool

	enPassant    core.Square
	hasEnPassant bool

	lastFrom core.Square
	lastTo   core.Square
	hasLast  bool
}

// New returns a board in the standard initial arrangement with White to move
func New() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// NewEmpty returns a board with no pieces and the given side to move
func NewEmpty(turn core.Color) *Board {
	return &Board{turn: turn}
}

// Reset restores the initial arrangement and clears all state
func (b *Board) Reset() {
	*b = Board{turn: core.ColorWhite}
	for c := 0; c < 8; c++ {
		b.squares[0][c] = core.NewPiece(backRank[c], core.ColorBlack)
		b.squares[1][c] = core.NewPiece(core.Pawn, core.ColorBlack)
		b.squares[6][c] = core.NewPiece(core.Pawn, core.ColorWhite)
		b.squares[7][c] = core.NewPiece(backRank[c], core.ColorWhite)
	}
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// At returns the piece on sq, or the empty piece when sq is off-board
func (b *Board) At(sq core.Square) core.Piece {
	if !sq.Valid() {
		return core.Piece{}
	}
	return b.squares[sq.Row][sq.Col]
}

// Place puts p on sq, replacing any occupant
func (b *Board) Place(sq core.Square, p core.Piece) {
	if sq.Valid() {
		b.squares[sq.Row][sq.Col] = p
	}
}

func (b *Board) Remove(sq core.Square) {
	b.Place(sq, core.Piece{})
}

// Squares returns a copy of the grid
func (b *Board) Squares() [8][8]core.Piece {
	return b.squares
}

func (b *Board) Turn() core.Color {
	return b.turn
}

func (b *Board) SetTurn(c core.Color) {
	b.turn = c
}

func (b *Board) InCheck() bool     { return b.check }
func (b *Board) IsCheckmate() bool { return b.checkmate }
func (b *Board) IsStalemate() bool { return b.stalemate }

// SetStatus records the check flags of the side to move
func (b *Board) SetStatus(check, checkmate, stalemate bool) {
	b.check = check
	b.checkmate = checkmate
	b.stalemate = stalemate
}

// EnPassant returns the square a pawn skipped over on the previous ply
func (b *Board) EnPassant() (core.Square, bool) {
	return b.enPassant, b.hasEnPassant
}

func (b *Board) SetEnPassant(sq core.Square) {
	b.enPassant = sq
	b.hasEnPassant = true
}

func (b *Board) ClearEnPassant() {
	b.enPassant = core.Square{}
	b.hasEnPassant = false
}

func (b *Board) LastMove() (from, to core.Square, ok bool) {
	return b.lastFrom, b.lastTo, b.hasLast
}

func (b *Board) SetLastMove(from, to core.Square) {
	b.lastFrom = from
	b.lastTo = to
	b.hasLast = true
}

// King finds the king of the given color
func (b *Board) King(color core.Color) (core.Square, bool) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.squares[r][c]
			if p.Kind == core.King && p.Color == color {
				return core.Sq(r, c), true
			}
		}
	}
	return core.Square{}, false
}

// Count returns how many pieces of kind and color are on the board
func (b *Board) Count(kind core.PieceKind, color core.Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.squares[r][c]
			if p.Kind == kind && p.Color == color {
				n++
			}
		}
	}
	return n
}

// Occupied returns every non-empty square of a color in row-major order
func (b *Board) Occupied(color core.Color) []core.Square {
	var out []core.Square
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.squares[r][c]
			if !p.IsEmpty() && p.Color == color {
				out = append(out, core.Sq(r, c))
			}
		}
	}
	return out
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for c := 0; c < 8; c++ {
			sb.WriteString(fmt.Sprintf("%c ", b.squares[r][c].Letter()))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
