package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Engine owns one live board. Queries never mutate it; only MakeMove and
// Reset do.
type Engine struct {
	b *board.Board
}

// New returns an engine on the standard initial position
func New() *Engine {
	return &Engine{b: board.New()}
}

// FromBoard starts an engine on a copy of b and recomputes the check,
// checkmate and stalemate flags for the side to move.
func FromBoard(b *board.Board) *Engine {
	e := &Engine{b: b.Clone()}
	e.updateGameState()
	return e
}

func (e *Engine) Reset() {
	e.b.Reset()
}

func (e *Engine) Clone() *Engine {
	return &Engine{b: e.b.Clone()}
}

// Board returns a copy of the live board
func (e *Engine) Board() *board.Board {
	return e.b.Clone()
}

func (e *Engine) PieceAt(sq core.Square) core.Piece {
	return e.b.At(sq)
}

func (e *Engine) Turn() core.Color {
	return e.b.Turn()
}

func (e *Engine) InCheck() bool {
	return e.b.InCheck()
}

func (e *Engine) IsCheckmate() bool {
	return e.b.IsCheckmate()
}

func (e *Engine) IsStalemate() bool {
	return e.b.IsStalemate()
}

func (e *Engine) EnPassant() (core.Square, bool) {
	return e.b.EnPassant()
}

func (e *Engine) LastMove() (from, to core.Square, ok bool) {
	return e.b.LastMove()
}

// LegalMoves returns the legal moves of the piece on from. An empty square,
// an off-board square or a piece of the side not to move yields no moves.
func (e *Engine) LegalMoves(from core.Square) []core.Move {
	return legalMoves(e.b, from)
}

// AllLegalMoves returns every legal move of the side to move in row-major
// order of the origin square.
func (e *Engine) AllLegalMoves() []core.Move {
	var moves []core.Move
	for _, sq := range e.b.Occupied(e.b.Turn()) {
		moves = append(moves, legalMoves(e.b, sq)...)
	}
	return moves
}

// HasLegalMove reports whether the side to move has at least one legal move
func (e *Engine) HasLegalMove() bool {
	return hasLegalMove(e.b)
}

// IsSquareAttacked reports whether any piece of color by attacks sq on the
// live board.
func (e *Engine) IsSquareAttacked(sq core.Square, by core.Color) bool {
	return isSquareAttacked(e.b, sq, by)
}

// MakeMove applies a move previously returned by LegalMoves, passes the turn
// and recomputes check, checkmate and stalemate for the new side to move.
// Moves not produced by the generator are undefined behavior; callers must
// validate first.
func (e *Engine) MakeMove(m core.Move) {
	e.advance(m)
	e.updateGameState()
}

// advance is MakeMove without the terminal-state scan
func (e *Engine) advance(m core.Move) {
	e.b.SetLastMove(m.From, m.To)
	e.b.ClearEnPassant()
	applyMove(e.b, m)
	e.b.SetTurn(core.OppositeColor(e.b.Turn()))
}
