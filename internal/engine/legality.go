package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

func legalMoves(b *board.Board, from core.Square) []core.Move {
	p := b.At(from)
	if p.IsEmpty() || p.Color != b.Turn() {
		return nil
	}

	var legal []core.Move
	for _, m := range pseudoLegalMoves(b, from) {
		if !leavesKingAttacked(b, m, p.Color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// leavesKingAttacked plays m on a copy of b and probes the mover's king
func leavesKingAttacked(b *board.Board, m core.Move, mover core.Color) bool {
	next := b.Clone()
	applyMove(next, m)
	return inCheck(next, mover)
}

// hasLegalMove stops at the first legal move found
func hasLegalMove(b *board.Board) bool {
	color := b.Turn()
	for _, from := range b.Occupied(color) {
		for _, m := range pseudoLegalMoves(b, from) {
			if !leavesKingAttacked(b, m, color) {
				return true
			}
		}
	}
	return false
}
