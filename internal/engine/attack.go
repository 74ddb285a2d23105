package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// isSquareAttacked reports whether any piece of color by could capture on
// target. Pawns attack only diagonally forward; castling never attacks.
func isSquareAttacked(b *board.Board, target core.Square, by core.Color) bool {
	for _, from := range b.Occupied(by) {
		if canAttack(b, from, b.At(from), target) {
			return true
		}
	}
	return false
}

func canAttack(b *board.Board, from core.Square, p core.Piece, target core.Square) bool {
	if from == target {
		return false
	}
	dr := target.Row - from.Row
	dc := target.Col - from.Col

	switch p.Kind {
	case core.Pawn:
		return dr == core.Forward(p.Color) && abs(dc) == 1
	case core.Knight:
		return (abs(dr) == 2 && abs(dc) == 1) || (abs(dr) == 1 && abs(dc) == 2)
	case core.King:
		return abs(dr) <= 1 && abs(dc) <= 1
	case core.Rook:
		return (dr == 0 || dc == 0) && pathClear(b, from, target)
	case core.Bishop:
		return abs(dr) == abs(dc) && pathClear(b, from, target)
	case core.Queen:
		return (dr == 0 || dc == 0 || abs(dr) == abs(dc)) && pathClear(b, from, target)
	default:
		return false
	}
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a row, column or diagonal.
func pathClear(b *board.Board, from, to core.Square) bool {
	stepR := sign(to.Row - from.Row)
	stepC := sign(to.Col - from.Col)
	for sq := from.Offset(stepR, stepC); sq != to; sq = sq.Offset(stepR, stepC) {
		if !b.At(sq).IsEmpty() {
			return false
		}
	}
	return true
}

// inCheck reports whether color's king is attacked. A board without that
// king is never in check.
func inCheck(b *board.Board, color core.Color) bool {
	king, ok := b.King(color)
	if !ok {
		return false
	}
	return isSquareAttacked(b, king, core.OppositeColor(color))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
