package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

	rookDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs  = append(append([][2]int{}, rookDirs...), bishopDirs...)
)

// pseudoLegalMoves generates the moves of the piece on from by its movement
// rules alone, without checking whether the mover's king is left attacked.
func pseudoLegalMoves(b *board.Board, from core.Square) []core.Move {
	p := b.At(from)
	switch p.Kind {
	case core.Pawn:
		return pawnMoves(b, from, p)
	case core.Knight:
		return stepMoves(b, from, p, knightOffsets[:])
	case core.Bishop:
		return slideMoves(b, from, p, bishopDirs)
	case core.Rook:
		return slideMoves(b, from, p, rookDirs)
	case core.Queen:
		return slideMoves(b, from, p, queenDirs)
	case core.King:
		moves := stepMoves(b, from, p, kingOffsets[:])
		return append(moves, castleMoves(b, from, p)...)
	default:
		return nil
	}
}

func pawnMoves(b *board.Board, from core.Square, p core.Piece) []core.Move {
	var moves []core.Move
	dir := core.Forward(p.Color)
	startRow := 6
	promoRow := 0
	if p.Color == core.ColorBlack {
		startRow = 1
		promoRow = 7
	}

	one := from.Offset(dir, 0)
	if one.Valid() && b.At(one).IsEmpty() {
		moves = append(moves, core.Move{From: from, To: one, IsPromotion: one.Row == promoRow})

		two := from.Offset(2*dir, 0)
		if from.Row == startRow && b.At(two).IsEmpty() {
			moves = append(moves, core.Move{From: from, To: two})
		}
	}

	ep, hasEP := b.EnPassant()
	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if !to.Valid() {
			continue
		}
		target := b.At(to)
		if !target.IsEmpty() && target.Color != p.Color {
			moves = append(moves, core.Move{From: from, To: to, IsPromotion: to.Row == promoRow})
		}
		if hasEP && to == ep {
			moves = append(moves, core.Move{From: from, To: to, IsEnPassant: true})
		}
	}

	return moves
}

// stepMoves covers the single-step pieces: knight and the king's normal moves
func stepMoves(b *board.Board, from core.Square, p core.Piece, offsets [][2]int) []core.Move {
	var moves []core.Move
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if !to.Valid() {
			continue
		}
		target := b.At(to)
		if target.IsEmpty() || target.Color != p.Color {
			moves = append(moves, core.Move{From: from, To: to})
		}
	}
	return moves
}

func slideMoves(b *board.Board, from core.Square, p core.Piece, dirs [][2]int) []core.Move {
	var moves []core.Move
	for _, d := range dirs {
		for to := from.Offset(d[0], d[1]); to.Valid(); to = to.Offset(d[0], d[1]) {
			target := b.At(to)
			if target.IsEmpty() {
				moves = append(moves, core.Move{From: from, To: to})
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, core.Move{From: from, To: to})
			}
			break
		}
	}
	return moves
}

// castleMoves yields the castling moves of an unmoved king standing on its
// home square. The transit squares are probed on a copy of the board with
// the king lifted off, so the live board is never touched.
func castleMoves(b *board.Board, from core.Square, king core.Piece) []core.Move {
	row := core.HomeRow(king.Color)
	if king.HasMoved || from != core.Sq(row, 4) {
		return nil
	}
	enemy := core.OppositeColor(king.Color)
	if isSquareAttacked(b, from, enemy) {
		return nil
	}

	probe := b.Clone()
	probe.Remove(from)

	var moves []core.Move
	if rookReady(b, core.Sq(row, 7), king.Color) &&
		emptySquares(b, row, 5, 6) &&
		!isSquareAttacked(probe, core.Sq(row, 5), enemy) &&
		!isSquareAttacked(probe, core.Sq(row, 6), enemy) {
		moves = append(moves, core.Move{From: from, To: core.Sq(row, 6), IsCastling: true})
	}
	if rookReady(b, core.Sq(row, 0), king.Color) &&
		emptySquares(b, row, 1, 2, 3) &&
		!isSquareAttacked(probe, core.Sq(row, 3), enemy) &&
		!isSquareAttacked(probe, core.Sq(row, 2), enemy) {
		moves = append(moves, core.Move{From: from, To: core.Sq(row, 2), IsCastling: true})
	}
	return moves
}

func rookReady(b *board.Board, sq core.Square, color core.Color) bool {
	r := b.At(sq)
	return r.Kind == core.Rook && r.Color == color && !r.HasMoved
}

func emptySquares(b *board.Board, row int, cols ...int) bool {
	for _, c := range cols {
		if !b.At(core.Sq(row, c)).IsEmpty() {
			return false
		}
	}
	return true
}
