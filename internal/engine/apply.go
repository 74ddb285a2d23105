package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// applyMove performs m on b. It is used for both the live board and the
// copies built by the legality filter, and never touches turn or status.
func applyMove(b *board.Board, m core.Move) {
	p := b.At(m.From)

	if m.IsEnPassant {
		b.Remove(core.Sq(m.From.Row, m.To.Col))
	}

	if m.IsCastling {
		rookFrom, rookTo := core.Sq(m.From.Row, 7), core.Sq(m.From.Row, 5)
		if m.To.Col == 2 {
			rookFrom, rookTo = core.Sq(m.From.Row, 0), core.Sq(m.From.Row, 3)
		}
		rook := b.At(rookFrom)
		rook.HasMoved = true
		b.Place(rookTo, rook)
		b.Remove(rookFrom)
	}

	if p.Kind == core.Pawn && abs(m.To.Row-m.From.Row) == 2 {
		b.SetEnPassant(core.Sq((m.From.Row+m.To.Row)/2, m.From.Col))
	}

	if m.IsPromotion {
		p.Kind = core.Queen
	}

	p.HasMoved = true
	b.Place(m.To, p)
	b.Remove(m.From)
}
