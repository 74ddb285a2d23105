package http

import (
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"
)

// buildGameResponse converts a service view into the wire shape
func buildGameResponse(v service.View) core.GameResponse {
	b := v.Board
	resp := core.GameResponse{
		GameID:    v.ID,
		Revision:  v.Revision,
		Turn:      b.Turn().String(),
		State:     v.State.String(),
		Status:    v.Status,
		Check:     b.InCheck(),
		Checkmate: b.IsCheckmate(),
		Stalemate: b.IsStalemate(),
		Moves:     make([]core.MoveInfo, 0, len(v.Moves)),
	}

	squares := b.Squares()
	for r := range squares {
		for c, p := range squares[r] {
			if !p.IsEmpty() {
				resp.Board[r][c] = &core.PieceInfo{
					Kind:     p.Kind.String(),
					Color:    p.Color.String(),
					HasMoved: p.HasMoved,
				}
			}
		}
	}

	if ep, ok := b.EnPassant(); ok {
		resp.EnPassant = &ep
	}
	for _, rec := range v.Moves {
		resp.Moves = append(resp.Moves, moveInfo(rec))
	}
	if v.LastMove != nil {
		last := moveInfo(*v.LastMove)
		resp.LastMove = &last
	}
	return resp
}

func moveInfo(rec game.MoveRecord) core.MoveInfo {
	info := core.MoveInfo{
		From:        rec.Move.From,
		To:          rec.Move.To,
		Label:       rec.Move.String(),
		Piece:       rec.Piece.Kind.String(),
		PlayerColor: rec.Player.String(),
		IsEnPassant: rec.Move.IsEnPassant,
		IsCastling:  rec.Move.IsCastling,
		IsPromotion: rec.Move.IsPromotion,
	}
	if !rec.Captured.IsEmpty() {
		info.Captured = rec.Captured.Kind.String()
	}
	return info
}
