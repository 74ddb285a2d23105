package engine

import "chessrules/internal/core"

// updateGameState sets the flags for the side to move. Exactly one of
// checkmate and stalemate holds when that side has no legal move.
func (e *Engine) updateGameState() {
	check := inCheck(e.b, e.b.Turn())
	if hasLegalMove(e.b) {
		e.b.SetStatus(check, false, false)
		return
	}
	e.b.SetStatus(check, check, !check)
}

// State summarizes the flags for the side to move
func (e *Engine) State() core.State {
	switch {
	case e.b.IsCheckmate():
		if e.b.Turn() == core.ColorWhite {
			return core.StateBlackWins
		}
		return core.StateWhiteWins
	case e.b.IsStalemate():
		return core.StateStalemate
	case e.b.InCheck():
		return core.StateCheck
	default:
		return core.StateOngoing
	}
}
