package transport

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"
)

// Highlight marks squares to emphasize when a board is drawn
type Highlight struct {
	Selected     *core.Square
	Destinations []core.Square
	LastFrom     *core.Square
	LastTo       *core.Square
}

// HighlightFor derives the selection and last-move marks of a game view
func HighlightFor(v service.View) Highlight {
	hl := Highlight{Selected: v.Selected}
	for _, m := range v.Targets {
		hl.Destinations = append(hl.Destinations, m.To)
	}
	if v.LastMove != nil {
		from, to := v.LastMove.Move.From, v.LastMove.Move.To
		hl.LastFrom, hl.LastTo = &from, &to
	}
	return hl
}

// View abstracts display/output operations
type View interface {
	DisplayBoard(b *board.Board, hl Highlight)
	ShowMessage(msg string)
	ShowError(err error)
	ShowStatus(status string)
	ShowGameHistory(moves []game.MoveRecord)
	ShowGameOver(state core.State, status string)
	ShowHelp()
}
