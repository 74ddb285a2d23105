package game

import "chessrules/internal/core"

type ClickResult int

const (
	ClickIgnored    ClickResult = iota // Game over; nothing changes
	ClickSelected                      // A piece of the side to move is now selected
	ClickDeselected                    // Selection cleared
	ClickMoved                         // Selected piece moved to the clicked square
)

func (r ClickResult) String() string {
	switch r {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickMoved:
		return "moved"
	default:
		return "ignored"
	}
}

// Click handles one square pick in the select-then-move flow. Clicking a
// legal destination of the selected piece plays it; clicking another piece
// of the side to move switches the selection; anything else clears it.
func (g *Game) Click(sq core.Square) (ClickResult, *MoveRecord) {
	if g.eng.State().IsOver() {
		return ClickIgnored, nil
	}
	if !sq.Valid() {
		g.Deselect()
		return ClickDeselected, nil
	}

	if g.hasSelection {
		for _, m := range g.targets {
			if m.To == sq {
				rec := g.apply(m)
				return ClickMoved, &rec
			}
		}
	}

	p := g.eng.PieceAt(sq)
	if !p.IsEmpty() && p.Color == g.eng.Turn() {
		g.selected = sq
		g.hasSelection = true
		g.targets = g.eng.LegalMoves(sq)
		return ClickSelected, nil
	}

	g.Deselect()
	return ClickDeselected, nil
}

// Selection returns the selected square and its legal moves
func (g *Game) Selection() (core.Square, []core.Move, bool) {
	if !g.hasSelection {
		return core.Square{}, nil, false
	}
	return g.selected, append([]core.Move(nil), g.targets...), true
}

func (g *Game) Deselect() {
	g.selected = core.Square{}
	g.hasSelection = false
	g.targets = nil
}
