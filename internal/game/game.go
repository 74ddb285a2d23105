package game

import (
	"errors"
	"fmt"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/engine"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// MoveRecord describes one played ply
type MoveRecord struct {
	Move     core.Move
	Piece    core.Piece // Mover as it stood before the move
	Captured core.Piece // Empty when nothing was taken
	Player   core.Color
	State    core.State // State after the move
}

type Snapshot struct {
	Board *board.Board // Position at this point, flags included
	Move  *MoveRecord  // Ply that created this position (nil for initial)
}

// Game is one hot-seat session: a live engine, the positions it passed
// through, and the current square selection.
type Game struct {
	eng       *engine.Engine
	snapshots []Snapshot

	selected     core.Square
	hasSelection bool
	targets      []core.Move
}

// New starts a game from the standard initial position
func New() *Game {
	return FromBoard(board.New())
}

// FromBoard starts a game from an arbitrary arrangement
func FromBoard(b *board.Board) *Game {
	eng := engine.FromBoard(b)
	return &Game{
		eng:       eng,
		snapshots: []Snapshot{{Board: eng.Board()}},
	}
}

// CurrentSnapshot returns a copy of the latest history entry
func (g *Game) CurrentSnapshot() Snapshot {
	cur := g.current()
	snap := Snapshot{Board: cur.Board.Clone()}
	if cur.Move != nil {
		rec := *cur.Move
		snap.Move = &rec
	}
	return snap
}

func (g *Game) current() Snapshot {
	return g.snapshots[len(g.snapshots)-1]
}

// Board returns a copy of the live position
func (g *Game) Board() *board.Board {
	return g.eng.Board()
}

func (g *Game) Turn() core.Color {
	return g.eng.Turn()
}

func (g *Game) State() core.State {
	return g.eng.State()
}

// Status is the one-line status bar text
func (g *Game) Status() string {
	turn := g.eng.Turn()
	switch {
	case g.eng.IsCheckmate():
		return fmt.Sprintf("CHECKMATE! %s wins!", core.OppositeColor(turn).Name())
	case g.eng.IsStalemate():
		return "STALEMATE! Draw!"
	case g.eng.InCheck():
		return fmt.Sprintf("%s's Turn  CHECK!", turn.Name())
	default:
		return fmt.Sprintf("%s's Turn", turn.Name())
	}
}

func (g *Game) LegalMoves(from core.Square) []core.Move {
	return g.eng.LegalMoves(from)
}

// Play makes the legal move from->to for the side to move
func (g *Game) Play(from, to core.Square) (MoveRecord, error) {
	if g.eng.State().IsOver() {
		return MoveRecord{}, ErrGameOver
	}

	for _, m := range g.eng.LegalMoves(from) {
		if m.To == to {
			return g.apply(m), nil
		}
	}
	return MoveRecord{}, fmt.Errorf("%w: %v-%v", ErrIllegalMove, from, to)
}

func (g *Game) apply(m core.Move) MoveRecord {
	rec := MoveRecord{
		Move:     m,
		Piece:    g.eng.PieceAt(m.From),
		Captured: g.eng.PieceAt(m.To),
		Player:   g.eng.Turn(),
	}
	if m.IsEnPassant {
		rec.Captured = g.eng.PieceAt(core.Sq(m.From.Row, m.To.Col))
	}

	g.eng.MakeMove(m)
	rec.State = g.eng.State()
	g.snapshots = append(g.snapshots, Snapshot{Board: g.eng.Board(), Move: &rec})
	g.Deselect()
	return rec
}

// UndoMoves rewinds count plies
func (g *Game) UndoMoves(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	availableMoves := len(g.snapshots) - 1
	if availableMoves == 0 {
		return ErrNothingToUndo
	}
	if availableMoves < count {
		return fmt.Errorf("%w: cannot undo %d moves, only %d played", ErrNothingToUndo, count, availableMoves)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	g.eng = engine.FromBoard(g.current().Board)
	g.Deselect()
	return nil
}

// Restart returns to the position the game started from
func (g *Game) Restart() {
	g.snapshots = g.snapshots[:1]
	g.eng = engine.FromBoard(g.snapshots[0].Board)
	g.Deselect()
}

// Moves returns the played plies in order
func (g *Game) Moves() []MoveRecord {
	moves := make([]MoveRecord, 0, len(g.snapshots)-1)
	for _, s := range g.snapshots[1:] {
		moves = append(moves, *s.Move)
	}
	return moves
}

func (g *Game) MoveCount() int {
	return len(g.snapshots) - 1
}

// LastResult is the most recent ply, nil before the first move
func (g *Game) LastResult() *MoveRecord {
	if rec := g.current().Move; rec != nil {
		r := *rec
		return &r
	}
	return nil
}
