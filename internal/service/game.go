package service

import (
	"fmt"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
)

// View is a consistent read of one game, safe to use after the lock is released
type View struct {
	ID       string
	Revision int
	Board    *board.Board
	State    core.State
	Status   string
	Moves    []game.MoveRecord
	LastMove *game.MoveRecord

	Selected *core.Square
	Targets  []core.Move
}

// GetGame returns a snapshot of the game
func (s *Service) GetGame(gameID string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	g := e.game
	v := View{
		ID:       gameID,
		Revision: e.revision,
		Board:    g.Board(),
		State:    g.State(),
		Status:   g.Status(),
		Moves:    g.Moves(),
		LastMove: g.LastResult(),
	}
	if from, targets, ok := g.Selection(); ok {
		v.Selected = &from
		v.Targets = targets
	}
	return v, nil
}

// LegalMoves lists the legal moves of the piece on from
func (s *Service) LegalMoves(gameID string, from core.Square) ([]core.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e.game.LegalMoves(from), nil
}

// MakeMove plays from->to if it is legal for the side to move
func (s *Service) MakeMove(gameID string, from, to core.Square) (game.MoveRecord, error) {
	var rec game.MoveRecord
	err := s.withGame(gameID, func(g *game.Game) (bool, error) {
		var err error
		rec, err = g.Play(from, to)
		return err == nil, err
	})
	return rec, err
}

// Click forwards a square pick to the game's select-then-move flow
func (s *Service) Click(gameID string, sq core.Square) (game.ClickResult, *game.MoveRecord, error) {
	var (
		res game.ClickResult
		rec *game.MoveRecord
	)
	err := s.withGame(gameID, func(g *game.Game) (bool, error) {
		res, rec = g.Click(sq)
		return res == game.ClickMoved, nil
	})
	return res, rec, err
}

// UndoMoves rewinds count plies
func (s *Service) UndoMoves(gameID string, count int) error {
	return s.withGame(gameID, func(g *game.Game) (bool, error) {
		err := g.UndoMoves(count)
		return err == nil, err
	})
}

// Restart returns the game to its starting position
func (s *Service) Restart(gameID string) error {
	return s.withGame(gameID, func(g *game.Game) (bool, error) {
		g.Restart()
		return true, nil
	})
}
