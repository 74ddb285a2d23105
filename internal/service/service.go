package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"chessrules/internal/board"
	"chessrules/internal/game"
)

var ErrGameNotFound = errors.New("game not found")

type entry struct {
	game     *game.Game
	revision int // Bumped on every position change
}

// Service is an in-memory registry of hot-seat games
type Service struct {
	games  map[string]*entry
	mu     sync.RWMutex
	waiter *WaitRegistry
}

// New creates a service; waitTimeout bounds long-poll waits (<= 0 for the default)
func New(waitTimeout time.Duration) *Service {
	return &Service{
		games:  make(map[string]*entry),
		waiter: NewWaitRegistry(waitTimeout),
	}
}

// CreateGame starts a game from the initial position and returns its ID
func (s *Service) CreateGame() string {
	return s.CreateGameFrom(board.New())
}

// CreateGameFrom starts a game from an arbitrary arrangement
func (s *Service) CreateGameFrom(b *board.Board) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateGameID()
	s.games[id] = &entry{game: game.FromBoard(b)}
	return id
}

// generateGameID must be called with the write lock held
func (s *Service) generateGameID() string {
	// Ensure UUID uniqueness (handle potential conflicts)
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// DeleteGame removes a game and releases anyone waiting on it
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	if _, ok := s.games[gameID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(s.games, gameID)
	s.mu.Unlock()

	s.waiter.RemoveGame(gameID)
	return nil
}

func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// RegisterWait returns a channel closed once the game's revision moves past
// revision, the wait times out, or ctx ends.
func (s *Service) RegisterWait(ctx context.Context, gameID string, revision int) (<-chan struct{}, error) {
	s.mu.RLock()
	e, ok := s.games[gameID]
	if !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	current := e.revision
	ch := s.waiter.RegisterWait(ctx, gameID, revision)
	s.mu.RUnlock()

	// Changed between the client's read and registration
	if current != revision {
		s.waiter.NotifyGame(gameID, current)
	}
	return ch, nil
}

// Shutdown releases all waiters and drops every game
func (s *Service) Shutdown(timeout time.Duration) error {
	err := s.waiter.Shutdown(timeout)

	s.mu.Lock()
	s.games = make(map[string]*entry)
	s.mu.Unlock()

	return err
}

// withGame runs fn under the write lock and notifies waiters if it changed the position
func (s *Service) withGame(gameID string, fn func(g *game.Game) (changed bool, err error)) error {
	s.mu.Lock()
	e, ok := s.games[gameID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	changed, err := fn(e.game)
	if changed {
		e.revision++
	}
	revision := e.revision
	s.mu.Unlock()

	if changed {
		s.waiter.NotifyGame(gameID, revision)
	}
	return err
}
