package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second
)

// WaitRegistry manages long-polling clients waiting for game state changes
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	timeout  time.Duration
	shutdown chan struct{} // Closed under mu
	stopped  bool
	wg       sync.WaitGroup
}

// WaitRequest represents a single client waiting for game updates.
// Its channel is closed exactly once: on change, timeout, cancel or shutdown.
type WaitRequest struct {
	Revision int    // Last revision the client has seen
	GameID   string // Game being watched
	notify   chan struct{}
	once     sync.Once
	timer    *time.Timer
}

func (r *WaitRequest) release() {
	r.once.Do(func() { close(r.notify) })
}

// NewWaitRegistry creates a registry; timeout <= 0 uses WaitTimeout
func NewWaitRegistry(timeout time.Duration) *WaitRegistry {
	if timeout <= 0 {
		timeout = WaitTimeout
	}
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		timeout:  timeout,
		shutdown: make(chan struct{}),
	}
}

// RegisterWait registers a client to wait for a revision other than the one given
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, revision int) <-chan struct{} {
	req := &WaitRequest{
		Revision: revision,
		GameID:   gameID,
		notify:   make(chan struct{}),
	}

	// The stopped check and wg.Add share the lock with Shutdown
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		req.release()
		return req.notify
	}
	req.timer = time.AfterFunc(w.timeout, req.release)
	w.waiters[gameID] = append(w.waiters[gameID], req)
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			// Client disconnected
		case <-req.notify:
		case <-w.shutdown:
		}
		w.removeWaiter(req)
	}()

	return req.notify
}

// NotifyGame wakes every client whose revision differs from the current one
func (w *WaitRegistry) NotifyGame(gameID string, revision int) {
	w.mu.Lock()
	waitList := append([]*WaitRequest(nil), w.waiters[gameID]...)
	w.mu.Unlock()

	for _, req := range waitList {
		if req.Revision != revision {
			req.release()
		}
	}
}

// RemoveGame releases all waiters for a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.release()
	}
}

// Waiting returns the number of registered clients for a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown releases all waiters and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.shutdown)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %v", timeout)
	}
}

// removeWaiter drops a request from the registry and releases it
func (w *WaitRegistry) removeWaiter(req *WaitRequest) {
	req.timer.Stop()
	req.release()

	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[req.GameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[req.GameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}
	if len(w.waiters[req.GameID]) == 0 {
		delete(w.waiters, req.GameID)
	}
}
