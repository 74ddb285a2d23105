package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"chessrules/internal/core"
	"chessrules/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, *service.Service) {
	t.Helper()
	svc := service.New(time.Second)
	t.Cleanup(func() { _ = svc.Shutdown(time.Second) })
	return NewFiberApp(svc, Config{RateLimit: 1000, Quiet: true}), svc
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			r = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return v
}

func createGame(t *testing.T, app *fiber.App) core.GameResponse {
	t.Helper()
	status, data := do(t, app, nethttp.MethodPost, "/api/v1/games", nil)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d: %s", status, data)
	}
	return decode[core.GameResponse](t, data)
}

func move(fromRow, fromCol, toRow, toCol int) map[string]any {
	return map[string]any{
		"from": map[string]int{"row": fromRow, "col": fromCol},
		"to":   map[string]int{"row": toRow, "col": toCol},
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	status, data := do(t, app, nethttp.MethodGet, "/health", nil)
	if status != fiber.StatusOK || !strings.Contains(string(data), "healthy") {
		t.Fatalf("health = %d %s", status, data)
	}
}

func TestCreateAndGetGame(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)

	if g.Turn != "w" || g.Status != "White's Turn" || g.State != "ongoing" || len(g.Moves) != 0 {
		t.Fatalf("new game = %+v", g)
	}
	if p := g.Board[7][4]; p == nil || p.Kind != "king" || p.Color != "w" {
		t.Fatalf("e1 = %+v", p)
	}
	if g.Board[4][4] != nil {
		t.Fatalf("e4 not empty")
	}

	status, data := do(t, app, nethttp.MethodGet, "/api/v1/games/"+g.GameID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d: %s", status, data)
	}
	if got := decode[core.GameResponse](t, data); got.GameID != g.GameID {
		t.Fatalf("got game %q", got.GameID)
	}
}

func TestGameNotFoundAndBadID(t *testing.T) {
	app, _ := newTestApp(t)

	status, data := do(t, app, nethttp.MethodGet, "/api/v1/games/not-a-uuid", nil)
	if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrInvalidRequest {
		t.Fatalf("bad id = %d %s", status, data)
	}

	status, data = do(t, app, nethttp.MethodGet, "/api/v1/games/00000000-0000-0000-0000-000000000000", nil)
	if status != fiber.StatusNotFound || decode[core.ErrorResponse](t, data).Code != core.ErrGameNotFound {
		t.Fatalf("missing game = %d %s", status, data)
	}
}

func TestLegalMoves(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)

	status, data := do(t, app, nethttp.MethodGet, "/api/v1/games/"+g.GameID+"/moves?row=6&col=4", nil)
	if status != fiber.StatusOK {
		t.Fatalf("moves status = %d: %s", status, data)
	}
	resp := decode[core.LegalMovesResponse](t, data)
	if len(resp.Moves) != 2 {
		t.Fatalf("e2 moves = %+v, want 2", resp.Moves)
	}

	status, data = do(t, app, nethttp.MethodGet, "/api/v1/games/"+g.GameID+"/moves?row=1&col=4", nil)
	if status != fiber.StatusOK || len(decode[core.LegalMovesResponse](t, data).Moves) != 0 {
		t.Fatalf("black pawn on white turn = %d %s", status, data)
	}

	status, _ = do(t, app, nethttp.MethodGet, "/api/v1/games/"+g.GameID+"/moves?row=8&col=0", nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("off-board square status = %d", status)
	}
}

func TestMakeMoveAndUndo(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)
	base := "/api/v1/games/" + g.GameID

	status, data := do(t, app, nethttp.MethodPost, base+"/moves", move(6, 4, 4, 4))
	if status != fiber.StatusOK {
		t.Fatalf("move status = %d: %s", status, data)
	}
	after := decode[core.GameResponse](t, data)
	if after.Turn != "b" || len(after.Moves) != 1 || after.Revision != 1 {
		t.Fatalf("after move = %+v", after)
	}
	if after.EnPassant == nil || *after.EnPassant != core.Sq(5, 4) {
		t.Fatalf("en passant = %v, want row 5 col 4", after.EnPassant)
	}
	if after.LastMove == nil || after.LastMove.Label != "e2-e4" || after.LastMove.PlayerColor != "w" {
		t.Fatalf("last move = %+v", after.LastMove)
	}

	status, data = do(t, app, nethttp.MethodPost, base+"/moves", move(4, 4, 3, 4))
	if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrInvalidMove {
		t.Fatalf("white moving on black turn = %d %s", status, data)
	}

	status, data = do(t, app, nethttp.MethodPost, base+"/undo", map[string]int{"count": 1})
	if status != fiber.StatusOK {
		t.Fatalf("undo status = %d: %s", status, data)
	}
	if got := decode[core.GameResponse](t, data); got.Turn != "w" || len(got.Moves) != 0 {
		t.Fatalf("after undo = %+v", got)
	}

	status, data = do(t, app, nethttp.MethodPost, base+"/undo", "")
	if status != fiber.StatusBadRequest || decode[core.ErrorResponse](t, data).Code != core.ErrNothingToUndo {
		t.Fatalf("undo on fresh game = %d %s", status, data)
	}
}

func TestMoveValidation(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)
	base := "/api/v1/games/" + g.GameID

	tests := []struct {
		name string
		body any
	}{
		{"missing to", map[string]any{"from": map[string]int{"row": 6, "col": 4}}},
		{"row out of range", move(6, 4, 9, 4)},
		{"negative col", move(6, -1, 5, 0)},
		{"malformed json", "{"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, app, nethttp.MethodPost, base+"/moves", tt.body)
			if status != fiber.StatusBadRequest {
				t.Fatalf("status = %d: %s", status, data)
			}
			if code := decode[core.ErrorResponse](t, data).Code; code != core.ErrInvalidRequest {
				t.Fatalf("code = %s", code)
			}
		})
	}

	status, data := do(t, app, nethttp.MethodPost, base+"/undo", map[string]int{"count": 0})
	if status != fiber.StatusBadRequest {
		t.Fatalf("undo count 0 = %d %s", status, data)
	}
}

func TestFoolsMateOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)
	base := "/api/v1/games/" + g.GameID

	plies := []map[string]any{
		move(6, 5, 5, 5), // f2-f3
		move(1, 4, 3, 4), // e7-e5
		move(6, 6, 4, 6), // g2-g4
		move(0, 3, 4, 7), // d8-h4
	}
	var last core.GameResponse
	for i, m := range plies {
		status, data := do(t, app, nethttp.MethodPost, base+"/moves", m)
		if status != fiber.StatusOK {
			t.Fatalf("ply %d status = %d: %s", i, status, data)
		}
		last = decode[core.GameResponse](t, data)
	}
	if !last.Checkmate || !last.Check || last.State != "black wins" || last.Status != "CHECKMATE! Black wins!" {
		t.Fatalf("after mate = %+v", last)
	}

	status, data := do(t, app, nethttp.MethodPost, base+"/moves", move(6, 0, 5, 0))
	if status != fiber.StatusConflict || decode[core.ErrorResponse](t, data).Code != core.ErrGameOver {
		t.Fatalf("move after mate = %d %s", status, data)
	}

	status, data = do(t, app, nethttp.MethodPost, base+"/restart", nil)
	if status != fiber.StatusOK {
		t.Fatalf("restart status = %d: %s", status, data)
	}
	if got := decode[core.GameResponse](t, data); got.Checkmate || len(got.Moves) != 0 || got.Turn != "w" {
		t.Fatalf("after restart = %+v", got)
	}
}

func TestBoardAndDelete(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)
	base := "/api/v1/games/" + g.GameID

	status, data := do(t, app, nethttp.MethodGet, base+"/board", nil)
	if status != fiber.StatusOK {
		t.Fatalf("board status = %d", status)
	}
	if b := decode[core.BoardResponse](t, data); !strings.Contains(b.Board, "R N B Q K B N R") {
		t.Fatalf("board = %q", b.Board)
	}

	status, _ = do(t, app, nethttp.MethodDelete, base, nil)
	if status != fiber.StatusNoContent {
		t.Fatalf("delete status = %d", status)
	}
	status, _ = do(t, app, nethttp.MethodDelete, base, nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("second delete status = %d", status)
	}
}

func TestLongPollReturnsOnStaleRevision(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)
	base := "/api/v1/games/" + g.GameID

	if status, data := do(t, app, nethttp.MethodPost, base+"/moves", move(6, 3, 4, 3)); status != fiber.StatusOK {
		t.Fatalf("move status = %d: %s", status, data)
	}

	status, data := do(t, app, nethttp.MethodGet, base+"?wait=true&revision=0", nil)
	if status != fiber.StatusOK {
		t.Fatalf("wait status = %d: %s", status, data)
	}
	if got := decode[core.GameResponse](t, data); got.Revision != 1 {
		t.Fatalf("revision = %d, want 1", got.Revision)
	}
}

func TestLongPollTimesOut(t *testing.T) {
	svc := service.New(50 * time.Millisecond)
	t.Cleanup(func() { _ = svc.Shutdown(time.Second) })
	app := NewFiberApp(svc, Config{RateLimit: 1000, Quiet: true})
	g := createGame(t, app)

	status, data := do(t, app, nethttp.MethodGet, "/api/v1/games/"+g.GameID+"?wait=true&revision=0", nil)
	if status != fiber.StatusOK {
		t.Fatalf("wait status = %d: %s", status, data)
	}
	if got := decode[core.GameResponse](t, data); got.Revision != 0 {
		t.Fatalf("revision = %d, want 0", got.Revision)
	}
}

func TestUnsupportedContentType(t *testing.T) {
	app, _ := newTestApp(t)
	g := createGame(t, app)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/games/"+g.GameID+"/moves", strings.NewReader("from=e2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestWriteTimeoutFollowsWaitTimeout(t *testing.T) {
	svc := service.New(time.Minute)
	defer svc.Shutdown(time.Second)

	tests := []struct {
		wait time.Duration
		want time.Duration
	}{
		{0, service.WaitTimeout + 5*time.Second},
		{time.Minute, time.Minute + 5*time.Second},
		{2 * time.Second, 7 * time.Second},
	}
	for _, tt := range tests {
		app := NewFiberApp(svc, Config{Quiet: true, WaitTimeout: tt.wait})
		if got := app.Config().WriteTimeout; got != tt.want {
			t.Errorf("wait %v: WriteTimeout = %v, want %v", tt.wait, got, tt.want)
		}
	}
}
