package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"
)

// CreateGame starts a hot-seat game from the initial position
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	gameID := h.svc.CreateGame()

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildGameResponse(v))
}

// GetGame returns the game, optionally long-polling for the next change
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}

	// Non-wait path
	if c.Query("wait", "false") != "true" {
		return c.JSON(buildGameResponse(v))
	}

	revision, err := strconv.Atoi(c.Query("revision", "-1"))
	if err != nil {
		revision = -1
	}

	// Already different, return immediately
	if revision != v.Revision {
		return c.JSON(buildGameResponse(v))
	}

	// Bounded by the registry timeout
	ctx := c.UserContext()
	notify, err := h.svc.RegisterWait(ctx, gameID, revision)
	if err != nil {
		return h.serviceError(c, err)
	}

	select {
	case <-notify:
		// Changed, timed out or deleted; reply with whatever is current
		v, err = h.svc.GetGame(gameID)
		if err != nil {
			return h.serviceError(c, err)
		}
		return c.JSON(buildGameResponse(v))
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return h.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LegalMoves lists the legal destinations of the piece on ?row=&col=
func (h *HTTPHandler) LegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	row, rowErr := strconv.Atoi(c.Query("row"))
	col, colErr := strconv.Atoi(c.Query("col"))
	from := core.Sq(row, col)
	if rowErr != nil || colErr != nil || !from.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid square",
			Code:    core.ErrInvalidRequest,
			Details: "row and col must be integers in [0,7]",
		})
	}

	moves, err := h.svc.LegalMoves(gameID, from)
	if err != nil {
		return h.serviceError(c, err)
	}
	if moves == nil {
		moves = []core.Move{}
	}
	return c.JSON(core.LegalMovesResponse{From: from, Moves: moves})
}

// MakeMove plays a move given by origin and destination squares
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}

	if _, err := h.svc.MakeMove(gameID, *req.From, *req.To); err != nil {
		return h.serviceError(c, err)
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// UndoMove undoes one or more plies
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, ok := validatedBody[core.UndoRequest](c)
	if !ok {
		return validationBypass(c)
	}

	if err := h.svc.UndoMoves(gameID, req.Count); err != nil {
		return h.serviceError(c, err)
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// Restart returns the game to its starting position
func (h *HTTPHandler) Restart(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if err := h.svc.Restart(gameID); err != nil {
		return h.serviceError(c, err)
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(buildGameResponse(v))
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	v, err := h.svc.GetGame(gameID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(core.BoardResponse{
		Turn:  v.Board.Turn().String(),
		Board: v.Board.ToASCII(),
	})
}

// validatedBody fetches the request stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (*T, bool) {
	if validated, ok := c.Locals("validated").(bool); !ok || !validated {
		return nil, false
	}
	req, ok := c.Locals("validatedBody").(*T)
	return req, ok && req != nil
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation bypass detected",
		Code:  core.ErrInternalError,
	})
}

// serviceError maps service and game errors onto status codes
func (h *HTTPHandler) serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	resp := core.ErrorResponse{Error: "internal server error", Code: core.ErrInternalError, Details: err.Error()}

	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status = fiber.StatusNotFound
		resp = core.ErrorResponse{Error: "game not found", Code: core.ErrGameNotFound}
	case errors.Is(err, game.ErrGameOver):
		status = fiber.StatusConflict
		resp.Error, resp.Code = "game is over", core.ErrGameOver
	case errors.Is(err, game.ErrIllegalMove):
		status = fiber.StatusBadRequest
		resp.Error, resp.Code = "invalid move", core.ErrInvalidMove
	case errors.Is(err, game.ErrNothingToUndo):
		status = fiber.StatusBadRequest
		resp.Error, resp.Code = "cannot undo moves", core.ErrNothingToUndo
	}
	return c.Status(status).JSON(resp)
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}
