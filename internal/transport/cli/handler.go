package cli

import (
	"fmt"
	"strconv"
	"strings"

	"chessrules/internal/cli"
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"
	"chessrules/internal/transport"
)

// Console is the terminal surface the handler drives
type Console interface {
	transport.View
	GetCommand(prompt string) (*cli.Command, error)
	SetTheme(theme cli.ColorTheme) error
	ShowMove(rec game.MoveRecord)
}

type CLIHandler struct {
	svc    *service.Service
	view   Console
	gameID string
}

func New(svc *service.Service, view Console) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() error {
	if h.gameID == "" {
		h.gameID = h.svc.CreateGame()
	}
	h.showBoard()

	for {
		cmd, err := h.view.GetCommand(h.getPrompt())
		if err != nil {
			return err
		}

		// Process command - returns false to exit
		if !h.ProcessCommand(cmd) {
			return nil
		}
	}
}

// GameID is the hot-seat game this handler drives
func (h *CLIHandler) GameID() string {
	return h.gameID
}

// Generates the appropriate command prompt
func (h *CLIHandler) getPrompt() string {
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return "> "
	}
	if v.State.IsOver() {
		return "[game over]> "
	}
	turn := v.Board.Turn().Name()
	if v.Selected != nil {
		return fmt.Sprintf("[%s %s]> ", turn, v.Selected)
	}
	return fmt.Sprintf("[%s]> ", turn)
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdSquare:
		var last game.ClickResult
		for _, label := range cmd.Args {
			res, ok := h.handleSquare(label)
			last = res
			if !ok {
				break
			}
		}
		if last == game.ClickSelected {
			h.showBoard()
		}

	case cli.CmdMoves:
		h.handleMoves(cmd.Args)

	case cli.CmdUndo:
		count := 1
		if len(cmd.Args) > 0 {
			if n, err := strconv.Atoi(cmd.Args[0]); err == nil && n > 0 {
				count = n
			} else {
				h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
				return true
			}
		}

		if err := h.svc.UndoMoves(h.gameID, count); err != nil {
			h.view.ShowError(err)
			return true
		}
		if count == 1 {
			h.view.ShowMessage("Move undone")
		} else {
			h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
		}
		h.showBoard()

	case cli.CmdRestart:
		if err := h.svc.Restart(h.gameID); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage("Game restarted.")
		h.showBoard()

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		h.showBoard()

	case cli.CmdHistory:
		v, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameHistory(v.Moves)

	case cli.CmdBoard:
		h.showBoard()

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdUnknown:
		h.view.ShowMessage(fmt.Sprintf("Unknown command: %s. Type 'help' for commands.", strings.Join(cmd.Args, " ")))
	}

	return true
}

// handleSquare feeds one square pick to the game; false stops a multi-square command
func (h *CLIHandler) handleSquare(label string) (game.ClickResult, bool) {
	sq, err := core.ParseSquare(label)
	if err != nil {
		h.view.ShowError(err)
		return game.ClickIgnored, false
	}

	res, rec, err := h.svc.Click(h.gameID, sq)
	if err != nil {
		h.view.ShowError(err)
		return res, false
	}

	switch res {
	case game.ClickIgnored:
		h.view.ShowMessage("The game is over. Type 'restart' or 'undo'.")
		return res, false

	case game.ClickDeselected:
		h.view.ShowMessage(fmt.Sprintf("Nothing to move on %s. Selection cleared.", sq))
		return res, false

	case game.ClickSelected:
		v, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return res, false
		}
		if len(v.Targets) == 0 {
			h.view.ShowMessage(fmt.Sprintf("%s on %s has no legal moves.", v.Board.At(sq), sq))
		}

	case game.ClickMoved:
		h.view.ShowMove(*rec)
		h.showBoard()
		if rec.State.IsOver() {
			v, _ := h.svc.GetGame(h.gameID)
			h.view.ShowGameOver(rec.State, v.Status)
		}
	}
	return res, true
}

func (h *CLIHandler) handleMoves(args []string) {
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	var from core.Square
	switch {
	case len(args) > 0:
		if from, err = core.ParseSquare(args[0]); err != nil {
			h.view.ShowError(err)
			return
		}
	case v.Selected != nil:
		from = *v.Selected
	default:
		h.view.ShowMessage("Usage: moves <square> (or select a piece first)")
		return
	}

	moves, err := h.svc.LegalMoves(h.gameID, from)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	if len(moves) == 0 {
		h.view.ShowMessage(fmt.Sprintf("No legal moves from %s.", from))
		return
	}

	labels := make([]string, 0, len(moves))
	for _, m := range moves {
		labels = append(labels, m.To.String())
	}
	h.view.ShowMessage(fmt.Sprintf("Legal moves from %s: %s", from, strings.Join(labels, " ")))
}

// showBoard draws the current position with selection and last-move marks
func (h *CLIHandler) showBoard() {
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.DisplayBoard(v.Board, transport.HighlightFor(v))
	h.view.ShowStatus(v.Status)
}
