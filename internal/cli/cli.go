package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/transport"
)

var _ transport.View = (*CLI)(nil)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdSquare
	CmdMoves
	CmdUndo
	CmdRestart
	CmdColor
	CmdHistory
	CmdBoard
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg  string
	darkBg   string
	selectBg string
	targetBg string
	lastBg   string
	white    string
	black    string
	reset    string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:  "\033[48;5;230m", // Beige
		darkBg:   "\033[48;5;94m",  // Brown
		selectBg: "\033[48;5;220m", // Yellow
		targetBg: "\033[48;5;114m", // Soft green
		lastBg:   "\033[48;5;179m", // Tan
		white:    "\033[97m",
		black:    "\033[30m",
		reset:    "\033[0m",
	},
	ThemeGreen: {
		lightBg:  "\033[48;5;157m", // Light green
		darkBg:   "\033[48;5;22m",  // Dark green
		selectBg: "\033[48;5;220m",
		targetBg: "\033[48;5;75m", // Blue
		lastBg:   "\033[48;5;149m",
		white:    "\033[97m",
		black:    "\033[30m",
		reset:    "\033[0m",
	},
	ThemeGray: {
		lightBg:  "\033[48;5;251m", // Light gray
		darkBg:   "\033[48;5;240m", // Dark gray
		selectBg: "\033[48;5;220m",
		targetBg: "\033[48;5;114m",
		lastBg:   "\033[48;5;110m",
		white:    "\033[97m",
		black:    "\033[30m",
		reset:    "\033[0m",
	},
}

// lineReader yields one input line per call and io.EOF at end of input
type lineReader interface {
	readLine(prompt string) (string, error)
	close() error
}

type scannerReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (r *scannerReader) readLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *scannerReader) close() error { return nil }

type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) readLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

func (r *readlineReader) close() error { return r.rl.Close() }

type CLI struct {
	input  lineReader
	output io.Writer
	theme  ColorTheme
}

// New reads plain lines from input; used for pipes and tests
func New(input io.Reader, output io.Writer) *CLI {
	return &CLI{
		input:  &scannerReader{sc: bufio.NewScanner(input), out: output},
		output: output,
		theme:  ThemeOff,
	}
}

// NewTerminal reads with line editing and persistent history
func NewTerminal(historyFile string, theme ColorTheme) (*CLI, error) {
	if _, ok := themes[theme]; !ok {
		return nil, fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &CLI{
		input:  &readlineReader{rl: rl},
		output: rl.Stdout(),
		theme:  theme,
	}, nil
}

func (c *CLI) Close() error {
	return c.input.close()
}

// GetCommand shows prompt and reads one command; end of input reads as quit
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	line, err := c.input.readLine(prompt)
	if err == io.EOF {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}
	return parseCommand(input), nil
}

func parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "moves", "m":
		return &Command{Type: CmdMoves, Args: args, Raw: input}
	case "undo", "u":
		return &Command{Type: CmdUndo, Args: args, Raw: input}
	case "restart", "r":
		return &Command{Type: CmdRestart, Raw: input}
	case "color":
		return &Command{Type: CmdColor, Args: args, Raw: input}
	case "history":
		return &Command{Type: CmdHistory, Raw: input}
	case "board", "b":
		return &Command{Type: CmdBoard, Raw: input}
	case "help", "?":
		return &Command{Type: CmdHelp, Raw: input}
	case "quit", "exit", "q":
		return &Command{Type: CmdQuit, Raw: input}
	}

	// Square picks: "e2", "e2 e4" or "e2e4"
	if squares, ok := splitSquares(parts); ok {
		return &Command{Type: CmdSquare, Args: squares, Raw: input}
	}
	return &Command{Type: CmdUnknown, Args: parts, Raw: input}
}

func splitSquares(parts []string) ([]string, bool) {
	if len(parts) == 1 && len(parts[0]) == 4 {
		parts = []string{parts[0][:2], parts[0][2:]}
	}
	if len(parts) > 2 {
		return nil, false
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, err := core.ParseSquare(p); err != nil {
			return nil, false
		}
		out = append(out, strings.ToLower(p))
	}
	return out, true
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowStatus(status string) {
	c.ShowMessage(status)
}

func (c *CLI) DisplayBoard(b *board.Board, hl transport.Highlight) {
	theme := themes[c.theme]
	targets := make(map[core.Square]bool, len(hl.Destinations))
	for _, sq := range hl.Destinations {
		targets[sq] = true
	}
	isAt := func(p *core.Square, sq core.Square) bool { return p != nil && *p == sq }

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")

	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < 8; f++ {
			sq := core.Sq(r, f)
			piece := b.At(sq)
			selected := isAt(hl.Selected, sq)
			last := isAt(hl.LastFrom, sq) || isAt(hl.LastTo, sq)

			if c.theme == ThemeOff {
				// Letter plus a one-character marker
				marker := byte(' ')
				switch {
				case selected:
					marker = '#'
				case targets[sq]:
					marker = '*'
				case last:
					marker = '+'
				}
				sb.WriteString(fmt.Sprintf("%c%c", piece.Letter(), marker))
				continue
			}

			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}
			switch {
			case selected:
				bg = theme.selectBg
			case targets[sq]:
				bg = theme.targetBg
			case last:
				bg = theme.lastBg
			}

			switch {
			case !piece.IsEmpty():
				color := theme.black
				if piece.Color == core.ColorWhite {
					color = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, piece.Letter(), theme.reset))
			case targets[sq]:
				sb.WriteString(fmt.Sprintf("%s%s* %s", bg, theme.black, theme.reset))
			default:
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <square>         - Select a piece or move the selected piece (e.g., e2, then e4)
  <from> <to>      - Pick two squares at once (e.g., e2 e4 or e2e4)
  moves [square]   - List legal moves of a square or of the selection
  undo [count]     - Undo last move(s), default 1
  restart          - Start over from the initial position
  board            - Redraw the board
  color <theme>    - Set board color theme (off|brown|green|gray)
  history          - Show the moves played so far
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Two players share this terminal. Pick a piece by its square, then its destination.")
	c.ShowMessage("Type 'help' for all commands.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(moves []game.MoveRecord) {
	if len(moves) == 0 {
		c.ShowMessage("No moves yet.")
		return
	}
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := describeMove(moves[i])
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, describeMove(moves[i+1])))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
}

// describeMove renders a ply as its squares with capture and special-move tags
func describeMove(rec game.MoveRecord) string {
	var sb strings.Builder
	sb.WriteString(rec.Move.String())
	if !rec.Captured.IsEmpty() {
		sb.WriteString(" takes " + rec.Captured.Kind.String())
	}
	switch {
	case rec.Move.IsCastling:
		sb.WriteString(" (castle)")
	case rec.Move.IsEnPassant:
		sb.WriteString(" (en passant)")
	case rec.Move.IsPromotion:
		sb.WriteString(" (queen)")
	}
	return sb.String()
}

func (c *CLI) ShowMove(rec game.MoveRecord) {
	c.ShowMessage(fmt.Sprintf("%s: %s", rec.Player.Name(), describeMove(rec)))
}

func (c *CLI) ShowGameOver(state core.State, status string) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", status))
	c.ShowMessage("Type 'restart' to play again or 'undo' to take back moves.")
}
