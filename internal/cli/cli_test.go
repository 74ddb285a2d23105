package cli

import (
	"bytes"
	"strings"
	"testing"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/transport"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  CommandType
		args  []string
	}{
		{"e2", CmdSquare, []string{"e2"}},
		{"E2", CmdSquare, []string{"e2"}},
		{"e2 e4", CmdSquare, []string{"e2", "e4"}},
		{"e2e4", CmdSquare, []string{"e2", "e4"}},
		{"e9", CmdUnknown, nil},
		{"moves e2", CmdMoves, []string{"e2"}},
		{"undo 2", CmdUndo, []string{"2"}},
		{"r", CmdRestart, nil},
		{"color green", CmdColor, []string{"green"}},
		{"history", CmdHistory, nil},
		{"?", CmdHelp, nil},
		{"exit", CmdQuit, nil},
		{"castle", CmdUnknown, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			cmd := parseCommand(tt.input)
			if cmd.Type != tt.want {
				t.Fatalf("type = %v, want %v", cmd.Type, tt.want)
			}
			if tt.args != nil && strings.Join(cmd.Args, ",") != strings.Join(tt.args, ",") {
				t.Fatalf("args = %v, want %v", cmd.Args, tt.args)
			}
		})
	}
}

func TestGetCommandEOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("e2\n\n"), &out)

	cmd, err := c.GetCommand("> ")
	if err != nil || cmd.Type != CmdSquare {
		t.Fatalf("first = %+v %v", cmd, err)
	}
	cmd, _ = c.GetCommand("> ")
	if cmd.Type != CmdNone {
		t.Fatalf("blank line = %v", cmd.Type)
	}
	cmd, _ = c.GetCommand("> ")
	if cmd.Type != CmdQuit {
		t.Fatalf("end of input = %v, want quit", cmd.Type)
	}
	if strings.Count(out.String(), "> ") != 3 {
		t.Fatalf("prompts written = %q", out.String())
	}
}

func TestDisplayBoardMarkers(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	sel := core.Sq(6, 4)
	c.DisplayBoard(board.New(), transport.Highlight{
		Selected:     &sel,
		Destinations: []core.Square{core.Sq(5, 4), core.Sq(4, 4)},
	})

	lines := strings.Split(out.String(), "\n")
	// lines[0] is blank, lines[1] the file header, then rank 8 down to rank 1
	rank := func(n int) string { return lines[2+8-n] }

	if got := rank(2); got != "2 P P P P P#P P P  2" {
		t.Errorf("rank 2 = %q", got)
	}
	if got := rank(3); got != "3 . . . . .*. . .  3" {
		t.Errorf("rank 3 = %q", got)
	}
	if got := rank(4); got != "4 . . . . .*. . .  4" {
		t.Errorf("rank 4 = %q", got)
	}
}

func TestDisplayBoardThemed(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)
	if err := c.SetTheme("purple"); err == nil {
		t.Fatalf("unknown theme accepted")
	}
	if err := c.SetTheme(ThemeBrown); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	c.DisplayBoard(board.New(), transport.Highlight{})
	if !strings.Contains(out.String(), themes[ThemeBrown].lightBg) {
		t.Fatalf("themed board has no background codes")
	}
}

func TestShowGameHistory(t *testing.T) {
	g := game.New()
	for _, m := range [][2]core.Square{
		{core.Sq(6, 4), core.Sq(4, 4)},
		{core.Sq(1, 3), core.Sq(3, 3)},
		{core.Sq(4, 4), core.Sq(3, 3)},
	} {
		if _, err := g.Play(m[0], m[1]); err != nil {
			t.Fatalf("Play: %v", err)
		}
	}

	var out bytes.Buffer
	New(strings.NewReader(""), &out).ShowGameHistory(g.Moves())
	want := "1. e2-e4 | d7-d5\n2. e4-d5 takes pawn | ...\n"
	if out.String() != want {
		t.Fatalf("history = %q, want %q", out.String(), want)
	}
}
