// Package main runs a hot-seat chess game in the terminal, plus a perft
// subcommand for checking the move generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/term"

	"chessrules/internal/cli"
	"chessrules/internal/engine"
	"chessrules/internal/service"
	clitransport "chessrules/internal/transport/cli"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "perft" {
		if err := runPerft(os.Args[2:]); err != nil {
			log.Fatalf("perft: %v", err)
		}
		return
	}

	var (
		theme   = flag.String("theme", "brown", "Board color theme (off|brown|green|gray)")
		history = flag.String("history", defaultHistoryPath(), "Command history file (empty disables)")
	)
	flag.Parse()

	svc := service.New(0)
	defer svc.Shutdown(time.Second)

	// Line editing only makes sense on a terminal; pipes get plain reads
	var view *cli.CLI
	if term.IsTerminal(int(os.Stdin.Fd())) {
		var err error
		view, err = cli.NewTerminal(*history, cli.ColorTheme(*theme))
		if err != nil {
			log.Fatalf("Failed to start terminal: %v", err)
		}
	} else {
		// Plain board for pipes unless a theme was asked for
		view = cli.New(os.Stdin, os.Stdout)
		if flagSet("theme") {
			if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
				log.Fatalf("Failed to start: %v", err)
			}
		}
	}
	defer view.Close()

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	if err := handler.Run(); err != nil {
		log.Fatalf("Input error: %v", err)
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chess_history")
}

// runPerft counts leaf positions from the initial setup
func runPerft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	depth := fs.Int("depth", 4, "Search depth in plies")
	divide := fs.Bool("divide", false, "Break the count down by root move")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *depth < 0 {
		return fmt.Errorf("invalid depth: %d", *depth)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := engine.New()
	start := time.Now()

	if *depth == 0 {
		fmt.Printf("perft(0) = %d\n", e.Perft(0))
		return nil
	}
	results, err := e.PerftDivide(ctx, *depth)
	if err != nil {
		return err
	}

	var total uint64
	for _, r := range results {
		if *divide {
			fmt.Printf("%s: %d\n", r.Move, r.Nodes)
		}
		total += r.Nodes
	}
	if *divide {
		fmt.Printf("\nMoves: %d\n", len(results))
	}
	fmt.Printf("perft(%d) = %d (%v)\n", *depth, total, time.Since(start).Round(time.Millisecond))
	return nil
}
