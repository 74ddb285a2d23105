package engine

import (
	"context"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chessrules/internal/core"
)

const (
	startFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	maxFastDepth = 3
)

var kiwipeteRows = []string{
	"r...k..r",
	"p.ppqpb.",
	"bn..pnp.",
	"...PN...",
	".p..P...",
	"..N..Q.p",
	"PPPBBPPP",
	"R...K..R",
}

func TestPerftStartPosition(t *testing.T) {
	want := []uint64{1, 20, 400, 8902, 197281}
	for depth, nodes := range want {
		if depth > maxFastDepth && testing.Short() {
			t.Skipf("skipping depth %d in short mode", depth)
		}
		if got := New().Perft(depth); got != nodes {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	want := []uint64{1, 48, 2039, 97862}
	for depth, nodes := range want {
		if depth > 2 && testing.Short() {
			t.Skipf("skipping depth %d in short mode", depth)
		}
		e := FromBoard(diagram(t, core.ColorWhite, kiwipeteRows...))
		if got := e.Perft(depth); got != nodes {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, nodes)
		}
	}
}

// dtPerft counts with dragontoothmg as an independent move generator
func dtPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dtPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// dtSquare maps a dragontoothmg square index (a1 = 0) onto the grid
func dtSquare(idx uint8) core.Square {
	return core.Sq(7-int(idx/8), int(idx%8))
}

func TestPerftDivideMatchesDragontooth(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		engine func(t *testing.T) *Engine
		depth  int
	}{
		{
			name:   "start",
			fen:    startFEN,
			engine: func(t *testing.T) *Engine { return New() },
			depth:  3,
		},
		{
			name: "kiwipete",
			fen:  kiwipeteFEN,
			engine: func(t *testing.T) *Engine {
				return FromBoard(diagram(t, core.ColorWhite, kiwipeteRows...))
			},
			depth: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ref := dragontoothmg.ParseFen(tt.fen)
			want := make(map[[2]core.Square]uint64)
			for _, m := range ref.GenerateLegalMoves() {
				unapply := ref.Apply(m)
				want[[2]core.Square{dtSquare(m.From()), dtSquare(m.To())}] = dtPerft(&ref, tt.depth-1)
				unapply()
			}

			got, err := tt.engine(t).PerftDivide(context.Background(), tt.depth)
			if err != nil {
				t.Fatalf("PerftDivide: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("root moves = %d, want %d", len(got), len(want))
			}
			for _, r := range got {
				key := [2]core.Square{r.Move.From, r.Move.To}
				n, ok := want[key]
				if !ok {
					t.Errorf("%v not generated by reference", r.Move)
					continue
				}
				if r.Nodes != n {
					t.Errorf("%v: nodes = %d, want %d", r.Move, r.Nodes, n)
				}
			}
		})
	}
}

func TestPerftDivideCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().PerftDivide(ctx, 4); err == nil {
		t.Fatalf("cancelled divide returned no error")
	}
}

func TestPerftDivideOrdered(t *testing.T) {
	res, err := New().PerftDivide(context.Background(), 1)
	if err != nil {
		t.Fatalf("PerftDivide: %v", err)
	}
	if len(res) != 20 {
		t.Fatalf("root moves = %d, want 20", len(res))
	}
	for i := 1; i < len(res); i++ {
		a, b := res[i-1].Move, res[i].Move
		if a.From.Row > b.From.Row || (a.From == b.From && a.To.Row > b.To.Row) {
			t.Fatalf("results out of order at %d: %v before %v", i, a, b)
		}
	}
	// pawns on row 6 sort ahead of the knights on row 7
	if res[0].Move.From.Row != 6 {
		t.Fatalf("first move from row %d, want pawn row 6", res[0].Move.From.Row)
	}
}
