package engine

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"chessrules/internal/core"
)

// DivideResult is the node count below one root move
type DivideResult struct {
	Move  core.Move
	Nodes uint64
}

// Perft counts the leaf nodes of the legal move tree to depth plies
func (e *Engine) Perft(depth int) uint64 {
	n, _ := e.perft(context.Background(), depth)
	return n
}

func (e *Engine) perft(ctx context.Context, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := e.AllLegalMoves()
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var nodes uint64
	for _, m := range moves {
		child := e.Clone()
		child.advance(m)
		n, err := child.perft(ctx, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// PerftDivide counts nodes below each root move, searching the root moves in
// parallel on independent copies of the board. Results are ordered by origin
// then destination square.
func (e *Engine) PerftDivide(ctx context.Context, depth int) ([]DivideResult, error) {
	if depth < 1 {
		return nil, nil
	}
	moves := e.AllLegalMoves()
	results := make([]DivideResult, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range moves {
		i, m := i, m
		child := e.Clone()
		g.Go(func() error {
			child.advance(m)
			n, err := child.perft(ctx, depth-1)
			if err != nil {
				return err
			}
			results[i] = DivideResult{Move: m, Nodes: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Move, results[j].Move
		if a.From != b.From {
			return a.From.Row < b.From.Row || (a.From.Row == b.From.Row && a.From.Col < b.From.Col)
		}
		return a.To.Row < b.To.Row || (a.To.Row == b.To.Row && a.To.Col < b.To.Col)
	})
	return results, nil
}
