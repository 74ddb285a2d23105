package core

import "fmt"

type PieceKind byte

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	NoKind: "none",
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

var kindLetters = [...]byte{
	NoKind: '.',
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

func (k PieceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Letter returns the uppercase piece letter, '.' for NoKind
func (k PieceKind) Letter() byte {
	if int(k) < len(kindLetters) {
		return kindLetters[k]
	}
	return '?'
}

// Piece is a small value; the zero Piece is an empty square.
type Piece struct {
	Kind     PieceKind
	Color    Color
	HasMoved bool
}

// NewPiece returns an unmoved piece
func NewPiece(kind PieceKind, color Color) Piece {
	return Piece{Kind: kind, Color: color}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Letter returns the board letter: uppercase for White, lowercase for Black, '.' when empty
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Color == ColorBlack && l >= 'A' && l <= 'Z' {
		return l + ('a' - 'A')
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color.Name(), p.Kind)
}
