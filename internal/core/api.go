package core

// Request types

type MoveRequest struct {
	From *Square `json:"from" validate:"required"`
	To   *Square `json:"to" validate:"required"`
}

type UndoRequest struct {
	Count int `json:"count" validate:"required,min=1,max=300"` // Max based on longest games in history (272)
}

// Response types

type GameResponse struct {
	GameID    string           `json:"gameId"`
	Revision  int              `json:"revision"`
	Turn      string           `json:"turn"`  // "w" or "b"
	State     string           `json:"state"` // "ongoing", "check", "white wins", etc
	Status    string           `json:"status"`
	Check     bool             `json:"check"`
	Checkmate bool             `json:"checkmate"`
	Stalemate bool             `json:"stalemate"`
	Board     [8][8]*PieceInfo `json:"board"` // null for empty squares
	EnPassant *Square          `json:"enPassant,omitempty"`
	Moves     []MoveInfo       `json:"moves"`
	LastMove  *MoveInfo        `json:"lastMove,omitempty"`
}

type PieceInfo struct {
	Kind     string `json:"kind"`
	Color    string `json:"color"`
	HasMoved bool   `json:"hasMoved"`
}

type MoveInfo struct {
	From        Square `json:"from"`
	To          Square `json:"to"`
	Label       string `json:"label"`
	Piece       string `json:"piece"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Captured    string `json:"captured,omitempty"`
	IsEnPassant bool   `json:"isEnPassant,omitempty"`
	IsCastling  bool   `json:"isCastling,omitempty"`
	IsPromotion bool   `json:"isPromotion,omitempty"`
}

type LegalMovesResponse struct {
	From  Square `json:"from"`
	Moves []Move `json:"moves"`
}

type BoardResponse struct {
	Turn  string `json:"turn"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrGameOver          = "GAME_OVER"
	ErrNothingToUndo     = "NOTHING_TO_UNDO"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
