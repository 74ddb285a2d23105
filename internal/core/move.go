package core

// Move is produced by the engine's generator and consumed only by applying it.
type Move struct {
	From        Square `json:"from"`
	To          Square `json:"to"`
	IsEnPassant bool   `json:"isEnPassant,omitempty"`
	IsCastling  bool   `json:"isCastling,omitempty"`
	IsPromotion bool   `json:"isPromotion,omitempty"`
}

// String labels the move by its squares, e.g. "e2-e4"
func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}
