package entity

// Snapshot is a detached copy of a board, safe to share and serialize.
type Snapshot struct {
	P1          *Player `json:"p1"`
	P2          *Player `json:"p2"`
	GameStarted bool    `json:"gameStarted"`
	Turn        int     `json:"turn"`
	BoardState  Grid    `json:"boardState"`
	Winner      int     `json:"winner"`
	IsDraw      bool    `json:"isDraw"`
}

func (that *Board) Snapshot() Snapshot {
	return Snapshot{
		P1:          copyPlayer(that.p1),
		P2:          copyPlayer(that.p2),
		GameStarted: that.started,
		Turn:        that.turn,
		BoardState:  that.grid,
		Winner:      that.winner,
		IsDraw:      that.draw,
	}
}

func copyPlayer(player *Player) *Player {
	if player == nil {
		return nil
	}

	clone := *player
	return &clone
}
