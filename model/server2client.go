package model

// ServerMessage is the single gob envelope written to a client. Unused
// sections stay nil so the encoding stays small.
type ServerMessage struct {
	Setup    *Setup
	Snapshot *Snapshot
	Died     []PlayerDied
	Over     *GameOver
}

// Setup is sent once after a successful join, carrying the full grid.
// Later grid sync happens only through Snapshot diffs.
type Setup struct {
	Cols, Rows int
	PlayerKey  int32
	TickRate   int
	Grid       []CellState
}

type Snapshot struct {
	Tick    int
	Players []PlayerInfo
	Cells   []CellDiff
}

type PlayerInfo struct {
	Id      int32
	Name    string
	Pos     Vec
	Heading Direction
	Alive   bool
	Score   int
}

type CellDiff struct {
	At    Vec
	State CellState
}

type PlayerDied struct {
	Id     int32
	Reason string
}

// Winner is -1 when the game ended without a single winner.
type GameOver struct {
	Winner int32
	Scores map[int32]int
}
