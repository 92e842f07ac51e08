package server

import "time"

type Config struct {
	Cols, Rows int
	TickRate   int // simulation ticks per second
	MinPlayers int // session starts once this many joined
	MaxPlayers int
	TickLimit  int // 0 means no limit
	SpawnSize  int // side of the seeded territory block

	IdleTimeout time.Duration // no client input for this long -> disconnect
	SendBuffer  int           // per-connection outgoing message buffer

	// ReleaseOnDeath reverts a dead player's territory to empty cells.
	ReleaseOnDeath bool
}

func DefaultConfig() Config {
	return Config{
		Cols:           60,
		Rows:           40,
		TickRate:       20,
		MinPlayers:     2,
		MaxPlayers:     6,
		TickLimit:      0,
		SpawnSize:      2,
		IdleTimeout:    60 * time.Second,
		SendBuffer:     32,
		ReleaseOnDeath: true,
	}
}

func (c Config) TickPeriod() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
