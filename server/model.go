package server

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/zucenko/turf/model"
)

type GameServer struct {
	Session  *GameSession
	Upgrader *websocket.Upgrader
}

type GameSessionState int

const (
	GS_WAIT GameSessionState = iota
	GS_PLAY
	GS_OVER
)

// GameSession owns the grid and all players. Only its Loop goroutine
// mutates them; connections talk to it through channels and per-player
// input mailboxes.
type GameSession struct {
	Cfg   Config
	State GameSessionState

	Tick    int
	Grid    *Grid
	Players map[int32]*Player

	PlayerSessions        map[int32]*PlayerSession
	PlayerConnectRequests chan PlayerConnectRequest
	Errors                chan int32

	nextId    int32
	winner    int32
	died      []model.PlayerDied
	prevCells []model.CellState
	quit      chan struct{}
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	Mailbox        InputMailbox
	MessagesToSend chan model.ServerMessage
}

// InputMailbox is the single-slot latest-direction buffer between a
// connection's read goroutine and the tick loop. Newer input
// overwrites older input; Take drains the slot.
type InputMailbox struct {
	mu  sync.Mutex
	dir model.Direction
	set bool
}

func (m *InputMailbox) Put(d model.Direction) {
	m.mu.Lock()
	m.dir = d
	m.set = true
	m.mu.Unlock()
}

func (m *InputMailbox) Take() (model.Direction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return model.DirNone, false
	}
	m.set = false
	return m.dir, true
}
