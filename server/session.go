package server

import (
	"encoding/gob"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/turf/model"
)

func NewGameServer(cfg Config) *GameServer {
	return &GameServer{
		Session:  NewSession(cfg),
		Upgrader: &websocket.Upgrader{},
	}
}

func (s *GameServer) Loop() {
	s.Session.Loop()
}

// HandleHttpCall upgrades the connection, reads the join message and
// hands the socket over to the session loop. It then blocks until the
// session signals game over for this player, so the deferred close
// stays in one place.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		// first message must be a join
		con.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, rd, err := con.NextReader()
		if err != nil {
			log.Warnf("HandleHttpCall no join message: %v", err)
			return
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(rd).Decode(cm); err != nil || cm.Join == nil {
			log.Warnf("HandleHttpCall bad join message: %v", err)
			return
		}
		con.SetReadDeadline(time.Time{})

		gameOver := make(chan struct{})
		select {
		case s.Session.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			Name:     cm.Join.Name,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warn("PlayerConnectRequests TIMEOUTED")
			return
		}

		// wait till game over
		<-gameOver
	}
}

// handleConnect runs inside the session loop goroutine.
func (gs *GameSession) handleConnect(pcr PlayerConnectRequest) {
	if gs.State == GS_OVER || len(gs.PlayerSessions) >= gs.Cfg.MaxPlayers {
		log.Warnf("rejecting %q: state %s, %d sessions", pcr.Name, gs.State.Name(), len(gs.PlayerSessions))
		close(pcr.GameOver)
		return
	}

	id := gs.nextId
	gs.nextId++
	name := pcr.Name
	if name == "" {
		name = fmt.Sprintf("player-%d", id)
	}
	p := NewPlayer(id, name)
	if !gs.spawnPlayer(p) {
		log.Warnf("no free spawn block for %q", name)
		close(pcr.GameOver)
		return
	}
	gs.Players[id] = p

	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             id,
		GameSession:    gs,
		Conn:           pcr.Con,
		GameOver:       pcr.GameOver,
		MessagesToSend: make(chan model.ServerMessage, gs.Cfg.SendBuffer),
	}
	gs.PlayerSessions[id] = ps

	pcr.Con.SetPingHandler(
		func(message string) error {
			err := pcr.Con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})

	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()

	ps.MessagesToSend <- ps.MakeGameSetupMessage()
	ps.State = PS_PLAY
	log.Infof("player %d (%s) joined at %d,%d", id, name, p.Pos.X, p.Pos.Y)

	if gs.State == GS_WAIT && len(gs.Players) >= gs.Cfg.MinPlayers {
		log.Infof("starting game with %d players", len(gs.Players))
		gs.State = GS_PLAY
	}
}

func (ps *PlayerSession) MakeGameSetupMessage() model.ServerMessage {
	gs := ps.GameSession
	grid := make([]model.CellState, len(gs.Grid.Cells))
	copy(grid, gs.Grid.Cells)
	return model.ServerMessage{
		Setup: &model.Setup{
			Cols:      gs.Grid.Cols,
			Rows:      gs.Grid.Rows,
			PlayerKey: ps.Id,
			TickRate:  gs.Cfg.TickRate,
			Grid:      grid,
		},
	}
}

// LoopChannelRead feeds client input into the single-slot mailbox.
// Anything newer overwrites anything the tick loop has not consumed
// yet; malformed or unexpected input is ignored, socket-level failure
// reports the player to the session.
func (ps *PlayerSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
loop:
	for {
		if ps.GameSession.Cfg.IdleTimeout > 0 {
			ps.Conn.SetReadDeadline(time.Now().Add(ps.GameSession.Cfg.IdleTimeout))
		}
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead err reading message from Conn %v", err)
			ps.reportError()
			break loop
		}
		dec := gob.NewDecoder(r)
		cm := &model.ClientMessage{}
		if err = dec.Decode(cm); err != nil {
			log.Warn("cant decode")
			ps.reportError()
			break loop
		}
		switch {
		case cm.Move != nil:
			if cm.Move.Direction.Valid() {
				ps.Mailbox.Put(cm.Move.Direction)
			} else {
				log.Warnf("ignoring invalid direction %d from player %d", cm.Move.Direction, ps.Id)
			}
		default:
			log.Warnf("ignoring unexpected message from player %d", ps.Id)
		}
	}
	log.Printf("LoopChannelRead ENDED")
}

func (ps *PlayerSession) reportError() {
	select {
	case ps.GameSession.Errors <- ps.Id:
	case <-ps.GameOver:
	}
}

// this function only consumes. no worries about full buffer stuck
func (ps *PlayerSession) LoopChannelWrite() {
	log.Printf("PlayerSession.LoopChannelWrite STARTED")
loop:
	for {
		select {
		case mes := <-ps.MessagesToSend:
			if err := ps.writeMessage(mes); err != nil {
				ps.reportError()
				break loop
			}
		case <-ps.GameOver:
			// flush whatever is still queued, then stop
			for {
				select {
				case mes := <-ps.MessagesToSend:
					if err := ps.writeMessage(mes); err != nil {
						break loop
					}
				default:
					break loop
				}
			}
		}
	}
	log.Printf("LoopChannelWrite ENDED")
}

func (ps *PlayerSession) writeMessage(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		log.Warnf("PlayerSession.LoopChannelWrite cant get writer %v", err)
		return err
	}
	if err = gob.NewEncoder(w).Encode(mes); err != nil {
		log.Warnf("PlayerSession.LoopChannelWrite cant encode %v", err)
		w.Close()
		return err
	}
	return w.Close()
}
