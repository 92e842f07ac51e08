package server

import (
	"math/rand"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/turf/model"
)

func NewSession(cfg Config) *GameSession {
	return &GameSession{
		Cfg:                   cfg,
		State:                 GS_WAIT,
		Grid:                  NewGrid(cfg.Cols, cfg.Rows),
		Players:               make(map[int32]*Player),
		PlayerSessions:        make(map[int32]*PlayerSession),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		Errors:                make(chan int32),
		nextId:                1,
		prevCells:             make([]model.CellState, cfg.Cols*cfg.Rows),
		quit:                  make(chan struct{}),
	}
}

func (gs *GameSession) Stop() {
	close(gs.quit)
}

// Loop is the single authoritative mutation point. Connections only
// reach the session through PlayerConnectRequests, Errors and the
// per-player input mailboxes drained at tick boundaries.
func (gs *GameSession) Loop() {
	log.Info("GameSession.Loop start")
	ticker := time.NewTicker(gs.Cfg.TickPeriod())
	defer ticker.Stop()
loop:
	for {
		select {
		case <-gs.quit:
			break loop
		case pcr := <-gs.PlayerConnectRequests:
			gs.handleConnect(pcr)
		case errPlayer := <-gs.Errors:
			gs.dropPlayer(errPlayer)
		case <-ticker.C:
			if gs.State == GS_WAIT {
				gs.lobbyTick()
				continue
			}
			if gs.State != GS_PLAY {
				continue
			}
			start := time.Now()
			gs.advance()
			if took := time.Since(start); took > gs.Cfg.TickPeriod() {
				// an overrun means the simulation no longer fits its
				// budget, not a transient stall
				log.Fatalf("tick %d overran the %v budget (took %v)", gs.Tick, gs.Cfg.TickPeriod(), took)
			}
			if gs.State == GS_OVER {
				break loop
			}
		}
	}
	log.Info("GameSession.Loop end")
}

// lobbyTick keeps waiting clients in sync before the game starts:
// the simulation stands still, but later joiners' spawn blocks and
// the player list still go out every tick.
func (gs *GameSession) lobbyTick() {
	gs.broadcast(model.ServerMessage{Snapshot: gs.buildSnapshot()})
}

func (gs *GameSession) advance() {
	inputs := make(map[int32]model.Direction)
	for id, ps := range gs.PlayerSessions {
		if d, ok := ps.Mailbox.Take(); ok {
			inputs[id] = d
		}
	}
	gs.StepTick(inputs)

	msg := model.ServerMessage{Snapshot: gs.buildSnapshot(), Died: gs.died}
	gs.died = nil
	if gs.State == GS_OVER {
		msg.Over = gs.buildGameOver()
	}
	gs.broadcast(msg)
	if gs.State == GS_OVER {
		gs.finish()
	}
}

// StepTick advances the simulation by one tick: latest headings in,
// all moves computed against the pre-tick state, deaths resolved,
// survivors moved, closed laps claimed in id order, end condition
// checked. Broadcasting is the caller's business.
func (gs *GameSession) StepTick(inputs map[int32]model.Direction) {
	if gs.State != GS_PLAY {
		return
	}
	gs.Tick++

	for id, d := range inputs {
		p := gs.Players[id]
		if p == nil || !p.Alive || !d.Valid() {
			continue
		}
		if p.Heading.Valid() && d == p.Heading.Opposite() {
			// no instant reversal into the own neck
			continue
		}
		p.Heading = d
	}

	proposed := make(map[int32]model.Vec)
	for id, p := range gs.Players {
		if p.Alive {
			proposed[id] = p.Pos.Add(p.Heading.Delta())
		}
	}

	for _, d := range DetectCollisions(gs.Grid, gs.Players, proposed) {
		gs.killPlayer(d.Player, d.Reason)
	}

	ids := make([]int32, 0, len(proposed))
	for id := range proposed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var closers []int32
	for _, id := range ids {
		p := gs.Players[id]
		if !p.Alive {
			continue
		}
		next := proposed[id]
		if next == p.Pos {
			continue
		}
		p.Pos = next
		if p.OwnsTerritory(next) {
			if len(p.Trail) > 0 {
				closers = append(closers, id)
			}
			continue
		}
		p.appendTrail(next)
		gs.mustSetCell(next, model.Trail(id))
	}
	for _, id := range closers {
		gs.claimTerritory(gs.Players[id])
	}

	alive := gs.alivePlayers()
	if len(alive) <= 1 || (gs.Cfg.TickLimit > 0 && gs.Tick >= gs.Cfg.TickLimit) {
		gs.endGame(alive)
	}
}

func (gs *GameSession) killPlayer(id int32, reason DeathReason) {
	p := gs.Players[id]
	if p == nil || !p.Alive {
		return
	}
	log.Infof("player %d (%s) died: %s", id, p.Name, reason.Name())
	p.Alive = false
	p.Heading = model.DirNone

	for _, v := range p.Trail {
		if owner := gs.territoryOwnerAt(v); owner != nil && owner.Alive {
			gs.mustSetCell(v, model.Territory(owner.Id))
		} else {
			gs.mustSetCell(v, model.Empty())
		}
	}
	p.clearTrail()

	if gs.Cfg.ReleaseOnDeath {
		for v := range p.Territory {
			if c, err := gs.Grid.CellAt(v); err == nil && c.IsTerritoryOf(id) {
				gs.mustSetCell(v, model.Empty())
			}
		}
		p.Territory = make(map[model.Vec]struct{})
	}
	p.rescore()

	gs.died = append(gs.died, model.PlayerDied{Id: id, Reason: reason.Name()})
}

// dropPlayer handles a lost or misbehaving connection: the player dies
// with reason disconnect and the session is torn down.
func (gs *GameSession) dropPlayer(id int32) {
	gs.killPlayer(id, REASON_DISCONNECT)
	ps := gs.PlayerSessions[id]
	if ps == nil {
		return
	}
	ps.State = PS_ERR
	close(ps.GameOver)
	delete(gs.PlayerSessions, id)
}

func (gs *GameSession) alivePlayers() []int32 {
	alive := make([]int32, 0, len(gs.Players))
	for id, p := range gs.Players {
		if p.Alive {
			alive = append(alive, id)
		}
	}
	sort.Slice(alive, func(i, j int) bool { return alive[i] < alive[j] })
	return alive
}

func (gs *GameSession) endGame(alive []int32) {
	gs.State = GS_OVER
	gs.winner = -1
	if len(alive) == 1 {
		gs.winner = alive[0]
	} else if len(alive) > 1 {
		// tick limit hit: best score wins, ties stay undecided
		best, bestScore, tied := int32(-1), -1, false
		for _, id := range alive {
			s := gs.Players[id].Score
			if s > bestScore {
				best, bestScore, tied = id, s, false
			} else if s == bestScore {
				tied = true
			}
		}
		if !tied {
			gs.winner = best
		}
	}
	log.Infof("game over at tick %d, winner %d", gs.Tick, gs.winner)
}

func (gs *GameSession) buildGameOver() *model.GameOver {
	scores := make(map[int32]int, len(gs.Players))
	for id, p := range gs.Players {
		scores[id] = p.Score
	}
	return &model.GameOver{Winner: gs.winner, Scores: scores}
}

func (gs *GameSession) finish() {
	for id, ps := range gs.PlayerSessions {
		ps.State = PS_OVER
		close(ps.GameOver)
		delete(gs.PlayerSessions, id)
	}
}

func (gs *GameSession) mustSetCell(v model.Vec, s model.CellState) {
	if err := gs.Grid.SetCell(v, s); err != nil {
		log.Fatalf("grid write failed: %v", err)
	}
}

// spawnPlayer seeds a SpawnSize block of territory on free cells,
// trying random spots first and sweeping the board if the random
// probing fails.
func (gs *GameSession) spawnPlayer(p *Player) bool {
	s := gs.Cfg.SpawnSize
	if s > gs.Cfg.Cols || s > gs.Cfg.Rows {
		return false
	}
	for attempt := 0; attempt < 200; attempt++ {
		x := rand.Intn(gs.Cfg.Cols - s + 1)
		y := rand.Intn(gs.Cfg.Rows - s + 1)
		if gs.blockFree(x, y, s) {
			gs.seedBlock(p, x, y)
			return true
		}
	}
	for y := 0; y+s <= gs.Cfg.Rows; y++ {
		for x := 0; x+s <= gs.Cfg.Cols; x++ {
			if gs.blockFree(x, y, s) {
				gs.seedBlock(p, x, y)
				return true
			}
		}
	}
	return false
}

func (gs *GameSession) blockFree(x, y, s int) bool {
	for dy := 0; dy < s; dy++ {
		for dx := 0; dx < s; dx++ {
			c, err := gs.Grid.CellAt(model.Vec{X: x + dx, Y: y + dy})
			if err != nil || !c.IsEmpty() {
				return false
			}
		}
	}
	return true
}

func (gs *GameSession) seedBlock(p *Player, x, y int) {
	s := gs.Cfg.SpawnSize
	for dy := 0; dy < s; dy++ {
		for dx := 0; dx < s; dx++ {
			v := model.Vec{X: x + dx, Y: y + dy}
			p.claimCell(v)
			gs.mustSetCell(v, model.Territory(p.Id))
		}
	}
	p.Pos = model.Vec{X: x + s/2, Y: y + s/2}
	p.rescore()
}
