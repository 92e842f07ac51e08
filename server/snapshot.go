package server

import (
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/turf/model"
)

// buildSnapshot assembles the per-tick state message. Grid sync is a
// diff against the previously broadcast cells; the full grid only ever
// travels in the Setup message.
func (gs *GameSession) buildSnapshot() *model.Snapshot {
	snap := &model.Snapshot{
		Tick:    gs.Tick,
		Players: make([]model.PlayerInfo, 0, len(gs.Players)),
	}
	ids := make([]int32, 0, len(gs.Players))
	for id := range gs.Players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		p := gs.Players[id]
		snap.Players = append(snap.Players, model.PlayerInfo{
			Id:      p.Id,
			Name:    p.Name,
			Pos:     p.Pos,
			Heading: p.Heading,
			Alive:   p.Alive,
			Score:   p.Score,
		})
	}

	for i, c := range gs.Grid.Cells {
		if c == gs.prevCells[i] {
			continue
		}
		gs.prevCells[i] = c
		snap.Cells = append(snap.Cells, model.CellDiff{
			At:    model.Vec{X: i % gs.Grid.Cols, Y: i / gs.Grid.Cols},
			State: c,
		})
	}
	return snap
}

func (gs *GameSession) broadcast(msg model.ServerMessage) {
	var stalled []int32
	for id, ps := range gs.PlayerSessions {
		select {
		case ps.MessagesToSend <- msg:
		default:
			log.Warnf("player %d send buffer full, dropping connection", id)
			stalled = append(stalled, id)
		}
	}
	for _, id := range stalled {
		gs.dropPlayer(id)
	}
}
