package server

import (
	"fmt"

	"github.com/gorilla/websocket"
)

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_WAIT:
		return "GS_WAIT"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type DeathReason int

const (
	REASON_BOUNDARY DeathReason = iota
	REASON_SELF_TRAIL
	REASON_OPPONENT_TRAIL
	REASON_HEAD_ON
	REASON_DISCONNECT
)

func (r DeathReason) Name() string {
	switch r {
	case REASON_BOUNDARY:
		return "boundary"
	case REASON_SELF_TRAIL:
		return "self-trail"
	case REASON_OPPONENT_TRAIL:
		return "opponent-trail"
	case REASON_HEAD_ON:
		return "head-on"
	case REASON_DISCONNECT:
		return "disconnect"
	default:
		return fmt.Sprintf("n/a:%d", r)
	}
}

type PlayerConnectRequest struct {
	Con      *websocket.Conn
	Name     string
	GameOver chan struct{}
}
