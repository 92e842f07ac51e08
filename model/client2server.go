package model

// ClientMessage is the single gob envelope read from a client. Exactly
// one field is expected to be set per message.
type ClientMessage struct {
	Join *JoinRequest
	Move *MoveRequest
}

type JoinRequest struct {
	Name string
}

type MoveRequest struct {
	Direction Direction
}
