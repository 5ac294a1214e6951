package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request joining a battle.
type JoinRequest struct {
	Version    string
	PlayerName string
	ClientID   string // stable per install, lets the server hand back the same tank
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// NetworkID is the uid of the tank this client controls.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ServerName string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}

// BattleEnter asks the server to place the local tank in the battle.
type BattleEnter struct{}
