// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so it can be used by a headless server.
package netconfig

// Direction is the way a tank turns while rotating in place.
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirLeft || d == DirRight
}

// Sign returns +1 for clockwise (right) and -1 for counter-clockwise (left).
func (d Direction) Sign() float64 {
	if d == DirRight {
		return 1
	}
	return -1
}

// Message names used by the battle protocol. The necs router keys messages by
// type; these names are kept for logs and for servers that route by name.
const (
	MsgBattleEnter = "battle.enter"
	MsgBattleMove  = "battle.move"
	MsgEnter       = "enter"
	MsgIdle        = "idle"
	MsgMove        = "move"
	MsgRemove      = "remove"
)

// Tank kinds (skins) the server hands out. Unknown kinds are still accepted
// and rendered with a hashed palette color.
const (
	KindBlue   = "Blue"
	KindGreen  = "Green"
	KindRed    = "Red"
	KindYellow = "Yellow"
)

// Kinds lists the known tank kinds in palette order.
var Kinds = []string{KindBlue, KindGreen, KindRed, KindYellow}
