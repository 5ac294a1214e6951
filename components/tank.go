package components

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// TankData is the identity and visibility of a networked tank.
type TankData struct {
	UID     esync.NetworkId
	Kind    string // skin, fixed at creation
	Visible bool   // false until the first enter/idle update
}

var Tank = donburi.NewComponentType[TankData]()
