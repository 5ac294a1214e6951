package tags

import "github.com/yohamta/donburi"

var (
	Tank      = donburi.NewTag().SetName("Tank")
	LocalTank = donburi.NewTag().SetName("LocalTank")
	Marker    = donburi.NewTag().SetName("Marker")
)
