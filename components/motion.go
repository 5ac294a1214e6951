package components

import (
	"github.com/automoto/tankarena/motion"
	"github.com/yohamta/donburi"
)

var Motion = donburi.NewComponentType[motion.Machine]()
