package config

import (
	"image/color"

	"github.com/automoto/tankarena/shared/netconfig"
	"github.com/zeebo/xxh3"
)

// KindColor returns the body color for a tank kind. Known kinds map to their
// own palette slot; anything else is hashed onto the palette so a given kind
// always draws the same color.
func KindColor(kind string) color.RGBA {
	if len(Tank.Palette) == 0 {
		return White
	}
	for i, k := range netconfig.Kinds {
		if k == kind && i < len(Tank.Palette) {
			return Tank.Palette[i]
		}
	}
	return Tank.Palette[xxh3.HashString(kind)%uint64(len(Tank.Palette))]
}
