package config

import (
	"testing"

	"github.com/automoto/tankarena/shared/netconfig"
)

func TestKindColor(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if got := KindColor(netconfig.KindRed); got != Tank.Palette[2] {
		t.Fatalf("Red = %v, want palette slot 2", got)
	}
	if KindColor("Camo") != KindColor("Camo") {
		t.Fatal("hashed kind color is not stable")
	}

	found := false
	for _, c := range Tank.Palette {
		if c == KindColor("Camo") {
			found = true
		}
	}
	if !found {
		t.Fatal("unknown kind mapped outside the palette")
	}

	Tank.Palette = nil
	if KindColor(netconfig.KindRed) != White {
		t.Fatal("empty palette should fall back to white")
	}
}
