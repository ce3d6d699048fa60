package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("ocean"); got.Name != "ocean" {
		t.Fatalf("ByName(ocean) = %q", got.Name)
	}
	if got := ByName("nope"); got.Name != FlexokiDark.Name {
		t.Fatalf("unknown theme should fall back to flexoki-dark, got %q", got.Name)
	}
}

func TestProgressColor(t *testing.T) {
	th := FlexokiDark
	if th.ProgressColor(0.2) != th.Water {
		t.Fatal("low ratio should use Water")
	}
	if th.ProgressColor(0.6) != th.WaterBright {
		t.Fatal("mid ratio should use WaterBright")
	}
	if th.ProgressColor(1.4) != th.Accent {
		t.Fatal("met goal should use Accent")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) || names[0] != "flexoki-dark" {
		t.Fatalf("Names() = %v", names)
	}
}
