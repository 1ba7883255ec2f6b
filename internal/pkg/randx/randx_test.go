package randx

import (
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestColorFromPalette(t *testing.T) {
	for i := 0; i < 100; i++ {
		if c := Color(); !slices.Contains(Palette, c) {
			t.Fatalf("Color() returned %q which is not in the palette", c)
		}
	}
}

func TestConnIDIsUUID(t *testing.T) {
	a, b := ConnID(), ConnID()

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("ConnID() returned invalid UUID %q: %v", a, err)
	}
	if a == b {
		t.Error("Expected distinct connection ids")
	}
}
