package theme

import "testing"

func TestSet(t *testing.T) {
	t.Cleanup(func() { Set("dark") })

	Set("light")
	if Current() != "light" {
		t.Fatalf("Current() = %q, want light", Current())
	}
	if Text != Light.Text {
		t.Error("Text not switched to the light palette")
	}

	Set("neon")
	if Current() != "dark" {
		t.Errorf("unknown scheme selected %q, want dark", Current())
	}
	if Primary != Dark.Primary {
		t.Error("Primary not switched back to the dark palette")
	}
}
