package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUniqueColors(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{"hsl(0, 50%, 50%)"}},
		{1, []string{"hsl(0, 50%, 50%)"}},
		{-3, []string{"hsl(0, 50%, 50%)"}},
		{2, []string{"hsl(180, 50%, 50%)", "hsl(0, 50%, 50%)"}},
		{4, []string{
			"hsl(90, 50%, 50%)",
			"hsl(180, 50%, 50%)",
			"hsl(270, 50%, 50%)",
			"hsl(0, 50%, 50%)",
		}},
	}

	for _, tt := range tests {
		got := UniqueColors(tt.n)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("UniqueColors(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestUniqueColors_Count(t *testing.T) {
	got := UniqueColors(20)
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	if got[0] != "hsl(18, 50%, 50%)" {
		t.Errorf("first = %q, want %q", got[0], "hsl(18, 50%, 50%)")
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate color %q", c)
		}
		seen[c] = true
	}
}

func TestUniqueHexColors(t *testing.T) {
	got := UniqueHexColors(3)
	want := []string{"#40bf40", "#4040bf", "#bf4040"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UniqueHexColors(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestHue(t *testing.T) {
	if got := Hue(3, 7); got < 154.28 || got > 154.29 {
		t.Errorf("Hue(3, 7) = %v, want about 154.2857", got)
	}
	if got := Hue(1, 0); got != 0 {
		t.Errorf("Hue(1, 0) = %v, want 0", got)
	}
}
