package flags

import "testing"

func TestFlagString(t *testing.T) {
	tests := map[Flag]string{CF: "cf", PF: "pf", AF: "af", ZF: "zf", SF: "sf", OF: "of"}
	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("Flag(%d).String() = %q, want %q", f, got, want)
		}
	}
}

func TestAllEnumeratesSixFlagsOnce(t *testing.T) {
	if len(All) != 6 {
		t.Fatalf("len(All) = %d, want 6", len(All))
	}
	seen := make(map[Flag]bool)
	for _, f := range All {
		if seen[f] {
			t.Errorf("flag %v appears more than once in All", f)
		}
		seen[f] = true
	}
}
