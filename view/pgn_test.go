package view

import "testing"

func TestRequesterPlyCount(t *testing.T) {
	cases := []struct {
		name  string
		pgn   string
		color string
		want  int
		ok    bool
	}{
		{"even plies white", "1. e4 e5 2. Nf3 Nc6 *", "white", 2, true},
		{"even plies black", "1. e4 e5 2. Nf3 Nc6 *", "black", 2, true},
		{"odd plies white", "1. e4 e5 2. Nf3 *", "white", 2, true},
		{"odd plies black", "1. e4 e5 2. Nf3 *", "black", 1, true},
		{"with headers", "[Event \"Casual\"]\n[Result \"1-0\"]\n\n1. e4 e5 1-0", "white", 1, true},
		{"unparseable", "not a pgn at all %%", "white", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := requesterPlyCount(tc.pgn, tc.color)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("requesterPlyCount(%q, %s) = (%d,%v), want (%d,%v)",
					tc.pgn, tc.color, got, ok, tc.want, tc.ok)
			}
		})
	}
}
