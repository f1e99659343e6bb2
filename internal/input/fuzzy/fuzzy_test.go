package fuzzy

import (
	"testing"

	"pgregory.net/rapid"
)

var names = []string{"delmarks", "display", "help", "marks", "nohlsearch", "quit", "registers", "sort", "tutor", "write"}

func TestRank(t *testing.T) {
	tests := []struct {
		query     string
		wantFirst string
		wantCount int
	}{
		{"reg", "registers", 1},
		{"noh", "nohlsearch", 1},
		{"mar", "marks", 2},
		{"DEL", "delmarks", 1},
		{"s", "sort", 6},
		{"zz", "", 0},
		{"", "delmarks", len(names)},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Rank(tt.query, names)
			if len(got) != tt.wantCount {
				t.Fatalf("Rank(%q) returned %d matches, want %d", tt.query, len(got), tt.wantCount)
			}
			if tt.wantCount > 0 && got[0].Text != tt.wantFirst {
				t.Errorf("Rank(%q) first = %q, want %q", tt.query, got[0].Text, tt.wantFirst)
			}
		})
	}
}

func TestRankPositions(t *testing.T) {
	got := Rank("dm", []string{"delmarks"})
	if len(got) != 1 {
		t.Fatalf("expected one match, got %d", len(got))
	}
	if p := got[0].Positions; len(p) != 2 || p[0] != 0 || p[1] != 3 {
		t.Errorf("positions = %v, want [0 3]", p)
	}
}

func TestRankPrefersConsecutive(t *testing.T) {
	got := Rank("ab", []string{"axxb", "abxx"})
	if got[0].Text != "abxx" {
		t.Errorf("first = %q, want abxx", got[0].Text)
	}
}

func TestBest(t *testing.T) {
	if got, ok := Best("tut", names); !ok || got != "tutor" {
		t.Errorf("Best(tut) = %q, %v", got, ok)
	}
	if _, ok := Best("xyz", names); ok {
		t.Error("Best(xyz) should not match")
	}
}

func TestRankProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cands := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,8}`)).Draw(t, "candidates")
		query := rapid.StringMatching(`[a-z]{0,3}`).Draw(t, "query")

		got := Rank(query, cands)
		for i, m := range got {
			if i > 0 && got[i-1].Score < m.Score {
				t.Fatalf("not sorted: %v", got)
			}
			if query != "" && len(m.Positions) != len(query) {
				t.Fatalf("%q matched %q at %v", query, m.Text, m.Positions)
			}
		}
		for _, c := range cands {
			if query == c {
				if _, ok := Best(query, cands); !ok {
					t.Fatalf("exact candidate %q not found", c)
				}
			}
		}
	})
}
