package easystats

import (
	"testing"

	"github.com/fortuna/statline/internal/stats"
)

func TestMapHeaderVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want stats.Key
	}{
		{"PTS", stats.Points},
		{"Points", stats.Points},
		{"AST", stats.Assists},
		{"Asst", stats.Assists},
		{"Assists", stats.Assists},
		{"OREB", stats.OffReb},
		{"Off Reb", stats.OffReb},
		{"DREB", stats.DefReb},
		{"REB", stats.Reb},
		{"TRB", stats.Reb},
		{"TO", stats.Turnovers},
		{"T/O", stats.Turnovers},
		{"TOV", stats.Turnovers},
		{"PF", stats.Fouls},
		{"Fouls", stats.Fouls},
		{"+/-", stats.PlusMinus},
		{"STL", stats.Steals},
		{"BLK", stats.Blocks},
		{"FGM", stats.FGM},
		{"FGA", stats.FGA},
		{"3PM", stats.FG3M},
		{"3PA", stats.FG3A},
	}
	for _, tt := range tests {
		col, ok := MapHeader(tt.raw)
		if !ok {
			t.Errorf("MapHeader(%q): unmapped", tt.raw)
			continue
		}
		if col.Key != tt.want {
			t.Errorf("MapHeader(%q) = %q, want %q", tt.raw, col.Key, tt.want)
		}
	}
}

func TestMapHeaderPairColumns(t *testing.T) {
	tests := []struct {
		raw       string
		made, att stats.Key
	}{
		{"FG", stats.FGM, stats.FGA},
		{"3PT", stats.FG3M, stats.FG3A},
		{"3-PT", stats.FG3M, stats.FG3A},
		{"3 PT", stats.FG3M, stats.FG3A},
		{"FT", stats.FTM, stats.FTA},
		{"FGM-FGA", stats.FGM, stats.FGA},
	}
	for _, tt := range tests {
		col, ok := MapHeader(tt.raw)
		if !ok || !col.IsPair() {
			t.Errorf("MapHeader(%q): expected pair column, got %+v ok=%v", tt.raw, col, ok)
			continue
		}
		if col.Made != tt.made || col.Att != tt.att {
			t.Errorf("MapHeader(%q) = (%q, %q), want (%q, %q)",
				tt.raw, col.Made, col.Att, tt.made, tt.att)
		}
	}
}

func TestMapHeaderIgnoresSourcePercentages(t *testing.T) {
	for _, raw := range []string{"FG%", "3P%", "3PT%", "FT%", "fg %"} {
		col, ok := MapHeader(raw)
		if !ok {
			t.Errorf("MapHeader(%q): percentage headers must be recognized", raw)
			continue
		}
		if !col.IgnorePct {
			t.Errorf("MapHeader(%q): expected ignored percentage column, got %+v", raw, col)
		}
	}
}

func TestMapHeaderUnknownLabels(t *testing.T) {
	for _, raw := range []string{"Player", "MIN", "", "EFF"} {
		if _, ok := MapHeader(raw); ok {
			t.Errorf("MapHeader(%q): expected unmapped", raw)
		}
	}
}

func TestMapHeaderIsStable(t *testing.T) {
	a, _ := MapHeader("3-Pt")
	b, _ := MapHeader("3-Pt")
	if a != b {
		t.Fatalf("same label mapped differently: %+v vs %+v", a, b)
	}
}
