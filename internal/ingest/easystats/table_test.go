package easystats

import (
	"strings"
	"testing"

	"github.com/fortuna/statline/internal/roster"
	"github.com/fortuna/statline/internal/stats"
)

const sampleExport = `
<html><body>
<h1>EasyStats Export</h1>
<table id="stats">
  <tr><th>Player</th><th>FG</th><th>3PT</th><th>FT</th><th>OREB</th><th>DREB</th><th>AST</th><th>STL</th><th>BLK</th><th>TO</th><th>PTS</th></tr>
  <tr><td>#23 J. Smith</td><td>5-10</td><td>2-5</td><td>3-4</td><td>2</td><td>4</td><td>3</td><td>1</td><td>0</td><td>2</td><td>15</td></tr>
  <tr><td>#8 B. Jones</td><td>-</td><td>-</td><td>-</td><td>0</td><td>0</td><td>0</td><td>0</td><td>0</td><td>0</td><td>0</td></tr>
  <tr><td>Totals</td><td>5-10</td><td>2-5</td><td>3-4</td><td>2</td><td>4</td><td>3</td><td>1</td><td>0</td><td>2</td><td>15</td></tr>
</table>
</body></html>`

func TestParseTablesByID(t *testing.T) {
	tables, err := ParseTables(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	head := tables[0].Headers()
	if len(head) != 11 || head[1] != "FG" {
		t.Fatalf("unexpected headers: %v", head)
	}
	if len(tables[0].Rows()) != 3 {
		t.Fatalf("expected 3 data rows, got %d", len(tables[0].Rows()))
	}
}

func TestParseTablesFallbackWithoutID(t *testing.T) {
	html := strings.ReplaceAll(sampleExport, ` id="stats"`, "")
	tables, err := ParseTables(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected fallback to find 1 table, got %d", len(tables))
	}
}

func TestParseTablesNoTables(t *testing.T) {
	tables, err := ParseTables(strings.NewReader("<html><body><p>no stats</p></body></html>"))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}
	if len(tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(tables))
	}
}

func TestParsedTableExtractsEndToEnd(t *testing.T) {
	tables, err := ParseTables(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseTables: %v", err)
	}

	players := ExtractRows(tables[0], roster.NewResolver(nil))
	// J. Smith retained; B. Jones is DNP; totals row skipped.
	if len(players) != 1 {
		t.Fatalf("expected 1 retained player, got %d", len(players))
	}
	if players[0].Stats[stats.Points] != 15 || players[0].Stats[stats.Reb] != 6 {
		t.Fatalf("unexpected stats: %v", players[0].Stats)
	}
}
