package easystats

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is the abstract shape the row extractor consumes: one header row
// plus ordered data rows of cell texts. Any adapter with this shape works;
// nothing downstream depends on HTML specifics.
type Table interface {
	Headers() []string
	Rows() [][]string
}

// CellTable is a plain in-memory Table, used for non-HTML adapters and in
// tests.
type CellTable struct {
	Head []string
	Body [][]string
}

func (t *CellTable) Headers() []string { return t.Head }
func (t *CellTable) Rows() [][]string  { return t.Body }

// ParseTables reads an HTML document and adapts every stat table in it to
// the Table shape. EasyStats marks its boxscore tables with id="stats";
// older exports omit the id, so when no table carries it we fall back to
// every table that has a header row. Returns the tables in document order.
func ParseTables(r io.Reader) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	sel := doc.Find("table#stats")
	if sel.Length() == 0 {
		sel = doc.Find("table").FilterFunction(func(i int, s *goquery.Selection) bool {
			return s.Find("th").Length() > 0
		})
	}

	var tables []Table
	sel.Each(func(i int, tbl *goquery.Selection) {
		tables = append(tables, adaptTable(tbl))
	})
	return tables, nil
}

func adaptTable(tbl *goquery.Selection) Table {
	out := &CellTable{}

	tbl.Find("th").Each(func(i int, th *goquery.Selection) {
		out.Head = append(out.Head, cleanText(th))
	})

	tbl.Find("tr").Each(func(i int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return // header row
		}
		var row []string
		tds.Each(func(j int, td *goquery.Selection) {
			row = append(row, cleanText(td))
		})
		out.Body = append(out.Body, row)
	})

	return out
}

func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
