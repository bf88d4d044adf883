// Package tabular decodes comma-delimited, double-quote-quoted text into raw
// header-keyed rows. It is a character-level decoder rather than encoding/csv
// because spreadsheet exports strip differently: carriage returns are dropped
// everywhere, including inside quoted cells, and blank rows (common at the
// bottom of a live sheet) must disappear. The decoder never interprets types;
// output is always text.
package tabular

import (
	"strings"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// Decode splits raw delimited text into rows keyed by the header line.
// The first row is the header; its cells are trimmed and used verbatim as
// keys. Quoted cells may contain commas and newlines, a doubled quote inside
// a quoted cell is a literal quote, and rows whose cells are all blank after
// trimming are dropped. Rows shorter than the header are padded with empty
// cells; cells beyond the header width are ignored.
func Decode(text string) []domain.RawRow {
	grid := splitCells(text)
	if len(grid) == 0 {
		return nil
	}

	header := make([]string, len(grid[0]))
	for i, cell := range grid[0] {
		header[i] = strings.TrimSpace(cell)
	}

	var rows []domain.RawRow
	for _, cells := range grid[1:] {
		if blankCells(cells) {
			continue
		}
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// splitCells runs the character-level scan: "\n" terminates a record outside
// quotes, "\r" is ignored everywhere, "" escapes a quote inside quotes.
// Trailing all-blank records are trimmed off so a sheet's empty tail rows
// don't survive as data.
func splitCells(text string) [][]string {
	var (
		grid     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			switch {
			case ch == '"' && i+1 < len(runes) && runes[i+1] == '"':
				cell.WriteRune('"')
				i++
			case ch == '"':
				inQuotes = false
			case ch == '\r':
				// dropped even inside quotes
			default:
				cell.WriteRune(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n':
			row = append(row, cell.String())
			cell.Reset()
			grid = append(grid, row)
			row = nil
		case '\r':
			// dropped
		default:
			cell.WriteRune(ch)
		}
	}
	row = append(row, cell.String())
	grid = append(grid, row)

	for len(grid) > 0 && blankCells(grid[len(grid)-1]) {
		grid = grid[:len(grid)-1]
	}
	return grid
}

func blankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
