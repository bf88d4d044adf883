package sheets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/ice-report-service/internal/domain"
	"github.com/couchcryptid/ice-report-service/internal/tabular"
)

// decodeCSV routes a delimited export through the tabular decoder.
func decodeCSV(text string) []domain.RawRow {
	return tabular.Decode(text)
}

// Google Visualization envelope types. The export arrives as a JS call:
//
//	/*O_o*/
//	google.visualization.Query.setResponse({"table":{"cols":[...],"rows":[...]}});
//
// Column labels become row keys; cell values stay text, so the lexical
// parsers see the same strings they would in a CSV export (date cells come
// through as "Date(YYYY,M,D)" literals).
type gvizEnvelope struct {
	Status string    `json:"status"`
	Table  gvizTable `json:"table"`
}

type gvizTable struct {
	Cols []gvizCol `json:"cols"`
	Rows []gvizRow `json:"rows"`
}

type gvizCol struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

type gvizRow struct {
	Cells []gvizCell `json:"c"`
}

type gvizCell struct {
	Value     any    `json:"v"`
	Formatted string `json:"f"`
}

// decodeGViz unwraps and decodes a Google Visualization JSON envelope.
func decodeGViz(text string) ([]domain.RawRow, error) {
	open := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if open < 0 || end <= open {
		return nil, fmt.Errorf("%w: no JSON object in visualization response", domain.ErrDecode)
	}

	var env gvizEnvelope
	if err := json.Unmarshal([]byte(text[open:end+1]), &env); err != nil {
		return nil, fmt.Errorf("%w: unmarshal visualization response: %v", domain.ErrDecode, err)
	}
	if env.Status != "" && env.Status != "ok" {
		return nil, fmt.Errorf("%w: visualization response status %q", domain.ErrDecode, env.Status)
	}
	if len(env.Table.Cols) == 0 {
		return nil, fmt.Errorf("%w: visualization response has no columns", domain.ErrDecode)
	}

	header := make([]string, len(env.Table.Cols))
	for i, col := range env.Table.Cols {
		name := strings.TrimSpace(col.Label)
		if name == "" {
			name = strings.TrimSpace(col.ID)
		}
		header[i] = name
	}

	rows := make([]domain.RawRow, 0, len(env.Table.Rows))
	for _, r := range env.Table.Rows {
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			if i < len(r.Cells) {
				row[name] = cellText(r.Cells[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellText flattens a cell to the raw text the lexical parsers expect,
// preferring the unformatted value over the display string.
func cellText(c gvizCell) string {
	switch v := c.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return c.Formatted
	default:
		return c.Formatted
	}
}
