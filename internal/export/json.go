package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sadopc/timebill/internal/atomicfile"
	"github.com/sadopc/timebill/internal/timebill"
)

type jsonExport struct {
	Kind       string    `json:"kind"`
	Categories []string  `json:"categories"`
	Count      int       `json:"count"`
	Rows       []jsonRow `json:"rows"`
}

type jsonRow struct {
	Date   string                 `json:"date"`
	Total  json.Number            `json:"total"`
	Values map[string]json.Number `json:"values"`
}

// ToJSON writes t with its kind label as indented JSON to path.
func ToJSON(t timebill.Table, kind, path string) error {
	export := jsonExport{
		Kind:       kind,
		Categories: t.Categories,
		Count:      len(t.Rows),
	}

	for _, r := range t.Rows {
		row := jsonRow{
			Date:   timebill.FormatDay(r.Date),
			Total:  json.Number(formatValue(r.Total)),
			Values: make(map[string]json.Number, len(t.Categories)),
		}
		for i, c := range t.Categories {
			if i < len(r.Values) {
				row.Values[c] = json.Number(formatValue(r.Values[i]))
			}
		}
		export.Rows = append(export.Rows, row)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	err = atomicfile.Write(path, func(w io.Writer) error {
		_, err := w.Write(append(data, '\n'))
		return err
	})
	if err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
