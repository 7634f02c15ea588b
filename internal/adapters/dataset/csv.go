package dataset

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"
)

// ReadCSV loads a local dataset export into the same loosely-typed row shape
// the HTTP client returns, keyed by the header row. Header names pass through
// untouched; the app-layer alias registry does the normalization.
func ReadCSV(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]map[string]any, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		row := make(map[string]any, len(header))
		for i, v := range rec {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = v
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}
