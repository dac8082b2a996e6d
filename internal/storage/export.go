package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	ID     string               `json:"id"`
	Form   string               `json:"form"`
	Target float64              `json:"target"`
	H      float64              `json:"h"`
	Steps  int                  `json:"steps"`
	Xs     []float64            `json:"xs"`
	Series map[string][]float64 `json:"series"`
	Finals map[string]float64   `json:"finals"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, xs []float64, series []Series) error {
	data := ExportData{
		ID:     meta.ID,
		Form:   meta.Form,
		Target: meta.Target,
		H:      meta.H,
		Steps:  len(xs),
		Xs:     xs,
		Series: make(map[string][]float64, len(series)),
		Finals: meta.Finals,
	}
	for _, s := range series {
		data.Series[s.Name] = s.Ys
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(w io.Writer, xs []float64, series []Series) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"x"}
	for _, s := range series {
		header = append(header, s.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range xs {
		row := []string{strconv.FormatFloat(xs[i], 'f', 6, 64)}
		for _, s := range series {
			if i < len(s.Ys) {
				row = append(row, strconv.FormatFloat(s.Ys[i], 'f', 6, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}
