package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/odelab/internal/rk"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Form      string             `json:"form"`
	A         float64            `json:"a"`
	B         float64            `json:"b"`
	C         float64            `json:"c"`
	X0        float64            `json:"x0"`
	Y0        float64            `json:"y0"`
	Target    float64            `json:"target"`
	H         float64            `json:"h"`
	Orders    []string           `json:"orders"`
	Finals    map[string]float64 `json:"finals"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes one run directory: metadata.json plus trajectory.csv with an
// x column and one y column per order. All results must come from identical
// (h, initial, target) inputs so they share the x grid.
func (s *Store) Save(meta RunMetadata, results []*rk.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Orders = make([]string, 0, len(results))
	meta.Finals = make(map[string]float64, len(results))
	for _, r := range results {
		meta.Orders = append(meta.Orders, r.Order.String())
		meta.Finals[r.Order.String()] = r.Final.Y
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(results) == 0 || len(results[0].Points) == 0 {
		return runID, nil
	}

	header := []string{"x"}
	for _, r := range results {
		header = append(header, r.Order.String())
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	rows := len(results[0].Points)
	for i := 0; i < rows; i++ {
		row := []string{strconv.FormatFloat(results[0].Points[i].X, 'f', 6, 64)}
		for _, r := range results {
			if i < len(r.Points) {
				row = append(row, strconv.FormatFloat(r.Points[i].Y, 'f', 6, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Series is one named y column of a stored trajectory.
type Series struct {
	Name string
	Ys   []float64
}

func (s *Store) LoadTrajectory(runID string) ([]float64, []Series, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []Series{}, nil
	}

	header := records[0]
	series := make([]Series, 0, len(header)-1)
	for _, name := range header[1:] {
		series = append(series, Series{Name: name})
	}

	xs := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		xs = append(xs, x)

		for j := 1; j < len(record) && j-1 < len(series); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			series[j-1].Ys = append(series[j-1].Ys, val)
		}
	}

	return xs, series, nil
}
