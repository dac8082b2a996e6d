package storage_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
	"github.com/san-kum/odelab/internal/storage"
)

func solveAll(t *testing.T) []*rk.Result {
	t.Helper()
	eq := ode.NewFirstOrderLinear(2, 1, 3)
	results, err := rk.CompareAll(eq, ode.Point{X: 0, Y: 1}, 0.25, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	return results
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	results := solveAll(t)
	meta := storage.RunMetadata{
		Form: "linear", A: 2, B: 1, C: 3,
		X0: 0, Y0: 1, Target: 2.0, H: 0.25,
	}

	runID, err := st.Save(meta, results)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("run id %q lacks run_ prefix", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != runID || loaded.Form != "linear" || loaded.H != 0.25 {
		t.Errorf("loaded metadata mismatch: %+v", loaded)
	}
	if len(loaded.Orders) != 4 {
		t.Fatalf("got %d orders, want 4", len(loaded.Orders))
	}
	for _, r := range results {
		got, ok := loaded.Finals[r.Order.String()]
		if !ok || got != r.Final.Y {
			t.Errorf("%v final %v, want %v", r.Order, got, r.Final.Y)
		}
	}
}

func TestLoadTrajectory(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	results := solveAll(t)
	runID, err := st.Save(storage.RunMetadata{Form: "linear", H: 0.25, Target: 2.0}, results)
	if err != nil {
		t.Fatal(err)
	}

	xs, series, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 8 {
		t.Fatalf("got %d samples, want 8", len(xs))
	}
	if len(series) != 4 {
		t.Fatalf("got %d series, want 4", len(series))
	}
	for i, s := range series {
		if s.Name != rk.Orders[i].String() {
			t.Errorf("series %d named %q, want %q", i, s.Name, rk.Orders[i])
		}
		if len(s.Ys) != 8 {
			t.Errorf("series %q has %d samples, want 8", s.Name, len(s.Ys))
		}
	}
}

func TestList(t *testing.T) {
	st := storage.New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("empty store listed %d runs", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(storage.RunMetadata{Form: "separable"}, solveAll(t)); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Form != "separable" {
		t.Errorf("list = %+v, want one separable run", runs)
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := storage.New(t.TempDir())
	if _, err := st.Load("run_0"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &storage.RunMetadata{
		ID: "run_1", Form: "linear", Target: 2.0, H: 0.25,
		Finals: map[string]float64{"rk4": 2.264241},
	}
	xs := []float64{0.25, 0.5}
	series := []storage.Series{{Name: "rk4", Ys: []float64{1.1, 1.2}}}

	var buf bytes.Buffer
	if err := storage.ExportJSON(&buf, meta, xs, series); err != nil {
		t.Fatal(err)
	}

	var data storage.ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.ID != "run_1" || data.Steps != 2 {
		t.Errorf("decoded %+v", data)
	}
	if len(data.Series["rk4"]) != 2 {
		t.Errorf("series rk4 = %v, want 2 samples", data.Series["rk4"])
	}
}

func TestExportCSV(t *testing.T) {
	xs := []float64{0.25, 0.5}
	series := []storage.Series{{Name: "rk1", Ys: []float64{1.1, 1.2}}}

	var buf bytes.Buffer
	if err := storage.ExportCSV(&buf, xs, series); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if lines[0] != "x,rk1" {
		t.Errorf("header = %q, want \"x,rk1\"", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0.250000,1.100000") {
		t.Errorf("row = %q", lines[1])
	}
}
