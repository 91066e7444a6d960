package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/kinemech/linksim/internal/geom"
)

// Store persists simulation runs under a base directory, one subdirectory
// per run holding meta.json and trace.csv.
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
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	Samples    int       `json:"samples"`
	Resolution int       `json:"resolution"`
	Joints     []string  `json:"joints"`
}

// Save writes a run's metadata and per-joint position trace. joints fixes
// the CSV column order; every named joint must have len(times) points in
// trace.
func (s *Store) Save(name string, resolution int, joints []string, times []float64, trace map[string][]geom.Point) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		Samples:    len(times),
		Resolution: resolution,
		Joints:     joints,
	}
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "meta.json"), metaData, 0644); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	hdr := []string{"t"}
	for _, label := range joints {
		hdr = append(hdr, label+"_x", label+"_y")
	}
	if err := w.Write(hdr); err != nil {
		return "", err
	}
	for i, t := range times {
		row := []string{strconv.FormatFloat(t, 'g', -1, 64)}
		for _, label := range joints {
			path := trace[label]
			if i >= len(path) {
				return "", fmt.Errorf("storage: trace for joint %q has %d points, expected %d", label, len(path), len(times))
			}
			row = append(row,
				strconv.FormatFloat(path[i].X(), 'g', -1, 64),
				strconv.FormatFloat(path[i].Y(), 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Meta(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Meta reads one run's metadata.
func (s *Store) Meta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "meta.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// LoadTrace reads a run's trace back into per-joint paths.
func (s *Store) LoadTrace(runID string) ([]float64, map[string][]geom.Point, error) {
	meta, err := s.Meta(runID)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("storage: run %s has an empty trace", runID)
	}

	var times []float64
	trace := make(map[string][]geom.Point, len(meta.Joints))
	for _, row := range rows[1:] {
		if len(row) != 1+2*len(meta.Joints) {
			return nil, nil, fmt.Errorf("storage: run %s has a malformed trace row", runID)
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		for i, label := range meta.Joints {
			x, err := strconv.ParseFloat(row[1+2*i], 64)
			if err != nil {
				return nil, nil, err
			}
			y, err := strconv.ParseFloat(row[2+2*i], 64)
			if err != nil {
				return nil, nil, err
			}
			trace[label] = append(trace[label], geom.Pt(x, y))
		}
	}
	return times, trace, nil
}
