// Package store persists tracking runs on disk, one directory per run
// with a metadata file and the full step series as CSV.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/tracking"
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
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Kp         float64            `json:"kp"`
	KTheta     float64            `json:"ktheta"`
	Integrator string             `json:"integrator"`
	Plan       string             `json:"plan"`
	Completed  bool               `json:"completed"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Series holds the per-step records of a stored run.
type Series struct {
	Times    []float64
	Poses    []rover.Pose
	Commands []rover.Command
	Errors   []rover.TrackingError
}

var seriesHeader = []string{"time", "x", "y", "theta", "v", "omega", "e_x", "e_y", "e_theta"}

func (s *Store) Save(name string, dt, kp, ktheta float64, integrator, planName string, result *tracking.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		Dt:         dt,
		Kp:         kp,
		KTheta:     ktheta,
		Integrator: integrator,
		Plan:       planName,
		Completed:  result.Completed,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return "", err
	}

	for i := range result.Times {
		p := result.Poses[i]
		c := result.Commands[i]
		e := result.Errors[i]
		row := []string{
			num(result.Times[i]),
			num(p.X), num(p.Y), num(p.Theta),
			num(c.V), num(c.Omega),
			num(e.X), num(e.Y), num(e.Heading),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(seriesHeader) {
			continue
		}

		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		series.Times = append(series.Times, vals[0])
		series.Poses = append(series.Poses, rover.Pose{X: vals[1], Y: vals[2], Theta: vals[3]})
		series.Commands = append(series.Commands, rover.Command{V: vals[4], Omega: vals[5]})
		series.Errors = append(series.Errors, rover.TrackingError{X: vals[6], Y: vals[7], Heading: vals[8]})
	}

	return series, nil
}
