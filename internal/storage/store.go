package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/emirelesg/ackersim/internal/sim"
	"github.com/emirelesg/ackersim/internal/vehicle"
)

// Store keeps recorded runs on disk, one directory per run with a
// metadata.json and the driven path as CSV.
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
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Timestamp  time.Time    `json:"timestamp"`
	Reference  string       `json:"reference"`
	Wheelbase  float64      `json:"wheelbase"`
	TrackWidth float64      `json:"track_width"`
	Dt         float64      `json:"dt"`
	Duration   float64      `json:"duration"`
	Samples    int          `json:"samples"`
	FinalPose  vehicle.Pose `json:"final_pose"`
}

// Save writes a run's metadata and path, returning the generated run id.
func (s *Store) Save(label string, geo vehicle.Geometry, ref vehicle.Reference, dt, duration float64, trace *sim.Trace) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Label:      label,
		Timestamp:  time.Now(),
		Reference:  ref.String(),
		Wheelbase:  geo.Wheelbase,
		TrackWidth: geo.TrackWidth,
		Dt:         dt,
		Duration:   duration,
		Samples:    trace.Len(),
		FinalPose:  trace.Final(),
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

	csvFile, err := os.Create(filepath.Join(runDir, "path.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	return runID, WritePathCSV(csvFile, trace)
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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

// LoadPath reads a run's path CSV back into a trace.
func (s *Store) LoadPath(runID string) (*sim.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "path.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := NewTraceFromRecords(records)
	return trace, nil
}

// NewTraceFromRecords parses CSV rows of (time,x,y,heading,steer,speed),
// skipping the header and any malformed row.
func NewTraceFromRecords(records [][]string) *sim.Trace {
	trace := sim.NewTrace(len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 6 {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for j := 0; j < 6; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		trace.Times = append(trace.Times, vals[0])
		trace.Poses = append(trace.Poses, vehicle.Pose{X: vals[1], Y: vals[2], Heading: vals[3]})
		trace.Steer = append(trace.Steer, vals[4])
		trace.Speed = append(trace.Speed, vals[5])
	}
	return trace
}
