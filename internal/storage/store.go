package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	RestLength float64            `json:"rest_length"`
	Pinned     []int              `json:"pinned"`
	Tiers      string             `json:"tiers"`
	Iterations int                `json:"iterations"`
	Dt         float64            `json:"dt"`
	Frames     int                `json:"frames"`
	Wind       cloth.Vec2         `json:"wind"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewMetadata describes a run of solver s on g.
func NewMetadata(name string, g *cloth.Grid, s cloth.Solver, dt float64) RunMetadata {
	var pinned []int
	for i, p := range g.Particles() {
		if p.Pinned {
			pinned = append(pinned, i)
		}
	}
	return RunMetadata{
		Name:       name,
		Width:      g.Width(),
		Height:     g.Height(),
		RestLength: g.RestLength(),
		Pinned:     pinned,
		Tiers:      s.Topology.Tiers.String(),
		Iterations: s.Iterations,
		Dt:         dt,
		Wind:       s.Wind,
	}
}

// Save writes metadata.json and frames.csv into a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.FramesRun
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, result.Frames); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteFramesCSV writes one row per frame: frame, time, then x,y per particle.
func WriteFramesCSV(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)

	if len(frames) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"frame", "time"}
	for i := range frames[0].Positions {
		header = append(header, fmt.Sprintf("p%dx", i), fmt.Sprintf("p%dy", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := make([]string, 0, 2+2*len(f.Positions))
		row = append(row, strconv.Itoa(f.Index), strconv.FormatFloat(f.Time, 'f', 6, 64))
		for _, p := range f.Positions {
			row = append(row, strconv.FormatFloat(p.X, 'f', 6, 64), strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads back the frames recorded by Save.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
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

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < 2 || len(record)%2 != 0 {
			return nil, fmt.Errorf("storage: %s line %d: malformed record", framesFile, line+2)
		}

		index, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", framesFile, line+2, err)
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", framesFile, line+2, err)
		}

		positions := make([]cloth.Vec2, 0, (len(record)-2)/2)
		for j := 2; j+1 < len(record); j += 2 {
			x, errX := strconv.ParseFloat(record[j], 64)
			y, errY := strconv.ParseFloat(record[j+1], 64)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("storage: %s line %d: bad coordinate", framesFile, line+2)
			}
			positions = append(positions, cloth.Vec2{X: x, Y: y})
		}

		frames = append(frames, sim.Frame{Index: index, Time: t, Positions: positions})
	}

	return frames, nil
}
