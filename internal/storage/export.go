package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

type ExportFrame struct {
	Index     int          `json:"index"`
	Time      float64      `json:"time"`
	Positions []cloth.Vec2 `json:"positions"`
}

type ExportData struct {
	RunMetadata
	Frames []ExportFrame `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one indented document.
func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		RunMetadata: meta,
		Frames:      make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{Index: f.Index, Time: f.Time, Positions: f.Positions}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
