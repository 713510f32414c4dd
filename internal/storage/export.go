package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/emirelesg/ackersim/internal/sim"
)

type ExportData struct {
	ID        string       `json:"id"`
	Reference string       `json:"reference"`
	Dt        float64      `json:"dt"`
	Duration  float64      `json:"duration"`
	Samples   int          `json:"samples"`
	Times     []float64    `json:"times"`
	X         []float64    `json:"x"`
	Y         []float64    `json:"y"`
	Heading   []float64    `json:"heading"`
	Steer     []float64    `json:"steer"`
	Speed     []float64    `json:"speed"`
}

// ExportJSON writes a run to w as indented JSON with one array per channel.
func ExportJSON(w io.Writer, meta *RunMetadata, trace *sim.Trace) error {
	n := trace.Len()
	data := ExportData{
		ID:        meta.ID,
		Reference: meta.Reference,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Samples:   n,
		Times:     trace.Times,
		X:         make([]float64, n),
		Y:         make([]float64, n),
		Heading:   make([]float64, n),
		Steer:     trace.Steer,
		Speed:     trace.Speed,
	}

	for i, p := range trace.Poses {
		data.X[i] = p.X
		data.Y[i] = p.Y
		data.Heading[i] = p.Heading
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout is ExportJSON to standard output.
func ExportJSONStdout(meta *RunMetadata, trace *sim.Trace) error {
	return ExportJSON(os.Stdout, meta, trace)
}

// WritePathCSV writes the trace as (time,x,y,heading,steer,speed) rows with
// a header.
func WritePathCSV(w io.Writer, trace *sim.Trace) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "x", "y", "heading", "steer", "speed"}); err != nil {
		return err
	}

	for i := range trace.Times {
		row := []string{
			formatFloat(trace.Times[i]),
			formatFloat(trace.Poses[i].X),
			formatFloat(trace.Poses[i].Y),
			formatFloat(trace.Poses[i].Heading),
			formatFloat(trace.Steer[i]),
			formatFloat(trace.Speed[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
