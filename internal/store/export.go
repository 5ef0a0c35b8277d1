package store

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Plan       string             `json:"plan"`
	Dt         float64            `json:"dt"`
	Kp         float64            `json:"kp"`
	KTheta     float64            `json:"ktheta"`
	Steps      int                `json:"steps"`
	Completed  bool               `json:"completed"`
	Times      []float64          `json:"times"`
	Poses      [][]float64        `json:"poses"`
	Commands   [][]float64        `json:"commands"`
	Errors     [][]float64        `json:"errors"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as one indented JSON document. Poses come
// out as [x y theta] rows, commands as [v omega] and errors as
// [e_x e_y e_theta].
func ExportJSON(w io.Writer, meta *RunMetadata, series *Series) error {
	data := ExportData{
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Plan:       meta.Plan,
		Dt:         meta.Dt,
		Kp:         meta.Kp,
		KTheta:     meta.KTheta,
		Steps:      len(series.Times),
		Completed:  meta.Completed,
		Times:      series.Times,
		Poses:      make([][]float64, len(series.Poses)),
		Commands:   make([][]float64, len(series.Commands)),
		Errors:     make([][]float64, len(series.Errors)),
		Metrics:    meta.Metrics,
	}

	for i, p := range series.Poses {
		data.Poses[i] = []float64{p.X, p.Y, p.Theta}
	}
	for i, c := range series.Commands {
		data.Commands[i] = []float64{c.V, c.Omega}
	}
	for i, e := range series.Errors {
		data.Errors[i] = []float64{e.X, e.Y, e.Heading}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the run to path, creating or truncating it.
func ExportJSONFile(path string, meta *RunMetadata, series *Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, meta, series)
}
