package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type Settings struct {
	Load      LoadSettings      `json:"load"`
	Transform TransformSettings `json:"transform"`
	Preview   PreviewSettings   `json:"preview"`
}

type LoadSettings struct {
	// ExactFacetSizing reserves one facet slot per face instead of the
	// fan triangulation count.
	ExactFacetSizing bool `json:"exactFacetSizing"`
	Verbose          bool `json:"verbose"`
}

type TransformSettings struct {
	Recenter bool `json:"recenter"`
	// FitRadius scales the mesh to this radius after loading. 0 disables.
	FitRadius float64 `json:"fitRadius"`
}

type PreviewSettings struct {
	Size       int     `json:"size"`
	Scale      int     `json:"scale"`
	Background string  `json:"background"`
	Stroke     string  `json:"stroke"`
	LineWidth  float64 `json:"lineWidth"`
	// PointSize draws vertices as squares this many pixels wide. 0 hides them.
	PointSize  float64 `json:"pointSize"`
	PointColor string  `json:"pointColor"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Transform: TransformSettings{
			Recenter:  true,
			FitRadius: 1,
		},
		Preview: PreviewSettings{
			Size:       512,
			Scale:      4,
			Background: "ffffff",
			Stroke:     "333333",
			LineWidth:  1,
			PointColor: "cc0000",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads JSON settings from r over the defaults.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return s, fmt.Errorf("error parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Preview.Size <= 0 {
		return fmt.Errorf("preview size must be positive, got %d", s.Preview.Size)
	}
	if s.Preview.Scale <= 0 {
		return fmt.Errorf("preview scale must be positive, got %d", s.Preview.Scale)
	}
	if s.Preview.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive, got %g", s.Preview.LineWidth)
	}
	if s.Preview.PointSize < 0 {
		return fmt.Errorf("point size must not be negative, got %g", s.Preview.PointSize)
	}
	if s.Transform.FitRadius < 0 {
		return fmt.Errorf("fit radius must not be negative, got %g", s.Transform.FitRadius)
	}
	return nil
}
