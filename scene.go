package facet

import (
	"image/png"
	"io"
	"log"
	"math"
	"os"

	"github.com/ungerik/go3d/float64/vec3"
)

// Scene renders objects as orthographic wireframes looking down -Z, so
// the preview shows each mesh in its current orientation.
type Scene struct {
	Context *Context
	Objects []*Object
	// Padding is the fraction of the canvas left empty on each side.
	Padding float64
}

// NewScene returns a scene drawing onto a size x size image, supersampled
// scale times.
func NewScene(size, scale int, background Color) *Scene {
	dc := NewContext(size, size, scale)
	dc.ClearColor = background
	return &Scene{Context: dc, Padding: 0.05}
}

// SetLineWidth sets the stroke width in output pixels.
func (s *Scene) SetLineWidth(w float64) {
	s.Context.LineWidth = w * float64(s.Context.Scale)
}

// AddObject adds an object to the scene
func (s *Scene) AddObject(o *Object) {
	s.Objects = append(s.Objects, o)
}

// AddObjects is a convenience method to add multiple objects
func (s *Scene) AddObjects(objects []*Object) {
	for _, o := range objects {
		s.AddObject(o)
	}
}

// fit returns the view center and pixels per unit that put the XY
// extent of every object inside the padded canvas.
func (s *Scene) fit() (center vec3.T, k float64) {
	var box Box
	first := true
	for _, o := range s.Objects {
		if o.Mesh == nil || o.Mesh.VertexCount() == 0 {
			continue
		}
		b := o.Mesh.BoundingBox()
		if first {
			box, first = b, false
			continue
		}
		for i := 0; i < 3; i++ {
			box.Min[i] = math.Min(box.Min[i], b.Min[i])
			box.Max[i] = math.Max(box.Max[i], b.Max[i])
		}
	}
	center = box.Center()
	size := box.Size()
	extent := math.Max(size[0], size[1])
	usable := float64(s.Context.Width) * (1 - 2*s.Padding)
	if extent <= 0 {
		return center, 1
	}
	return center, usable / extent
}

func (s *Scene) project(vertices []vec3.T, center vec3.T, k float64) []vec3.T {
	w := float64(s.Context.Width) / 2
	h := float64(s.Context.Height) / 2
	out := make([]vec3.T, len(vertices))
	for i, v := range vertices {
		out[i] = vec3.T{w + (v[0]-center[0])*k, h - (v[1]-center[1])*k, 0}
	}
	return out
}

func (s *Scene) render() {
	s.Context.ClearColorBuffer()
	center, k := s.fit()
	for _, o := range s.Objects {
		if o.Mesh == nil {
			log.Printf("facet: object attempted to render with nil mesh")
			continue
		}
		points := s.project(o.Mesh.Vertices(), center, k)
		s.Context.DrawEdges(points, o.Mesh.Edges(), o.Color)
		s.Context.DrawPoints(points, o.PointSize*float64(s.Context.Scale), o.PointColor)
	}
}

// Draw renders the scene to a PNG file at path.
func (s *Scene) Draw(path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Printf("facet: could not create file in Draw: %v", err)
		return
	}
	defer file.Close()

	if err := s.DrawToWriter(file); err != nil {
		log.Printf("facet: could not encode png in Draw: %v", err)
	}
}

// DrawToWriter renders the scene and PNG encodes it to writer.
func (s *Scene) DrawToWriter(writer io.Writer) error {
	s.render()
	return png.Encode(writer, s.Context.Image())
}

// GeneratePreview writes a wireframe PNG of m to writer.
func GeneratePreview(writer io.Writer, m *Mesh, size, scale int, background, stroke string) error {
	scene := NewScene(size, scale, HexColor(background))
	o := NewObject(m)
	o.SetColor(HexColor(stroke))
	scene.AddObject(o)
	return scene.DrawToWriter(writer)
}
