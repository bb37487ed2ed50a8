package facet

import (
	"io"
	"log"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Facet is one planar face: a loop of 1-based vertex indices.
// Count mirrors len(Vertices).
type Facet struct {
	Vertices []int
	Count    int
}

// Mesh owns a 1-based vertex buffer, a 1-based facet list and the
// rotation angles staged for the next ApplyPendingRotation.
// Slot 0 of both buffers is reserved.
type Mesh struct {
	vertices  []vec3.T
	facets    []Facet
	committed int

	rotX, rotY, rotZ float64

	logger *log.Logger
}

var discard = log.New(io.Discard, "", 0)

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// SetLogger sets the logger used for diagnostics when a call does not
// supply one. nil silences them.
func (m *Mesh) SetLogger(l *log.Logger) {
	m.logger = l
}

func (m *Mesh) log() *log.Logger {
	if m.logger == nil {
		return discard
	}
	return m.logger
}

// Clear drops all geometry and pending rotation.
func (m *Mesh) Clear() {
	m.vertices = nil
	m.facets = nil
	m.committed = 0
	m.rotX, m.rotY, m.rotZ = 0, 0, 0
}

// VertexCount returns N, the highest valid vertex index.
func (m *Mesh) VertexCount() int {
	if len(m.vertices) == 0 {
		return 0
	}
	return len(m.vertices) - 1
}

// FacetCount returns the number of facet slots reserved by the sizing
// pass. With fan sizing this can exceed PolygonCount.
func (m *Mesh) FacetCount() int {
	if len(m.facets) == 0 {
		return 0
	}
	return len(m.facets) - 1
}

// PolygonCount returns how many facet slots hold a committed face.
// They occupy indices 1..PolygonCount().
func (m *Mesh) PolygonCount() int {
	return m.committed
}

// Vertex returns vertex i, 1 <= i <= VertexCount().
func (m *Mesh) Vertex(i int) vec3.T {
	return m.vertices[i]
}

// Facet returns a copy of facet slot i, 1 <= i <= FacetCount().
func (m *Mesh) Facet(i int) Facet {
	return copyFacet(m.facets[i])
}

// Vertices returns a copy of the vertex buffer including the slot 0
// sentinel.
func (m *Mesh) Vertices() []vec3.T {
	out := make([]vec3.T, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Facets returns a copy of the facet list including slot 0 and any
// placeholder slots.
func (m *Mesh) Facets() []Facet {
	out := make([]Facet, len(m.facets))
	for i, f := range m.facets {
		out[i] = copyFacet(f)
	}
	return out
}

func copyFacet(f Facet) Facet {
	vs := make([]int, len(f.Vertices))
	copy(vs, f.Vertices)
	return Facet{Vertices: vs, Count: f.Count}
}

// Edge is an undirected vertex pair with A < B.
type Edge struct {
	A, B int
}

// Edges returns the distinct edges of every committed facet loop,
// including the edge closing each loop.
func (m *Mesh) Edges() []Edge {
	var edges []Edge
	known := make(map[Edge]struct{})
	add := func(a, b int) {
		if a == b {
			return
		}
		if b < a {
			a, b = b, a
		}
		e := Edge{a, b}
		if _, ok := known[e]; ok {
			return
		}
		known[e] = struct{}{}
		edges = append(edges, e)
	}
	for i := 1; i <= m.committed; i++ {
		vs := m.facets[i].Vertices
		for j := range vs {
			if j == 0 {
				add(vs[0], vs[len(vs)-1])
				continue
			}
			add(vs[j-1], vs[j])
		}
	}
	return edges
}

// Triangles fans every committed facet around its first vertex, giving
// Count-2 triangles per facet. Two-vertex facets produce none.
func (m *Mesh) Triangles() [][3]int {
	var tris [][3]int
	for i := 1; i <= m.committed; i++ {
		vs := m.facets[i].Vertices
		for j := 1; j < len(vs)-1; j++ {
			tris = append(tris, [3]int{vs[0], vs[j], vs[j+1]})
		}
	}
	return tris
}

// Centroid returns the arithmetic mean of all vertices, or the origin
// for an empty mesh.
func (m *Mesh) Centroid() vec3.T {
	n := m.VertexCount()
	if n == 0 {
		return vec3.Zero
	}
	var sum vec3.T
	for i := 1; i <= n; i++ {
		sum.Add(&m.vertices[i])
	}
	return sum.Scaled(1 / float64(n))
}

// MaxRadius returns the largest distance of any vertex from the origin.
func (m *Mesh) MaxRadius() float64 {
	var r float64
	for i := 1; i <= m.VertexCount(); i++ {
		r = math.Max(r, m.vertices[i].Length())
	}
	return r
}

// Box is an axis aligned bounding box.
type Box struct {
	Min, Max vec3.T
}

// Center returns the midpoint of the box.
func (b Box) Center() vec3.T {
	c := vec3.Add(&b.Min, &b.Max)
	return c.Scaled(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box) Size() vec3.T {
	return vec3.Sub(&b.Max, &b.Min)
}

// BoundingBox returns the bounds of vertices 1..N. An empty mesh has a
// zero box.
func (m *Mesh) BoundingBox() Box {
	n := m.VertexCount()
	if n == 0 {
		return Box{}
	}
	box := Box{Min: m.vertices[1], Max: m.vertices[1]}
	for i := 2; i <= n; i++ {
		v := m.vertices[i]
		for k := 0; k < 3; k++ {
			box.Min[k] = math.Min(box.Min[k], v[k])
			box.Max[k] = math.Max(box.Max[k], v[k])
		}
	}
	return box
}
