package facet

import (
	"github.com/fogleman/simplify"
	"github.com/ungerik/go3d/float64/vec3"
)

// Simplified returns a new mesh decimated to roughly factor times the
// triangle count of m's fan triangulation. The result holds triangle
// facets only, sized exactly, with shared vertices merged. m is not
// modified.
func (m *Mesh) Simplified(factor float64) *Mesh {
	tris := m.Triangles()
	if len(tris) == 0 {
		return NewMesh()
	}
	st := make([]*simplify.Triangle, len(tris))
	for i, t := range tris {
		st[i] = simplify.NewTriangle(
			toSimplify(m.vertices[t[0]]),
			toSimplify(m.vertices[t[1]]),
			toSimplify(m.vertices[t[2]]),
		)
	}
	sm := simplify.NewMesh(st).Simplify(factor)

	out := NewMesh()
	index := make(map[vec3.T]int)
	out.vertices = []vec3.T{vec3.Zero}
	out.facets = []Facet{{}}
	lookup := func(v simplify.Vector) int {
		p := vec3.T{v.X, v.Y, v.Z}
		if i, ok := index[p]; ok {
			return i
		}
		out.vertices = append(out.vertices, p)
		index[p] = len(out.vertices) - 1
		return index[p]
	}
	for _, t := range sm.Triangles {
		vs := []int{lookup(t.V1), lookup(t.V2), lookup(t.V3)}
		out.facets = append(out.facets, Facet{Vertices: vs, Count: 3})
	}
	out.committed = len(out.facets) - 1
	if out.committed == 0 {
		out.Clear()
	}
	m.log().Printf("simplified %d triangles to %d", len(tris), out.committed)
	return out
}

func toSimplify(v vec3.T) simplify.Vector {
	return simplify.Vector{X: v[0], Y: v[1], Z: v[2]}
}
