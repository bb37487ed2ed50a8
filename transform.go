package facet

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Axis selects a coordinate axis. Lower case selects the positive sense,
// upper case the negated one. Any other value is ignored by the
// transform methods.
type Axis byte

const (
	AxisX    Axis = 'x'
	AxisY    Axis = 'y'
	AxisZ    Axis = 'z'
	AxisNegX Axis = 'X'
	AxisNegY Axis = 'Y'
	AxisNegZ Axis = 'Z'
)

// component returns the coordinate index and sign for a, ok false for
// unknown selectors.
func (a Axis) component() (k int, sign float64, ok bool) {
	switch a {
	case AxisX:
		return 0, 1, true
	case AxisY:
		return 1, 1, true
	case AxisZ:
		return 2, 1, true
	case AxisNegX:
		return 0, -1, true
	case AxisNegY:
		return 1, -1, true
	case AxisNegZ:
		return 2, -1, true
	}
	return 0, 0, false
}

// SetPendingRotation stages an angle in radians for axis, replacing any
// angle already staged for it.
func (m *Mesh) SetPendingRotation(axis Axis, angle float64) {
	k, sign, ok := axis.component()
	if !ok {
		return
	}
	switch k {
	case 0:
		m.rotX = sign * angle
	case 1:
		m.rotY = sign * angle
	case 2:
		m.rotZ = sign * angle
	}
}

// PendingRotation returns the staged angles.
func (m *Mesh) PendingRotation() (x, y, z float64) {
	return m.rotX, m.rotY, m.rotZ
}

// ApplyPendingRotation rotates every vertex about X, then Y, then Z by
// the staged angles and clears them.
func (m *Mesh) ApplyPendingRotation() {
	for i := 1; i <= m.VertexCount(); i++ {
		p := &m.vertices[i]
		rotateX(p, m.rotX)
		rotateY(p, m.rotY)
		rotateZ(p, m.rotZ)
	}
	m.rotX, m.rotY, m.rotZ = 0, 0, 0
}

func rotateX(p *vec3.T, angle float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	y := p[1]*c - p[2]*s
	p[2] = p[1]*s + p[2]*c
	p[1] = y
}

func rotateY(p *vec3.T, angle float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	x := p[0]*c + p[2]*s
	p[2] = -p[0]*s + p[2]*c
	p[0] = x
}

func rotateZ(p *vec3.T, angle float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	x := p[0]*c - p[1]*s
	p[1] = p[0]*s + p[1]*c
	p[0] = x
}

// Translate moves every vertex by distance along axis, or by -distance
// for an upper case axis.
func (m *Mesh) Translate(distance float64, axis Axis) {
	k, sign, ok := axis.component()
	if !ok {
		return
	}
	for i := 1; i <= m.VertexCount(); i++ {
		if sign > 0 {
			m.vertices[i][k] += distance
		} else {
			m.vertices[i][k] -= distance
		}
	}
}

// Recenter moves the centroid to the origin.
func (m *Mesh) Recenter() {
	if m.VertexCount() == 0 {
		return
	}
	c := m.Centroid()
	for i := 1; i <= m.VertexCount(); i++ {
		m.vertices[i].Sub(&c)
	}
}

// ScaleToFit scales uniformly about the origin so the farthest vertex
// lies at radius. Meshes with no extent are left alone.
func (m *Mesh) ScaleToFit(radius float64) {
	r := m.MaxRadius()
	if r <= 0 {
		return
	}
	f := radius / r
	for i := 1; i <= m.VertexCount(); i++ {
		m.vertices[i].Scale(f)
	}
}
