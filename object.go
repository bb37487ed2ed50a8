package facet

// Object pairs a mesh with the colors a Scene draws it in. Vertices are
// drawn as PointSize pixel squares when PointSize is positive.
type Object struct {
	Mesh       *Mesh
	Color      Color
	PointSize  float64
	PointColor Color
}

// NewObject wraps mesh with a grey stroke.
func NewObject(mesh *Mesh) *Object {
	return &Object{Mesh: mesh, Color: HexColor("777")}
}

// NewObjectFromFile loads path into a new object.
func NewObjectFromFile(path string, opts ...LoadOption) (*Object, error) {
	m, err := LoadOBJ(path, opts...)
	if err != nil {
		return nil, err
	}
	return NewObject(m), nil
}

// SetColor set the stroke color of the object
func (o *Object) SetColor(c Color) {
	o.Color = c
}
