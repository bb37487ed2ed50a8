package facet

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

const maxLineLength = 16 << 20

// Counts is the result of the sizing pass.
type Counts struct {
	Vertices int
	Facets   int
}

type meshData struct {
	vertices  []vec3.T
	facets    []Facet
	committed int
}

// LoadOBJ reads path into a new Mesh.
func LoadOBJ(path string, opts ...LoadOption) (*Mesh, error) {
	m := NewMesh()
	if err := m.Load(path, opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// Load runs the sizing and parse passes over the file at path and
// replaces the mesh contents. On error the mesh is left untouched.
func (m *Mesh) Load(path string, opts ...LoadOption) error {
	o := newLoadOptions(m, opts)

	counts, err := countFile(path, o.sizing)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return ioFailure(path, err)
	}
	defer file.Close()

	data, err := parseOBJ(file, counts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		o.logger.Printf("load %s failed: %v", path, err)
		return err
	}
	m.swap(data, o, path)
	return nil
}

// LoadBytes is Load over an in-memory file.
func (m *Mesh) LoadBytes(b []byte, opts ...LoadOption) error {
	o := newLoadOptions(m, opts)

	counts, err := CountOBJ(bytes.NewReader(b), o.sizing)
	if err != nil {
		return err
	}
	data, err := parseOBJ(bytes.NewReader(b), counts)
	if err != nil {
		o.logger.Printf("load failed: %v", err)
		return err
	}
	m.swap(data, o, "<memory>")
	return nil
}

// LoadReader buffers r and loads it with LoadBytes.
func (m *Mesh) LoadReader(r io.Reader, opts ...LoadOption) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return ioFailure("", err)
	}
	return m.LoadBytes(b, opts...)
}

func (m *Mesh) swap(d *meshData, o loadOptions, name string) {
	m.vertices = d.vertices
	m.facets = d.facets
	m.committed = d.committed
	m.rotX, m.rotY, m.rotZ = 0, 0, 0
	o.logger.Printf("loaded %s: %d vertices, %d facet slots, %d faces",
		name, m.VertexCount(), m.FacetCount(), m.committed)
}

func countFile(path string, sizing FacetSizing) (Counts, error) {
	file, err := os.Open(path)
	if err != nil {
		return Counts{}, ioFailure(path, err)
	}
	defer file.Close()

	c, err := CountOBJ(file, sizing)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return Counts{}, err
	}
	return c, nil
}

// CountOBJ is the sizing pass. Every "v" record counts as one vertex
// whatever its fields; "f" records reserve facet slots per sizing.
// Numbers are not validated here.
func CountOBJ(r io.Reader, sizing FacetSizing) (Counts, error) {
	var c Counts
	scanner := newScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch recordTag(line) {
		case 'v':
			c.Vertices++
		case 'f':
			k := len(strings.Fields(line[2:]))
			switch {
			case k < 2:
			case sizing == ExactSizing || k == 2:
				c.Facets++
			default:
				c.Facets += k - 2
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Counts{}, ioFailure("", err)
	}
	return c, nil
}

func parseOBJ(r io.Reader, c Counts) (*meshData, error) {
	d := &meshData{
		vertices: make([]vec3.T, c.Vertices+1),
		facets:   make([]Facet, c.Facets+1),
	}

	seen, cursor, lineNo := 0, 1, 0
	scanner := newScanner(r)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		switch recordTag(line) {
		case 'v':
			v, err := parseVertex(strings.Fields(line[2:]), lineNo)
			if err != nil {
				return nil, err
			}
			if seen == c.Vertices {
				return nil, &LoadError{Kind: ErrInternal, Line: lineNo,
					Err: fmt.Errorf("more than %d vertices", c.Vertices)}
			}
			seen++
			d.vertices[seen] = v
		case 'f':
			fields := strings.Fields(line[2:])
			idx := make([]int, 0, len(fields))
			for _, tok := range fields {
				i, err := resolveIndex(tok, seen, lineNo)
				if err != nil {
					return nil, err
				}
				idx = append(idx, i)
			}
			if cursor >= len(d.facets) {
				if len(idx) > 1 {
					return nil, &LoadError{Kind: ErrInternal, Line: lineNo,
						Err: fmt.Errorf("more than %d facets", c.Facets)}
				}
				// degenerate and no slot left to overwrite
				continue
			}
			d.facets[cursor] = Facet{Vertices: idx, Count: len(idx)}
			if len(idx) > 1 {
				cursor++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ioFailure("", err)
	}
	if seen != c.Vertices {
		return nil, &LoadError{Kind: ErrInternal,
			Err: fmt.Errorf("parsed %d vertices, sized %d", seen, c.Vertices)}
	}
	d.committed = cursor - 1
	return d, nil
}

func parseVertex(fields []string, lineNo int) (vec3.T, error) {
	var v vec3.T
	if len(fields) != 3 {
		return v, malformed(lineNo, "vertex has %d coordinates, want 3", len(fields))
	}
	for k, s := range fields {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v, &LoadError{Kind: ErrMalformedRecord, Line: lineNo, Err: err}
		}
		v[k] = f
	}
	return v, nil
}

// resolveIndex turns a face token into a 1-based vertex index. Only the
// part before the first '/' is read. Negative values count back from
// the vertices seen so far, so -1 is the latest vertex.
func resolveIndex(tok string, seen, lineNo int) (int, error) {
	head := tok
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		head = tok[:i]
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, &LoadError{Kind: ErrMalformedRecord, Line: lineNo, Err: err}
	}
	if n < 0 {
		n += seen + 1
	}
	if n <= 0 || n > seen {
		return 0, malformed(lineNo, "vertex reference %s outside 1..%d", tok, seen)
	}
	return n, nil
}

// recordTag returns 'v' or 'f' for vertex and face records, 0 otherwise.
func recordTag(line string) byte {
	if len(line) < 2 || (line[1] != ' ' && line[1] != '\t') {
		return 0
	}
	switch line[0] {
	case 'v', 'f':
		return line[0]
	}
	return 0
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner
}
