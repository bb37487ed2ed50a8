package facet

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

func loadString(t *testing.T, src string, opts ...LoadOption) *Mesh {
	t.Helper()
	m := NewMesh()
	if err := m.LoadBytes([]byte(src), opts...); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestCountOBJ(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		fan   Counts
		exact Counts
	}{
		{"empty", "", Counts{}, Counts{}},
		{"vertices counted regardless of fields", "v 1 2 3\nv 1 2\nv 1 2 3 4\n", Counts{3, 0}, Counts{3, 0}},
		{"other records ignored", "vn 0 0 1\nvt 0 0\n# v 1 2 3\nv\n o v\n", Counts{}, Counts{}},
		{"tab separator", "v\t1 2 3\nf\t1 1\n", Counts{1, 1}, Counts{1, 1}},
		{"two vertex face", "f 1 2\n", Counts{0, 1}, Counts{0, 1}},
		{"triangle", "f 1 2 3\n", Counts{0, 1}, Counts{0, 1}},
		{"pentagon", "f 1 2 3 4 5\n", Counts{0, 3}, Counts{0, 1}},
		{"degenerate faces", "f 1\nf \nf\n", Counts{}, Counts{}},
		{"mixed", "f 1 2\nf 1 2 3\nf 1 2 3 4 5\nf 1\n", Counts{0, 5}, Counts{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountOBJ(strings.NewReader(tt.src), FanSizing)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.fan {
				t.Errorf("fan: got %+v, want %+v", got, tt.fan)
			}
			got, err = CountOBJ(strings.NewReader(tt.src), ExactSizing)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.exact {
				t.Errorf("exact: got %+v, want %+v", got, tt.exact)
			}
		})
	}
}

func TestCountOBJReadError(t *testing.T) {
	_, err := CountOBJ(iotest.ErrReader(errors.New("boom")), FanSizing)
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("got %v, want ErrIOFailure", err)
	}
}

func TestLoadNegativeIndex(t *testing.T) {
	m := loadString(t, "v 0 0 0\nv 1 1 1\nf 1 -1\n")
	if m.VertexCount() != 2 || m.FacetCount() != 1 || m.PolygonCount() != 1 {
		t.Fatalf("counts = %d/%d/%d", m.VertexCount(), m.FacetCount(), m.PolygonCount())
	}
	f := m.Facet(1)
	if !reflect.DeepEqual(f.Vertices, []int{1, 2}) || f.Count != 2 {
		t.Fatalf("facet = %+v, want [1 2]", f)
	}
}

func TestLoadNegativeIndexUsesCursor(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\nv 0 0 1\nf -1 -2 -4\n"
	m := loadString(t, src)
	if got := m.Facet(1).Vertices; !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("first face = %v", got)
	}
	if got := m.Facet(2).Vertices; !reflect.DeepEqual(got, []int{4, 3, 1}) {
		t.Errorf("second face = %v", got)
	}
}

func TestLoadVertices(t *testing.T) {
	m := loadString(t, "v 1 2 3\r\nv -1.5 2e3 0\r\n")
	if m.Vertex(1) != [3]float64{1, 2, 3} {
		t.Errorf("v1 = %v", m.Vertex(1))
	}
	if m.Vertex(2) != [3]float64{-1.5, 2000, 0} {
		t.Errorf("v2 = %v", m.Vertex(2))
	}
	if m.Vertices()[0] != [3]float64{} {
		t.Errorf("sentinel = %v", m.Vertices()[0])
	}
}

func TestLoadSlashTokens(t *testing.T) {
	m := loadString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 2//2 3/3\n")
	if got := m.Facet(1).Vertices; !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("face = %v", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"two coordinates", "v 1 2\n", 1},
		{"four coordinates", "v 1 2 3\nv 1 2 3 4\n", 2},
		{"bad coordinate", "v 1 2 x\n", 1},
		{"index out of range", "v 0 0 0\nv 1 1 1\nf 1 99\n", 3},
		{"zero index", "v 0 0 0\nv 1 1 1\nf 0 1\n", 3},
		{"negative before start", "v 0 0 0\nv 1 1 1\nf 1 -3\n", 3},
		{"forward reference", "v 0 0 0\nf 1 2\nv 1 1 1\n", 2},
		{"bad index", "v 0 0 0\nv 1 1 1\nf 1 two\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMesh().LoadBytes([]byte(tt.src))
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("got %v, want ErrMalformedRecord", err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("%T is not a *LoadError", err)
			}
			if le.Line != tt.line {
				t.Errorf("line = %d, want %d", le.Line, tt.line)
			}
		})
	}
}

func TestLoadFailureKeepsMesh(t *testing.T) {
	m := loadString(t, "v 0 0 0\nv 1 1 1\nf 1 2\n")
	other := loadString(t, "v 5 5 5\nv 6 6 6\nf 2 1\n")
	m.SetPendingRotation(AxisX, 0.5)

	if err := m.LoadBytes([]byte("v 9 9 9\nv 1 2\n")); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("got %v, want ErrMalformedRecord", err)
	}
	if m.VertexCount() != 2 || m.FacetCount() != 1 || m.Vertex(2) != [3]float64{1, 1, 1} {
		t.Errorf("failed load changed the mesh: %v", m.Vertices())
	}
	if x, _, _ := m.PendingRotation(); x != 0.5 {
		t.Errorf("pending rotation = %g, want 0.5", x)
	}
	if other.Vertex(1) != [3]float64{5, 5, 5} || other.PolygonCount() != 1 {
		t.Errorf("unrelated mesh changed: %v", other.Vertices())
	}
}

func TestLoadResetsPendingRotation(t *testing.T) {
	m := NewMesh()
	m.SetPendingRotation(AxisZ, 1)
	if err := m.LoadBytes([]byte("v 1 0 0\n")); err != nil {
		t.Fatal(err)
	}
	if x, y, z := m.PendingRotation(); x != 0 || y != 0 || z != 0 {
		t.Fatalf("pending rotation = %g %g %g", x, y, z)
	}
}

func TestLoadDegenerateFacets(t *testing.T) {
	t.Run("overwritten by next face", func(t *testing.T) {
		m := loadString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1\nf 2 3\n")
		if m.FacetCount() != 2 || m.PolygonCount() != 2 {
			t.Fatalf("counts = %d/%d", m.FacetCount(), m.PolygonCount())
		}
		if got := m.Facet(2); !reflect.DeepEqual(got.Vertices, []int{2, 3}) || got.Count != 2 {
			t.Errorf("slot 2 = %+v", got)
		}
	})
	t.Run("left in reserved slot", func(t *testing.T) {
		m := loadString(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\nf 2\n")
		if m.FacetCount() != 2 || m.PolygonCount() != 1 {
			t.Fatalf("counts = %d/%d", m.FacetCount(), m.PolygonCount())
		}
		if got := m.Facet(2); !reflect.DeepEqual(got.Vertices, []int{2}) || got.Count != 1 {
			t.Errorf("slot 2 = %+v", got)
		}
	})
	t.Run("past reserved range", func(t *testing.T) {
		m := loadString(t, "v 0 0 0\nv 1 0 0\nf 1 2\nf 1\n")
		if m.FacetCount() != 1 || m.PolygonCount() != 1 {
			t.Fatalf("counts = %d/%d", m.FacetCount(), m.PolygonCount())
		}
	})
}

func TestLoadFacetSizing(t *testing.T) {
	fan := loadString(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n")
	if fan.FacetCount() != 2 || fan.PolygonCount() != 1 {
		t.Fatalf("fan counts = %d/%d", fan.FacetCount(), fan.PolygonCount())
	}
	if got := fan.Facet(2); got.Count != 0 || len(got.Vertices) != 0 {
		t.Errorf("placeholder slot = %+v", got)
	}

	exact := loadString(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n", WithFacetSizing(ExactSizing))
	if exact.FacetCount() != 1 || exact.PolygonCount() != 1 {
		t.Fatalf("exact counts = %d/%d", exact.FacetCount(), exact.PolygonCount())
	}
}

func TestLoadTrianglesCommitEverySlot(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\nf 1 2 4\nf 2 3 4\nf 1 4\n"
	counts, err := CountOBJ(strings.NewReader(src), FanSizing)
	if err != nil {
		t.Fatal(err)
	}
	m := loadString(t, src)
	if m.VertexCount() != counts.Vertices || m.PolygonCount() != counts.Facets {
		t.Fatalf("sized %+v, committed %d vertices and %d facets",
			counts, m.VertexCount(), m.PolygonCount())
	}
}

func TestLoadFile(t *testing.T) {
	m := NewMesh()
	if err := m.Load(filepath.Join("testdata", "cube.obj")); err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", m.VertexCount())
	}
	if m.FacetCount() != 12 || m.PolygonCount() != 6 {
		t.Errorf("facets = %d/%d, want 12/6", m.FacetCount(), m.PolygonCount())
	}
	for i := 1; i <= m.PolygonCount(); i++ {
		f := m.Facet(i)
		if f.Count != len(f.Vertices) {
			t.Errorf("facet %d count %d != %d", i, f.Count, len(f.Vertices))
		}
		for _, v := range f.Vertices {
			if v < 1 || v > m.VertexCount() {
				t.Errorf("facet %d references %d", i, v)
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	m := loadString(t, "v 1 2 3\n")
	path := filepath.Join(t.TempDir(), "missing.obj")
	err := m.Load(path)
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("got %v, want ErrIOFailure", err)
	}
	var pe *os.PathError
	if !errors.As(err, &pe) {
		t.Errorf("%v does not wrap *os.PathError", err)
	}
	if m.VertexCount() != 1 {
		t.Errorf("failed load changed the mesh")
	}
}

func TestLoadMalformedFileReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nf 1 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadOBJ(path)
	var le *LoadError
	if !errors.As(err, &le) || le.Path != path || le.Line != 2 {
		t.Fatalf("got %#v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("message %q lacks the path", err.Error())
	}
}

func TestLoadReaderError(t *testing.T) {
	err := NewMesh().LoadReader(iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrIOFailure) {
		t.Fatalf("got %v, want ErrIOFailure", err)
	}
}

func TestLoadLogger(t *testing.T) {
	var buf bytes.Buffer
	loadString(t, "v 1 2 3\n", WithLogger(log.New(&buf, "", 0)))
	if !strings.Contains(buf.String(), "1 vertices") {
		t.Errorf("log = %q", buf.String())
	}

	buf.Reset()
	m := NewMesh()
	m.SetLogger(log.New(&buf, "", 0))
	if err := m.LoadBytes([]byte("v 1 2\n")); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "malformed record") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestParseMisSized(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		counts Counts
		line   int
	}{
		{"more vertices than sized", "v 0 0 0\nv 1 1 1\n", Counts{Vertices: 1}, 2},
		{"more facets than sized", "v 0 0 0\nv 1 1 1\nf 1 2\nf 2 1\n", Counts{Vertices: 2, Facets: 1}, 4},
		{"fewer vertices than sized", "v 0 0 0\n", Counts{Vertices: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOBJ(strings.NewReader(tt.src), tt.counts)
			if !errors.Is(err, ErrInternal) {
				t.Fatalf("got %v, want ErrInternal", err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("%T is not a *LoadError", err)
			}
			if le.Line != tt.line {
				t.Errorf("line = %d, want %d", le.Line, tt.line)
			}
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	tests := []struct {
		err  *LoadError
		want string
	}{
		{&LoadError{}, "load error"},
		{&LoadError{Kind: ErrMalformedRecord, Path: "a.obj", Line: 3, Err: errors.New("bad")},
			"a.obj: malformed record at line 3: bad"},
		{&LoadError{Kind: ErrIOFailure, Err: errors.New("closed")}, "io failure: closed"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
