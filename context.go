package facet

import (
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/nfnt/resize"
	"github.com/ungerik/go3d/float64/vec3"
)

// Context is an offscreen canvas for wireframe previews. Drawing
// happens at Scale times the output size and Image downsamples it.
type Context struct {
	Width       int
	Height      int
	Scale       int
	ColorBuffer *image.NRGBA
	ClearColor  Color
	AlphaBlend  bool
	LineWidth   float64
	locks       []sync.Mutex
}

// NewContext returns a transparent width x height canvas drawn at scale
// times that resolution. Scales below 1 are treated as 1.
func NewContext(width, height, scale int) *Context {
	if scale < 1 {
		scale = 1
	}
	dc := &Context{}
	dc.Width = width * scale
	dc.Height = height * scale
	dc.Scale = scale
	dc.ColorBuffer = image.NewNRGBA(image.Rect(0, 0, dc.Width, dc.Height))
	dc.ClearColor = Transparent
	dc.AlphaBlend = true
	dc.LineWidth = float64(scale)
	dc.locks = make([]sync.Mutex, 256)
	return dc
}

// Image returns the canvas downsampled to the requested size.
func (dc *Context) Image() image.Image {
	if dc.Scale == 1 {
		return dc.ColorBuffer
	}
	w := uint(dc.Width / dc.Scale)
	h := uint(dc.Height / dc.Scale)
	return resize.Resize(w, h, dc.ColorBuffer, resize.Bilinear)
}

// ClearColorBufferWith fills one row and copies it down the buffer.
func (dc *Context) ClearColorBufferWith(c Color) {
	nrgba := c.NRGBA()
	row := make([]uint8, dc.Width*4)
	for x := 0; x < dc.Width; x++ {
		i := x * 4
		row[i+0] = nrgba.R
		row[i+1] = nrgba.G
		row[i+2] = nrgba.B
		row[i+3] = nrgba.A
	}
	pix := dc.ColorBuffer.Pix
	stride := dc.ColorBuffer.Stride
	for y := 0; y < dc.Height; y++ {
		copy(pix[y*stride:], row)
	}
}

// ClearColorBuffer fills the canvas with ClearColor.
func (dc *Context) ClearColorBuffer() {
	dc.ClearColorBufferWith(dc.ClearColor)
}

func edge(a, b, c vec3.T) float64 {
	return (b[0]-c[0])*(a[1]-c[1]) - (b[1]-c[1])*(a[0]-c[0])
}

// rasterize fills a screen space triangle with a flat color.
func (dc *Context) rasterize(s0, s1, s2 vec3.T, c Color) {
	area := edge(s0, s1, s2)
	if area == 0 {
		return
	}

	x0 := ClampInt(int(math.Floor(math.Min(s0[0], math.Min(s1[0], s2[0])))), 0, dc.Width-1)
	x1 := ClampInt(int(math.Ceil(math.Max(s0[0], math.Max(s1[0], s2[0])))), 0, dc.Width-1)
	y0 := ClampInt(int(math.Floor(math.Min(s0[1], math.Min(s1[1], s2[1])))), 0, dc.Height-1)
	y1 := ClampInt(int(math.Ceil(math.Max(s0[1], math.Max(s1[1], s2[1])))), 0, dc.Height-1)

	p := vec3.T{float64(x0) + 0.5, float64(y0) + 0.5, 0}
	w00 := edge(s1, s2, p)
	w01 := edge(s2, s0, p)
	w02 := edge(s0, s1, p)
	a01 := s1[1] - s0[1]
	b01 := s0[0] - s1[0]
	a12 := s2[1] - s1[1]
	b12 := s1[0] - s2[0]
	a20 := s0[1] - s2[1]
	b20 := s2[0] - s0[0]

	ra := 1 / area
	stride := dc.Width
	pix := dc.ColorBuffer.Pix

	for y := y0; y <= y1; y++ {
		w0 := w00
		w1 := w01
		w2 := w02
		for x := x0; x <= x1; x++ {
			if w0*ra >= 0 && w1*ra >= 0 && w2*ra >= 0 {
				i := y*stride + x
				lock := &dc.locks[(x+y)&255]
				lock.Lock()
				dc.setPixel(c, pix, i*4)
				lock.Unlock()
			}
			w0 += a12
			w1 += a20
			w2 += a01
		}
		w00 += b12
		w01 += b20
		w02 += b01
	}
}

// setPixel composites c over the straight-alpha pixel at i.
func (dc *Context) setPixel(c Color, pix []uint8, i int) {
	if !dc.AlphaBlend || c.A >= 1 {
		nrgba := c.NRGBA()
		pix[i+0] = nrgba.R
		pix[i+1] = nrgba.G
		pix[i+2] = nrgba.B
		pix[i+3] = nrgba.A
		return
	}
	sa := Clamp(c.A, 0, 1)
	da := float64(pix[i+3]) / 255
	a := sa + da*(1-sa)
	if a == 0 {
		return
	}
	for k, sc := range [3]float64{c.R, c.G, c.B} {
		d := float64(pix[i+k]) / 255
		v := (Clamp(sc, 0, 1)*sa + d*da*(1-sa)) / a
		pix[i+k] = uint8(math.Round(v * 255))
	}
	pix[i+3] = uint8(math.Round(a * 255))
}

// line draws s0-s1 as a quad LineWidth wide, extended by half the width
// at both ends.
func (dc *Context) line(s0, s1 vec3.T, c Color) {
	d := vec3.Sub(&s1, &s0)
	if d.LengthSqr() == 0 {
		return
	}
	d.Normalize()
	half := dc.LineWidth / 2
	n := vec3.T{-d[1] * half, d[0] * half, 0}
	ext := d.Scaled(half)
	s0.Sub(&ext)
	s1.Add(&ext)
	s00 := vec3.Add(&s0, &n)
	s01 := vec3.Sub(&s0, &n)
	s10 := vec3.Add(&s1, &n)
	s11 := vec3.Sub(&s1, &n)
	dc.rasterize(s11, s01, s00, c)
	dc.rasterize(s10, s11, s00, c)
}

// DrawEdges draws every edge between screen space points, spreading the
// work over all CPUs.
func (dc *Context) DrawEdges(points []vec3.T, edges []Edge, c Color) {
	var wg sync.WaitGroup
	wn := runtime.NumCPU()
	wg.Add(wn)
	for wi := 0; wi < wn; wi++ {
		go func(wi int) {
			defer wg.Done()
			for i := wi; i < len(edges); i += wn {
				e := edges[i]
				dc.line(points[e.A], points[e.B], c)
			}
		}(wi)
	}
	wg.Wait()
}

// DrawPoints draws a size x size square centred on every point except
// the slot 0 sentinel.
func (dc *Context) DrawPoints(points []vec3.T, size float64, c Color) {
	if size <= 0 {
		return
	}
	h := size / 2
	for i := 1; i < len(points); i++ {
		p := points[i]
		s00 := vec3.T{p[0] - h, p[1] - h, 0}
		s01 := vec3.T{p[0] - h, p[1] + h, 0}
		s10 := vec3.T{p[0] + h, p[1] - h, 0}
		s11 := vec3.T{p[0] + h, p[1] + h, 0}
		dc.rasterize(s00, s10, s11, c)
		dc.rasterize(s00, s11, s01, c)
	}
}
