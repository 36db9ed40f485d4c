package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is one render pass: a canvas plus the camera matrix for it.
// Visualizations draw through its primitives in world units.
type Frame struct {
	canvas *Canvas
	m      mgl64.Mat4
}

// NewFrame prepares a frame for canvas as seen by cam.
func NewFrame(canvas *Canvas, cam Camera) *Frame {
	return &Frame{canvas: canvas, m: cam.Matrix(canvas.Width(), canvas.Height())}
}

// Canvas returns the frame's canvas.
func (f *Frame) Canvas() *Canvas { return f.canvas }

// Point plots r at p.
func (f *Frame) Point(p mgl64.Vec3, r rune) {
	x, y, z, ok := project(f.m, p, f.canvas.Width(), f.canvas.Height())
	if ok {
		f.canvas.Set(x, y, r, z)
	}
}

// Line plots r along the segment a→b.
func (f *Frame) Line(a, b mgl64.Vec3, r rune) {
	steps := 48
	ax, ay, _, okA := project(f.m, a, f.canvas.Width(), f.canvas.Height())
	bx, by, _, okB := project(f.m, b, f.canvas.Width(), f.canvas.Height())
	if okA && okB {
		steps = max(abs(bx-ax), abs(by-ay)) + 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		f.Point(a.Add(b.Sub(a).Mul(t)), r)
	}
}

// Curve plots r along the quadratic Bézier start→end bent toward mid.
func (f *Frame) Curve(start, mid, end mgl64.Vec3, r rune) {
	const steps = 64
	for i := 0; i <= steps; i++ {
		f.Point(bezier(start, mid, end, float64(i)/steps), r)
	}
}

// Ring plots a circle of radius around center. The circle lies in the XZ
// plane of orient.
func (f *Frame) Ring(center mgl64.Vec3, radius float64, orient mgl64.Mat3, r rune) {
	steps := max(24, int(radius*24))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		local := mgl64.Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius}
		f.Point(center.Add(orient.Mul3x1(local)), r)
	}
}

// Ball plots a sphere's surface as scattered r cells.
func (f *Frame) Ball(center mgl64.Vec3, radius float64, r rune) {
	n := 12 + int(radius*radius*40)
	for _, p := range fibonacciSphere(n, radius) {
		f.Point(center.Add(p), r)
	}
	f.Point(center, r)
}

// Box plots the twelve edges of an axis-aligned box of size around center,
// transformed by orient.
func (f *Frame) Box(center, size mgl64.Vec3, orient mgl64.Mat3, r rune) {
	h := size.Mul(0.5)
	var corners [8]mgl64.Vec3
	for i := range corners {
		c := mgl64.Vec3{h.X(), h.Y(), h.Z()}
		if i&1 != 0 {
			c[0] = -c[0]
		}
		if i&2 != 0 {
			c[1] = -c[1]
		}
		if i&4 != 0 {
			c[2] = -c[2]
		}
		corners[i] = center.Add(orient.Mul3x1(c))
	}
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				f.Line(corners[i], corners[j], r)
			}
		}
	}
}

// Label centers text on the projection of p.
func (f *Frame) Label(p mgl64.Vec3, text string) {
	x, y, _, ok := project(f.m, p, f.canvas.Width(), f.canvas.Height())
	if !ok {
		return
	}
	f.canvas.Text(x-len([]rune(text))/2, y, text)
}

// Caption writes text centered on a fixed screen row.
func (f *Frame) Caption(row int, text string) {
	f.canvas.Text((f.canvas.Width()-len([]rune(text)))/2, row, text)
}

func bezier(a, b, c mgl64.Vec3, t float64) mgl64.Vec3 {
	u := 1 - t
	return a.Mul(u * u).Add(b.Mul(2 * u * t)).Add(c.Mul(t * t))
}

func fibonacciSphere(n int, radius float64) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, 0, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		rad := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		pts = append(pts, mgl64.Vec3{math.Cos(theta) * rad, y, math.Sin(theta) * rad}.Mul(radius))
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
