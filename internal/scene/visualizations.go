package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Visualization is one module's animated model.
type Visualization interface {
	// Advance moves the model's own clock forward by dt seconds.
	Advance(dt float64)
	// Elapsed returns the model's clock.
	Elapsed() float64
	// Draw plots the model at its current time.
	Draw(f *Frame)
}

type clock struct{ t float64 }

func (c *clock) Advance(dt float64) {
	if dt > 0 {
		c.t += dt
	}
}

func (c *clock) Elapsed() float64 { return c.t }

var (
	identity = mgl64.Ident3()
	origin   = mgl64.Vec3{}
)

// --- atom ---

type electron struct {
	radius, speed, offset float64
	tilt                  mgl64.Mat3
	label                 string
}

type atomModel struct {
	clock
	nucleons  []mgl64.Vec3
	electrons []electron
}

func newAtom() Visualization {
	return &atomModel{
		nucleons: fibonacciSphere(12, 0.7),
		electrons: []electron{
			{radius: 2.6, speed: 1.6, tilt: mgl64.Rotate3DX(0.3), label: "Electron (-)"},
			{radius: 3.6, speed: 1.1, offset: 2, tilt: mgl64.Rotate3DZ(0.8).Mul3(mgl64.Rotate3DX(-0.4))},
			{radius: 4.6, speed: 0.8, offset: 4, tilt: mgl64.Rotate3DZ(-0.7).Mul3(mgl64.Rotate3DX(0.6))},
		},
	}
}

func (a *atomModel) Draw(f *Frame) {
	spin := mgl64.Rotate3DY(a.t * 0.4)
	for i, n := range a.nucleons {
		glyph := '●'
		if i%2 == 1 {
			glyph = '○'
		}
		f.Ball(spin.Mul3x1(n), 0.35, glyph)
	}
	f.Label(mgl64.Vec3{-2.8, 2.4, 0}, "Proton (+) ●")
	f.Label(mgl64.Vec3{2.8, -2.4, 0}, "○ Neutron (0)")

	for _, e := range a.electrons {
		orient := e.tilt.Mul3(mgl64.Rotate3DY(a.t * 0.1))
		f.Ring(origin, e.radius, orient, '·')

		et := a.t*e.speed + e.offset
		pos := orient.Mul3x1(mgl64.Vec3{math.Cos(et) * e.radius, 0, math.Sin(et) * e.radius})
		f.Ball(pos, 0.2, '◉')
		if e.label != "" {
			f.Label(pos.Add(mgl64.Vec3{0, 0.8, 0}), e.label)
		}
	}
	f.Caption(0, "Atomic Structure")
}

// --- Newton's second law ---

type newtonModel struct{ clock }

func newNewton() Visualization { return &newtonModel{} }

func (n *newtonModel) Draw(f *Frame) {
	const ground = -2.0
	f.Line(mgl64.Vec3{-16, ground, 2}, mgl64.Vec3{16, ground, 2}, '─')
	f.Line(mgl64.Vec3{-16, ground, -2}, mgl64.Vec3{16, ground, -2}, '┄')

	x := -12 + math.Mod(n.t*3, 24)
	body := mgl64.Vec3{x, ground + 0.9, 0}
	f.Box(body, mgl64.Vec3{3, 0.7, 1.4}, identity, '█')
	f.Box(body.Add(mgl64.Vec3{-0.25, 0.65, 0}), mgl64.Vec3{1.4, 0.6, 1.2}, identity, '▓')

	spokes := []rune{'|', '/', '─', '\\'}
	wheel := spokes[int(n.t*10)%len(spokes)]
	for _, dx := range []float64{-1, 1} {
		for _, dz := range []float64{-0.7, 0.7} {
			f.Ball(mgl64.Vec3{x + dx, ground + 0.35, dz}, 0.3, wheel)
		}
	}

	f.Label(body.Add(mgl64.Vec3{0, 2.6, 0}), "Mass (m)")
	f.Label(body.Add(mgl64.Vec3{0, 2.0, 0}), "↓")
	f.Label(body.Add(mgl64.Vec3{-3.2, 0, 0}), "F ⇒")
	f.Caption(0, "F = m × a")
}

// --- solar system ---

type solarModel struct{ clock }

func newSolarSystem() Visualization { return &solarModel{} }

func (s *solarModel) Draw(f *Frame) {
	drawSun(f, origin, 1.8, s.t)
	f.Ring(origin, 7, identity, '·')

	et := s.t * 0.2
	earth := mgl64.Vec3{math.Cos(et) * 7, 0, math.Sin(et) * 7}
	f.Ball(earth, 0.7, '◍')
	f.Ring(earth, 1.6, identity, '·')

	st := s.t * 2
	sat := earth.Add(mgl64.Vec3{math.Cos(st) * 1.6, 0, math.Sin(st) * 1.6})
	f.Point(sat, '╬')

	f.Label(earth.Add(mgl64.Vec3{0, 2.2, 0}), "Orbital Path")
	f.Caption(0, "Gravity: F = G(m1m2)/r²")
}

func drawSun(f *Frame, at mgl64.Vec3, radius, t float64) {
	f.Ball(at, radius, '✺')
	flare := mgl64.Rotate3DY(t * 0.05)
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		dir := flare.Mul3x1(mgl64.Vec3{math.Cos(a), math.Sin(a), 0})
		f.Point(at.Add(dir.Mul(radius*1.4)), '*')
	}
}

// --- molecular bonding ---

type bondModel struct{ clock }

func newMolecularBonding() Visualization { return &bondModel{} }

func (b *bondModel) Draw(f *Frame) {
	turn := mgl64.Rotate3DY(b.t * 0.3)
	na := turn.Mul3x1(mgl64.Vec3{-3, 0, 0})
	cl := turn.Mul3x1(mgl64.Vec3{3, 0, 0})

	f.Line(na, cl, '═')
	f.Ball(na, 1.0, '●')
	f.Ball(cl, 1.8, '◎')
	f.Label(na.Add(mgl64.Vec3{0, 1.8, 0}), "Sodium (Na+)")
	f.Label(cl.Add(mgl64.Vec3{0, 2.6, 0}), "Chlorine (Cl-)")
	f.Caption(0, "Ionic Bond: Na+ Cl-")
}

// --- DNA ---

type dnaModel struct{ clock }

func newDNA() Visualization { return &dnaModel{} }

func (d *dnaModel) Draw(f *Frame) {
	const (
		rungs  = 30
		radius = 1.2
		rise   = 0.3
	)
	bases := []rune{'A', 'T', 'G', 'C'}
	turn := mgl64.Rotate3DY(d.t * 0.5)
	center := mgl64.Vec3{-1, 0, 0}

	for i := 0; i < rungs; i++ {
		angle := float64(i) / rungs * math.Pi * 6
		y := float64(i)*rise - rungs*rise/2
		p1 := center.Add(turn.Mul3x1(mgl64.Vec3{math.Cos(angle) * radius, y, math.Sin(angle) * radius}))
		p2 := center.Add(turn.Mul3x1(mgl64.Vec3{math.Cos(angle+math.Pi) * radius, y, math.Sin(angle+math.Pi) * radius}))
		f.Line(p1, p2, bases[i%len(bases)])
		f.Point(p1, '●')
		f.Point(p2, '●')
	}
	f.Label(center.Add(mgl64.Vec3{0, 5.2, 0}), "DNA Double Helix")

	// Red blood cells drift in the background.
	for _, c := range []mgl64.Vec3{{-8, 3, -5}, {-9, -2, -3}} {
		bob := mgl64.Vec3{0, math.Sin(d.t+c.X()) * 0.3, 0}
		f.Ring(c.Add(bob), 0.8, mgl64.Rotate3DX(d.t*0.6), '◦')
	}
	f.Label(mgl64.Vec3{-8, 4.5, -5}, "Red Blood Cell")

	chrom := mgl64.Vec3{6, 0, -2}
	arm := mgl64.Rotate3DY(d.t * 0.2)
	for _, tilt := range []float64{math.Pi / 6, -math.Pi / 6} {
		dir := arm.Mul3x1(mgl64.Rotate3DZ(tilt).Mul3x1(mgl64.Vec3{0, 1.6, 0}))
		f.Line(chrom.Sub(dir), chrom.Add(dir), '▒')
	}
	f.Point(chrom, '✱')
	f.Label(chrom.Add(mgl64.Vec3{0, 2.4, 0}), "Chromosome")
	f.Caption(0, "Biological Blueprints")
}

// --- magnetism ---

type magnetModel struct{ clock }

func newMagnetism() Visualization { return &magnetModel{} }

func (m *magnetModel) Draw(f *Frame) {
	turn := mgl64.Rotate3DY(m.t * 0.1)
	for _, x := range []float64{-3.5, 3.5} {
		north := turn.Mul3x1(mgl64.Vec3{x, 0.75, 0})
		south := turn.Mul3x1(mgl64.Vec3{x, -0.75, 0})
		f.Box(north, mgl64.Vec3{1, 1.5, 1}, turn, '▀')
		f.Box(south, mgl64.Vec3{1, 1.5, 1}, turn, '▄')
		f.Label(north, "N")
		f.Label(south, "S")
	}

	lines := [][3]mgl64.Vec3{
		{{-3, 0.75, 0}, {0, 2, 0}, {3, -0.75, 0}},
		{{-3, -0.75, 0}, {0, -2, 0}, {3, 0.75, 0}},
		{{-3, 1.2, 0}, {0, 4, 0}, {3, -1.2, 0}},
	}
	for i, l := range lines {
		start, mid, end := turn.Mul3x1(l[0]), turn.Mul3x1(l[1]), turn.Mul3x1(l[2])
		f.Curve(start, mid, end, '∙')
		// Flux markers travel along each field line.
		pos := math.Mod(m.t*0.3+float64(i)/3, 1)
		f.Point(bezier(start, mid, end, pos), '➤')
	}
	f.Caption(0, "Magnetic Flux Fields")
}

// --- photosynthesis ---

type photosynthesisModel struct{ clock }

func newPhotosynthesis() Visualization { return &photosynthesisModel{} }

func (p *photosynthesisModel) Draw(f *Frame) {
	sun := mgl64.Vec3{0, 5, -8}
	drawSun(f, sun, 1.0, p.t)

	for _, delay := range []float64{0, 0.4, 0.8, 1.2, 1.6} {
		t := math.Mod(p.t+delay, 2)
		ray := mgl64.Vec3{0, 5 - t*4, -8 + t*4}
		glyph := '•'
		if t > 1.2 {
			glyph = '·'
		}
		f.Point(ray, glyph)
	}

	growth := (math.Sin(p.t*0.3-math.Pi/2) + 1) / 2
	scale := (0.2 + growth*1.5) * 0.45
	base := mgl64.Vec3{0, -4, 0}
	at := func(v mgl64.Vec3) mgl64.Vec3 { return base.Add(v.Mul(scale)) }

	f.Box(at(mgl64.Vec3{0, 0.75, 0}), mgl64.Vec3{2.5, 1.5, 2.5}.Mul(scale), identity, '▓')
	f.Line(at(mgl64.Vec3{0, 1.5, 0}), at(mgl64.Vec3{0, 8.5, 0}), '┃')
	for i, y := range []float64{2, 4, 6} {
		dir := mgl64.Rotate3DY(float64(i) * math.Pi / 2).Mul3x1(mgl64.Vec3{3, 0.5, 0})
		f.Line(at(mgl64.Vec3{0, y, 0}), at(mgl64.Vec3{0, y, 0}.Add(dir)), '❦')
	}
	f.Label(at(mgl64.Vec3{0, 9.5, 0}), "Photosynthesis in Action")
	f.Caption(0, "Solar Energy -> Chemical Energy")
}

// --- sound waves ---

type soundModel struct{ clock }

func newSoundWaves() Visualization { return &soundModel{} }

func (s *soundModel) Draw(f *Frame) {
	vib := math.Sin(s.t*100) * 0.05
	f.Line(mgl64.Vec3{0, -3, 0}, mgl64.Vec3{0, 0, 0}, '┃')
	f.Line(mgl64.Vec3{-0.75, 0, 0}, mgl64.Vec3{0.75, 0, 0}, '━')
	f.Line(mgl64.Vec3{-0.75 - vib, 0, 0}, mgl64.Vec3{-0.75 - vib, 4, 0}, '┃')
	f.Line(mgl64.Vec3{0.75 + vib, 0, 0}, mgl64.Vec3{0.75 + vib, 4, 0}, '┃')

	for i := 0; i < 6; i++ {
		t := math.Mod(s.t+float64(i)*0.5, 3)
		opacity := (3 - t) / 6
		glyph := '·'
		if opacity > 0.3 {
			glyph = '○'
		}
		f.Ring(mgl64.Vec3{0, 2, 0}, 0.6*(1+t*3), identity, glyph)
	}

	f.Label(mgl64.Vec3{0, 5, 0}, "Vibrating Tuning Fork")
	f.Caption(f.Canvas().Height()-2, "SPEED OF SOUND: ~343 m/s")
	f.Caption(f.Canvas().Height()-1, "Longitudinal Pressure Waves traveling through air")
}

// --- animalia ---

type animaliaModel struct{ clock }

func newAnimalia() Visualization { return &animaliaModel{} }

func (a *animaliaModel) Draw(f *Frame) {
	beat := 1 + 0.15*math.Max(0, math.Sin(a.t*math.Pi*2))
	f.Ring(origin, 3*beat, mgl64.Rotate3DX(math.Pi/2), '◦')
	f.Ball(mgl64.Vec3{0.6, 0.3, 0}, 0.9, '●')
	f.Label(mgl64.Vec3{0.6, 1.6, 0}, "Nucleus")

	turn := mgl64.Rotate3DY(a.t * 0.5)
	for i := 0; i < 5; i++ {
		angle := float64(i) * 2 * math.Pi / 5
		p := turn.Mul3x1(mgl64.Vec3{math.Cos(angle) * 2, math.Sin(angle*2) * 0.6, math.Sin(angle) * 2})
		f.Point(p, '⬩')
	}
	f.Label(mgl64.Vec3{0, -3.6, 0}, "Animal Cell")
	f.Caption(0, "Biological Systems")
}

// --- plantae ---

type plantaeModel struct{ clock }

func newPlantae() Visualization { return &plantaeModel{} }

func (p *plantaeModel) Draw(f *Frame) {
	xylem := [2]mgl64.Vec3{{-0.6, -4, 0}, {-0.6, 4, 0}}
	phloem := [2]mgl64.Vec3{{0.6, 4, 0}, {0.6, -4, 0}}
	f.Line(xylem[0], xylem[1], '│')
	f.Line(phloem[0], phloem[1], '│')
	f.Label(xylem[0].Add(mgl64.Vec3{-1.6, 0.4, 0}), "Xylem ↑")
	f.Label(phloem[0].Add(mgl64.Vec3{1.8, -0.4, 0}), "Phloem ↓")

	for i := 0; i < 4; i++ {
		up := math.Mod(p.t*0.8+float64(i)*0.25, 1)
		f.Point(xylem[0].Add(xylem[1].Sub(xylem[0]).Mul(up)), '◆')
		down := math.Mod(p.t*0.5+float64(i)*0.25, 1)
		f.Point(phloem[0].Add(phloem[1].Sub(phloem[0]).Mul(down)), '◇')
	}

	sway := math.Sin(p.t) * 0.3
	for _, side := range []float64{-1, 1} {
		f.Curve(mgl64.Vec3{0, 4, 0}, mgl64.Vec3{side * 2, 5.5 + sway, 0}, mgl64.Vec3{side * 4, 4 + sway, 0}, '❦')
	}
	f.Caption(0, "Vascular Plant Transport")
}

// --- fallback ---

type sunModel struct{ clock }

func newSun() Visualization { return &sunModel{} }

func (s *sunModel) Draw(f *Frame) {
	drawSun(f, origin, 2, s.t)
}
