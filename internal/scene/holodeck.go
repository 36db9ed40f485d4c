package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jwulff/holodeck/internal/catalog"
)

// autoRotateSpeed is the idle camera orbit in radians per second.
const autoRotateSpeed = 2 * math.Pi / 60 * 0.5

const starCount = 240

// builders creates each module's visualization.
var builders = map[catalog.ModuleID]func() Visualization{
	catalog.Atom:             newAtom,
	catalog.NewtonLaws:       newNewton,
	catalog.SolarSystem:      newSolarSystem,
	catalog.MolecularBonding: newMolecularBonding,
	catalog.DNAStructure:     newDNA,
	catalog.Magnetism:        newMagnetism,
	catalog.Photosynthesis:   newPhotosynthesis,
	catalog.SoundWaves:       newSoundWaves,
	catalog.Animalia:         newAnimalia,
	catalog.Plantae:          newPlantae,
}

// Holodeck renders the active module's visualization. It owns one
// visualization per module, each with its own clock.
type Holodeck struct {
	active     catalog.ModuleID
	models     map[catalog.ModuleID]Visualization
	camera     Camera
	autoRotate bool
	stars      []mgl64.Vec3
	clock      float64
}

// NewHolodeck returns an empty holodeck with the establishing camera.
func NewHolodeck() *Holodeck {
	return &Holodeck{
		models: make(map[catalog.ModuleID]Visualization),
		camera: DefaultCamera(),
		stars:  starfield(starCount),
	}
}

// SetActiveModule switches the visualization on display. Unknown ids show
// the fallback sun.
func (h *Holodeck) SetActiveModule(id catalog.ModuleID) {
	h.active = id
	h.model(id)
}

// Active returns the module on display.
func (h *Holodeck) Active() catalog.ModuleID { return h.active }

// SetAutoRotate enables the idle camera orbit.
func (h *Holodeck) SetAutoRotate(on bool) { h.autoRotate = on }

// Camera returns the current camera.
func (h *Holodeck) Camera() Camera { return h.camera }

// Visualization returns the model for id, if one has been created.
func (h *Holodeck) Visualization(id catalog.ModuleID) (Visualization, bool) {
	v, ok := h.models[id]
	return v, ok
}

// Advance moves the active model, the starfield and the camera by dt.
func (h *Holodeck) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	h.clock += dt
	if h.autoRotate {
		h.camera.Yaw = math.Mod(h.camera.Yaw+autoRotateSpeed*dt, 2*math.Pi)
	}
	if h.active != "" {
		h.model(h.active).Advance(dt)
	}
}

// Render draws the current frame into w×ht cells.
func (h *Holodeck) Render(w, ht int) string {
	canvas := NewCanvas(w, ht)
	if w == 0 || ht == 0 {
		return ""
	}
	f := NewFrame(canvas, h.camera)

	for i, s := range h.stars {
		glyph := '.'
		switch twinkle := math.Sin(h.clock*2 + float64(i)); {
		case twinkle > 0.9:
			glyph = '*'
		case twinkle < -0.6:
			glyph = '·'
		}
		f.Point(s, glyph)
	}

	if h.active != "" {
		h.model(h.active).Draw(f)
	}
	return canvas.String()
}

func (h *Holodeck) model(id catalog.ModuleID) Visualization {
	if v, ok := h.models[id]; ok {
		return v
	}
	build, ok := builders[id]
	if !ok {
		build = newSun
	}
	v := build()
	h.models[id] = v
	return v
}

// starfield scatters n points on a shell between 80 and 120 units out.
func starfield(n int) []mgl64.Vec3 {
	rng := rand.New(rand.NewPCG(1977, 5))
	stars := make([]mgl64.Vec3, 0, n)
	for _, dir := range fibonacciSphere(n, 1) {
		jitter := mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}.Mul(0.2)
		dist := 80 + rng.Float64()*40
		stars = append(stars, dir.Add(jitter).Normalize().Mul(dist))
	}
	return stars
}
