package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jwulff/holodeck/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasDepth(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 1, 'a', 0.5)
	c.Set(1, 1, 'b', 0.9)
	assert.Equal(t, 'a', c.At(1, 1), "farther write is hidden")

	c.Set(1, 1, 'c', 0.1)
	assert.Equal(t, 'c', c.At(1, 1))

	c.Set(9, 9, 'x', 0)
	assert.Equal(t, ' ', c.At(9, 9))
}

func TestCanvasTextClips(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Set(0, 0, '#', -0.5)
	c.Text(-1, 0, "holodeck")
	assert.Equal(t, "olode", c.String())
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0, 'x', 0)
	c.Set(2, 1, 'y', 0)
	assert.Equal(t, "x  \n  y", c.String())
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := DefaultCamera()
	m := cam.Matrix(81, 41)

	x, y, _, ok := project(m, cam.Target, 81, 41)
	require.True(t, ok)
	assert.Equal(t, 40, x)
	assert.Equal(t, 20, y)

	_, _, _, ok = project(m, mgl64.Vec3{0, 4, 30}, 81, 41)
	assert.False(t, ok, "points behind the camera are culled")
}

func TestCameraOrbit(t *testing.T) {
	cam := DefaultCamera()
	before := cam.Position()
	cam.Yaw = 1.2
	after := cam.Position()

	assert.InDelta(t, before.Sub(cam.Target).Len(), after.Sub(cam.Target).Len(), 1e-9)
	assert.InDelta(t, before.Y(), after.Y(), 1e-9)
	assert.NotEqual(t, before, after)
}

func TestEveryModuleHasAVisualization(t *testing.T) {
	for _, id := range catalog.AllIDs {
		_, ok := builders[id]
		assert.True(t, ok, "no visualization for %s", id)
	}
}

func TestRenderEveryModule(t *testing.T) {
	h := NewHolodeck()
	for _, id := range catalog.AllIDs {
		h.SetActiveModule(id)
		h.Advance(1.5)

		out := h.Render(80, 24)
		rows := strings.Split(out, "\n")
		require.Len(t, rows, 24, id)
		for _, row := range rows {
			assert.Len(t, []rune(row), 80, id)
		}
		assert.NotEmpty(t, strings.TrimSpace(out), id)
	}
}

func TestRenderCaptions(t *testing.T) {
	h := NewHolodeck()
	h.SetActiveModule(catalog.Atom)
	assert.Contains(t, h.Render(80, 24), "Atomic Structure")

	h.SetActiveModule(catalog.SoundWaves)
	assert.Contains(t, h.Render(80, 24), "343 m/s")
}

func TestRenderEmpty(t *testing.T) {
	h := NewHolodeck()
	assert.Equal(t, "", h.Render(0, 10))
}

func TestClocksAreIndependent(t *testing.T) {
	h := NewHolodeck()
	h.SetActiveModule(catalog.Atom)
	h.Advance(2)

	h.SetActiveModule(catalog.SolarSystem)
	h.Advance(5)

	h.SetActiveModule(catalog.Atom)
	h.Advance(1)

	atom, ok := h.Visualization(catalog.Atom)
	require.True(t, ok)
	solar, ok := h.Visualization(catalog.SolarSystem)
	require.True(t, ok)

	assert.InDelta(t, 3, atom.Elapsed(), 1e-9)
	assert.InDelta(t, 5, solar.Elapsed(), 1e-9)
}

func TestAutoRotateOnlyWhenEnabled(t *testing.T) {
	h := NewHolodeck()
	h.SetActiveModule(catalog.Magnetism)

	h.Advance(1)
	assert.Zero(t, h.Camera().Yaw)

	h.SetAutoRotate(true)
	h.Advance(1)
	assert.InDelta(t, autoRotateSpeed, h.Camera().Yaw, 1e-9)

	h.SetAutoRotate(false)
	h.Advance(1)
	assert.InDelta(t, autoRotateSpeed, h.Camera().Yaw, 1e-9)
}

func TestUnknownModuleFallsBack(t *testing.T) {
	h := NewHolodeck()
	h.SetActiveModule(catalog.ModuleID("WORMHOLES"))
	h.Advance(0.5)

	v, ok := h.Visualization("WORMHOLES")
	require.True(t, ok)
	assert.IsType(t, &sunModel{}, v)
	assert.NotEmpty(t, strings.TrimSpace(h.Render(40, 12)))
}
