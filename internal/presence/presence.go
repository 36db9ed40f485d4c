// Package presence animates the holographic instructor: it fades in while
// narration plays, fades out afterwards and drives a small set of idle and
// speaking motions.
package presence

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fade rates per second.
const (
	RiseRate = 3.0
	FallRate = 0.8
)

// HiddenBelow is the presence under which a silent instructor is not drawn.
const HiddenBelow = 0.001

const (
	jawRest   = 0.0
	jawEase   = 0.1
	jawRhythm = 22.0
	jawDepth  = 0.12
)

// Pose is everything the avatar renderer needs for one frame.
type Pose struct {
	Presence float64
	X        float64 // horizontal offset, 8 is off-stage and 3.2 is on-stage
	Y        float64 // hover height
	Scale    float64
	RotY     float64 // radians
	HeadY    float64
	Jaw      float64 // mouth opening, 0 at rest
	Speaking bool
	Clock    float64
}

// Controller holds the presence value and the animation clock.
type Controller struct {
	presence float64
	clock    float64
	jaw      float64
	speaking bool
}

// New returns a controller for an instructor that starts off-stage.
func New() *Controller {
	return &Controller{}
}

// Tick advances the controller by dt seconds.
func (c *Controller) Tick(dt float64, speaking bool) {
	if dt < 0 {
		dt = 0
	}
	c.clock += dt
	c.speaking = speaking

	target, rate := 0.0, FallRate
	if speaking {
		target, rate = 1.0, RiseRate
	}
	step := math.Min(1, rate*dt)
	c.presence = mgl64.Clamp(c.presence+(target-c.presence)*step, 0, 1)

	if speaking {
		c.jaw = math.Abs(math.Sin(c.clock*jawRhythm)) * jawDepth
	} else {
		c.jaw += (jawRest - c.jaw) * jawEase
	}
}

// Presence returns the current visibility in [0,1].
func (c *Controller) Presence() float64 { return c.presence }

// Clock returns the seconds accumulated by Tick.
func (c *Controller) Clock() float64 { return c.clock }

// Visible reports whether the instructor should be drawn at all.
func (c *Controller) Visible(speaking bool) bool {
	return c.presence >= HiddenBelow || speaking
}

// Pose derives the frame pose from presence and the clock.
func (c *Controller) Pose() Pose {
	t := c.clock
	p := c.presence
	return Pose{
		Presence: p,
		X:        lerp(8, 3.2, p),
		Y:        -1 + math.Sin(t*1.5)*0.05,
		Scale:    p * 1.2,
		RotY:     -math.Pi/10 + math.Sin(t*0.4)*0.1,
		HeadY:    0.8 + math.Sin(t*2)*0.03,
		Jaw:      c.jaw,
		Speaking: c.speaking,
		Clock:    t,
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
