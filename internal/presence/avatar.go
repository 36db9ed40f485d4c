package presence

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Name is the instructor's call sign shown above the head.
const Name = "NOVA-01"

const (
	artWidth  = 17
	artHeight = 11
	ringR     = 7.0
)

// Width is the column count of the full avatar.
const Width = artWidth

// Render draws the instructor for a stage width columns wide. Rows are
// padded on the left so the figure sits where pose.X places it; text past
// width is clipped. A hidden instructor renders as no rows.
func Render(pose Pose, width int) []string {
	if width <= 0 || (pose.Presence < HiddenBelow && !pose.Speaking) {
		return nil
	}

	var grid [][]rune
	if pose.Scale < 0.45 {
		grid = glimmer(pose)
	} else {
		grid = figure(pose)
	}

	// 3.2 is fully on-stage at the right edge, 8 is one figure width past it.
	slide := (pose.X - 3.2) / (8 - 3.2)
	left := width - len(grid[0]) - 1 + int(math.Round(slide*float64(len(grid[0])+1)))

	// Hover shifts the figure by at most one row.
	top := 1 + int(math.Round((pose.Y+1)*20))

	rows := make([]string, 0, top+len(grid))
	for i := 0; i < top; i++ {
		rows = append(rows, "")
	}
	for _, line := range grid {
		rows = append(rows, place(line, left, width))
	}
	return rows
}

func place(line []rune, left, width int) string {
	var b strings.Builder
	for col := 0; col < width; col++ {
		i := col - left
		switch {
		case col < left:
			b.WriteByte(' ')
		case i < len(line):
			b.WriteRune(line[i])
		default:
			return strings.TrimRight(b.String(), " ")
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// glimmer is the instructor while it is still materializing.
func glimmer(pose Pose) [][]rune {
	spark := '·'
	if pose.Presence > 0.2 {
		spark = '✦'
	}
	return [][]rune{
		[]rune("   "),
		{' ', spark, ' '},
		[]rune(" ┴ "),
	}
}

func figure(pose Pose) [][]rune {
	eye := '•'
	core := '◇'
	if pose.Speaking {
		eye = '◉'
		core = '◆'
	}

	mouth := "───"
	switch {
	case pose.Jaw > 0.08:
		mouth = "▄▄▄"
	case pose.Jaw > 0.03:
		mouth = "═══"
	}

	rows := []string{
		"     " + Name + "     ",
		"     ┌─────┐     ",
		"     │ " + string(eye) + " " + string(eye) + " │     ",
		"     │ " + mouth + " │     ",
		"     └──┬──┘     ",
		"       ███       ",
		"  ▪    █" + string(core) + "█    ▪  ",
		"       ███       ",
		"       ███       ",
		"                 ",
		"    ▁▁▁▁▁▁▁▁▁    ",
	}

	grid := make([][]rune, artHeight)
	for i, r := range rows {
		grid[i] = []rune(r)
	}
	drawRing(grid, pose)
	return grid
}

// drawRing plots the orbiting ring as an ellipse around the torso, tilted
// by the pose's Y rotation and spinning with the clock.
func drawRing(grid [][]rune, pose Pose) {
	const points = 24
	tilt := mgl64.Rotate3DX(0.35)
	turn := mgl64.Rotate3DY(pose.RotY + pose.Clock*0.8)
	m := tilt.Mul3(turn)

	cx, cy := float64(artWidth)/2, 6.0
	for i := 0; i < points; i++ {
		a := 2 * math.Pi * float64(i) / points
		v := m.Mul3x1(mgl64.Vec3{math.Cos(a) * ringR, 0, math.Sin(a) * ringR})

		col := int(math.Round(cx + v.X()))
		row := int(math.Round(cy + v.Y()*0.5))
		if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
			continue
		}
		if grid[row][col] != ' ' {
			continue
		}
		// Points on the near side of the ring are brighter.
		if v.Z() > 0 {
			grid[row][col] = '•'
		} else {
			grid[row][col] = '·'
		}
	}
}
